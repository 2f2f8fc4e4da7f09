package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultFeePercentage applies to owners who never set their own.
var DefaultFeePercentage = decimal.RequireFromString("2.00")

// Owner is the agent whose two cash pools the ledger tracks.
type Owner struct {
	CreatedAt            time.Time
	UpdatedAt            time.Time
	ID                   string
	Name                 string
	Email                string
	PasswordHash         string
	ElectronicBalance    decimal.Decimal
	CashBalance          decimal.Decimal
	DefaultFeePercentage decimal.Decimal
	Onboarded            bool
}

// Balances returns the owner's current pool balances.
func (o *Owner) Balances() Balances {
	return Balances{Electronic: o.ElectronicBalance, Cash: o.CashBalance}
}

// OnboardingInput carries the one-time initial values.
type OnboardingInput struct {
	ElectronicBalance    decimal.Decimal
	CashBalance          decimal.Decimal
	DefaultFeePercentage decimal.Decimal
}

// Validate checks initial balances are non-negative and the percentage is in range.
func (in OnboardingInput) Validate() error {
	if in.ElectronicBalance.IsNegative() {
		return fmt.Errorf("%w: initial electronic balance cannot be negative", ErrInvalidAmount)
	}
	if in.CashBalance.IsNegative() {
		return fmt.Errorf("%w: initial cash balance cannot be negative", ErrInvalidAmount)
	}
	if !hasMoneyPrecision(in.ElectronicBalance) || !hasMoneyPrecision(in.CashBalance) {
		return fmt.Errorf("%w: at most %d decimal places", ErrInvalidAmount, MoneyPlaces)
	}
	return ValidatePercentage(in.DefaultFeePercentage)
}
