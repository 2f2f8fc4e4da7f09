package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the direction of a GCash transaction.
type TransactionKind string

const (
	KindCashIn  TransactionKind = "cash_in"
	KindCashOut TransactionKind = "cash_out"
)

// IsValid reports whether k is a known kind.
func (k TransactionKind) IsValid() bool {
	return k == KindCashIn || k == KindCashOut
}

// Label returns the human readable form used in history reasons.
func (k TransactionKind) Label() string {
	return strings.ReplaceAll(string(k), "_", "-")
}

// ParseTransactionKind accepts both "cash_in" and "cash-in" spellings.
func ParseTransactionKind(s string) (TransactionKind, error) {
	k := TransactionKind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if !k.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
	return k, nil
}

// LedgerEntry is one recorded transaction with its balance snapshot.
type LedgerEntry struct {
	CreatedAt               time.Time
	UpdatedAt               time.Time
	Date                    time.Time
	CategoryID              *string
	Note                    *string
	ID                      string
	OwnerID                 string
	Kind                    TransactionKind
	Amount                  decimal.Decimal
	FeePercentage           decimal.Decimal
	FeeAmount               decimal.Decimal
	ElectronicBalanceBefore decimal.Decimal
	ElectronicBalanceAfter  decimal.Decimal
	CashBalanceBefore       decimal.Decimal
	CashBalanceAfter        decimal.Decimal
}

// Before returns the balances captured when the entry was first settled.
func (e *LedgerEntry) Before() Balances {
	return Balances{Electronic: e.ElectronicBalanceBefore, Cash: e.CashBalanceBefore}
}

// After returns the balances the entry left the owner with.
func (e *LedgerEntry) After() Balances {
	return Balances{Electronic: e.ElectronicBalanceAfter, Cash: e.CashBalanceAfter}
}

// Settle recomputes the fee and the after-balances from the stored
// before-snapshot. The before-snapshot itself is never touched.
func (e *LedgerEntry) Settle() error {
	if err := ValidateAmount(e.Amount); err != nil {
		return err
	}

	fee, err := ComputeFee(e.Amount, e.FeePercentage)
	if err != nil {
		return err
	}

	after, err := ApplyTransaction(e.Kind, e.Amount, fee, e.Before())
	if err != nil {
		return err
	}

	e.FeeAmount = fee
	e.ElectronicBalanceAfter = after.Electronic
	e.CashBalanceAfter = after.Cash

	return nil
}

// EntryFilter narrows entry listings.
type EntryFilter struct {
	Kind       *TransactionKind
	CategoryID *string
	From       *time.Time
	To         *time.Time
}
