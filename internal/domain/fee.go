package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money values carry two fraction digits.
const MoneyPlaces = 2

var (
	hundred = decimal.NewFromInt(100)

	tierLow  = decimal.NewFromInt(5000)
	tierHigh = decimal.NewFromInt(10000)

	cashInRates  = [3]decimal.Decimal{decimal.RequireFromString("1"), decimal.RequireFromString("1.5"), decimal.RequireFromString("2")}
	cashOutRates = [3]decimal.Decimal{decimal.RequireFromString("1.5"), decimal.RequireFromString("2"), decimal.RequireFromString("2.5")}
)

// ComputeFee returns amount * feePercentage / 100 rounded half-up to two places.
func ComputeFee(amount, feePercentage decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidAmount
	}

	if err := ValidatePercentage(feePercentage); err != nil {
		return decimal.Zero, err
	}

	return amount.Mul(feePercentage).Div(hundred).Round(MoneyPlaces), nil
}

// TieredRate returns the legacy fee percentage for the amount's tier.
// Breakpoints belong to the lower tier.
func TieredRate(amount decimal.Decimal, kind TransactionKind) (decimal.Decimal, error) {
	var rates [3]decimal.Decimal

	switch kind {
	case KindCashIn:
		rates = cashInRates
	case KindCashOut:
		rates = cashOutRates
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}

	switch {
	case amount.LessThanOrEqual(tierLow):
		return rates[0], nil
	case amount.LessThanOrEqual(tierHigh):
		return rates[1], nil
	default:
		return rates[2], nil
	}
}

// ComputeTieredFee computes the fee using the legacy tier table.
func ComputeTieredFee(amount decimal.Decimal, kind TransactionKind) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidAmount
	}

	rate, err := TieredRate(amount, kind)
	if err != nil {
		return decimal.Zero, err
	}

	return ComputeFee(amount, rate)
}
