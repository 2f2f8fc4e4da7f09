package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Balances is a snapshot of both cash pools.
type Balances struct {
	Electronic decimal.Decimal
	Cash       decimal.Decimal
}

// Total returns electronic plus cash.
func (b Balances) Total() decimal.Decimal {
	return b.Electronic.Add(b.Cash)
}

// ApplyTransaction computes the balances after a transaction of the given kind.
//
// CashIn sends electronic funds out and keeps the fee as cash:
// electronic -= amount, cash += fee.
// CashOut takes electronic funds in and pays out cash net of the fee:
// electronic += amount, cash -= amount - fee.
func ApplyTransaction(kind TransactionKind, amount, fee decimal.Decimal, before Balances) (Balances, error) {
	var after Balances

	switch kind {
	case KindCashIn:
		after.Electronic = before.Electronic.Sub(amount).Round(MoneyPlaces)
		after.Cash = before.Cash.Add(fee).Round(MoneyPlaces)

		if after.Electronic.IsNegative() {
			return Balances{}, fmt.Errorf("%w: electronic balance %s is less than %s",
				ErrInsufficientFunds, before.Electronic.StringFixed(MoneyPlaces), amount.StringFixed(MoneyPlaces))
		}
	case KindCashOut:
		after.Electronic = before.Electronic.Add(amount).Round(MoneyPlaces)
		after.Cash = before.Cash.Sub(amount.Sub(fee)).Round(MoneyPlaces)

		if after.Cash.IsNegative() {
			return Balances{}, fmt.Errorf("%w: cash balance %s cannot cover payout of %s",
				ErrInsufficientFunds, before.Cash.StringFixed(MoneyPlaces), amount.Sub(fee).StringFixed(MoneyPlaces))
		}
	default:
		return Balances{}, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}

	return after, nil
}
