package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProfitAggregate holds running fee totals for one owner.
type ProfitAggregate struct {
	UpdatedAt         time.Time
	OwnerID           string
	TotalProfit       decimal.Decimal
	ProfitFromCashIn  decimal.Decimal
	ProfitFromCashOut decimal.Decimal
	TransactionCount  int64
}

// NewProfitAggregate returns an all-zero aggregate.
func NewProfitAggregate(ownerID string, now time.Time) *ProfitAggregate {
	return &ProfitAggregate{
		OwnerID:           ownerID,
		TotalProfit:       decimal.Zero,
		ProfitFromCashIn:  decimal.Zero,
		ProfitFromCashOut: decimal.Zero,
		UpdatedAt:         now,
	}
}

// Apply records one settled entry's fee.
func (p *ProfitAggregate) Apply(kind TransactionKind, fee decimal.Decimal) {
	p.TotalProfit = p.TotalProfit.Add(fee)
	switch kind {
	case KindCashIn:
		p.ProfitFromCashIn = p.ProfitFromCashIn.Add(fee)
	case KindCashOut:
		p.ProfitFromCashOut = p.ProfitFromCashOut.Add(fee)
	}
	p.TransactionCount++
}

// Reverse removes one entry's fee. Every field is floored at zero.
func (p *ProfitAggregate) Reverse(kind TransactionKind, fee decimal.Decimal) {
	p.TotalProfit = floorZero(p.TotalProfit.Sub(fee))
	switch kind {
	case KindCashIn:
		p.ProfitFromCashIn = floorZero(p.ProfitFromCashIn.Sub(fee))
	case KindCashOut:
		p.ProfitFromCashOut = floorZero(p.ProfitFromCashOut.Sub(fee))
	}
	if p.TransactionCount > 0 {
		p.TransactionCount--
	}
}

// IsBalanced reports whether total equals the sum of the per-kind totals.
func (p *ProfitAggregate) IsBalanced() bool {
	return p.TotalProfit.Equal(p.ProfitFromCashIn.Add(p.ProfitFromCashOut))
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
