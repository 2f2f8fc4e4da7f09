package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceType names which balance a history record tracks.
type BalanceType string

const (
	BalanceTypeElectronic BalanceType = "electronic"
	BalanceTypeCash       BalanceType = "cash"
	BalanceTypeProfit     BalanceType = "profit"
)

// History reasons
const (
	ReasonTransaction    = "transaction"
	ReasonInitialBalance = "Initial balance"
)

// ProfitReason is the reason recorded for a profit history record.
func ProfitReason(kind TransactionKind) string {
	return "Profit from " + kind.Label() + " transaction"
}

// BalanceHistoryRecord is an immutable audit fact for one balance change.
type BalanceHistoryRecord struct {
	CreatedAt    time.Time
	EntryID      *string
	ID           string
	OwnerID      string
	BalanceType  BalanceType
	Reason       string
	AmountBefore decimal.Decimal
	AmountAfter  decimal.Decimal
	ChangeAmount decimal.Decimal
}

// NewBalanceHistoryRecord builds a record with ChangeAmount = after - before.
func NewBalanceHistoryRecord(
	id, ownerID string,
	entryID *string,
	balanceType BalanceType,
	before, after decimal.Decimal,
	reason string,
	createdAt time.Time,
) *BalanceHistoryRecord {
	return &BalanceHistoryRecord{
		ID:           id,
		OwnerID:      ownerID,
		EntryID:      entryID,
		BalanceType:  balanceType,
		AmountBefore: before,
		AmountAfter:  after,
		ChangeAmount: after.Sub(before),
		Reason:       reason,
		CreatedAt:    createdAt,
	}
}
