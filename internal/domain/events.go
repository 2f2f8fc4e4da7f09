package domain

import "time"

// Event types
const (
	EventTypeEntryCreated   = "ledger_entry.created"
	EventTypeEntryUpdated   = "ledger_entry.updated"
	EventTypeEntryDeleted   = "ledger_entry.deleted"
	EventTypeOwnerOnboarded = "owner.onboarded"
)

// Aggregate types
const (
	AggregateTypeLedgerEntry = "ledger_entry"
	AggregateTypeOwner       = "owner"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// EntryEventPayload builds the payload shared by ledger entry events.
func EntryEventPayload(e *LedgerEntry) map[string]any {
	return map[string]any{
		"entry_id":                  e.ID,
		"owner_id":                  e.OwnerID,
		"kind":                      string(e.Kind),
		"date":                      e.Date.Format(time.DateOnly),
		"amount":                    e.Amount.StringFixed(MoneyPlaces),
		"fee_percentage":            e.FeePercentage.StringFixed(MoneyPlaces),
		"fee_amount":                e.FeeAmount.StringFixed(MoneyPlaces),
		"electronic_balance_after":  e.ElectronicBalanceAfter.StringFixed(MoneyPlaces),
		"cash_balance_after":        e.CashBalanceAfter.StringFixed(MoneyPlaces),
		"electronic_balance_before": e.ElectronicBalanceBefore.StringFixed(MoneyPlaces),
		"cash_balance_before":       e.CashBalanceBefore.StringFixed(MoneyPlaces),
	}
}
