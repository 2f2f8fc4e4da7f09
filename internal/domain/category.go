package domain

import "time"

// Category groups an owner's ledger entries.
type Category struct {
	CreatedAt time.Time
	ID        string
	OwnerID   string
	Name      string
}
