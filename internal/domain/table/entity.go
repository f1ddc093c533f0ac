package table

import (
	"github.com/google/uuid"
)

// Table is a physical table as configured by the restaurant. Instances are
// loaded from the store and treated as immutable reference data during
// allocation.
type Table struct {
	ID          uuid.UUID
	GroupID     uuid.UUID
	Name        string
	MinCapacity int
	MaxCapacity int
	Type        Type
	SortOrder   int
	CanCombine  bool
	Status      OperationalStatus
	Bookable    bool
}

// Usable reports whether the table may receive reservations at all.
func (t Table) Usable() bool {
	return t.Bookable && t.Status == StatusNormal
}

// Fits reports whether a party fits the table's configured capacity range.
func (t Table) Fits(partySize int) bool {
	return partySize >= t.MinCapacity && partySize <= t.MaxCapacity
}

// Group is the administrative boundary for combinations: a combination may
// only draw members from a single group.
type Group struct {
	ID        uuid.UUID
	Name      string
	SortOrder int
}
