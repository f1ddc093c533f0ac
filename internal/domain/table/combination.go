package table

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrTooFewTables         = errors.New("combination requires at least two tables")
	ErrTooManyTables        = errors.New("combination exceeds maximum table count")
	ErrMixedGroups          = errors.New("combination tables must share one group")
	ErrNotCombinable        = errors.New("table is not combinable")
	ErrInsufficientCapacity = errors.New("combination capacity is insufficient")
)

// Combination is an ordered set of tables jointly assigned to one
// reservation as a single capacity unit.
type Combination struct {
	id      uuid.UUID
	groupID uuid.UUID
	members []Table
}

// NewCombination validates the combination invariants: at least two members,
// all from one group, all combinable, enough total capacity for the party,
// and no more members than the policy allows (maxTables <= 0 means no limit).
func NewCombination(members []Table, partySize, maxTables int) (*Combination, error) {
	if len(members) < 2 {
		return nil, ErrTooFewTables
	}
	if maxTables > 0 && len(members) > maxTables {
		return nil, ErrTooManyTables
	}

	groupID := members[0].GroupID
	total := 0
	for _, m := range members {
		if m.GroupID != groupID {
			return nil, ErrMixedGroups
		}
		if !m.CanCombine {
			return nil, ErrNotCombinable
		}
		total += m.MaxCapacity
	}
	if total < partySize {
		return nil, ErrInsufficientCapacity
	}

	combined := make([]Table, len(members))
	copy(combined, members)

	return &Combination{
		id:      uuid.New(),
		groupID: groupID,
		members: combined,
	}, nil
}

func ReconstructCombination(id, groupID uuid.UUID, members []Table) *Combination {
	return &Combination{
		id:      id,
		groupID: groupID,
		members: members,
	}
}

func (c *Combination) ID() uuid.UUID      { return c.id }
func (c *Combination) GroupID() uuid.UUID { return c.groupID }

func (c *Combination) Members() []Table {
	out := make([]Table, len(c.members))
	copy(out, c.members)
	return out
}

func (c *Combination) TableIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(c.members))
	for i, m := range c.members {
		ids[i] = m.ID
	}
	return ids
}

func (c *Combination) TotalCapacity() int {
	total := 0
	for _, m := range c.members {
		total += m.MaxCapacity
	}
	return total
}
