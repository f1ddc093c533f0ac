//go:build unit

package table

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func combinableTable(groupID uuid.UUID, capacity int) Table {
	return Table{
		ID:          uuid.New(),
		GroupID:     groupID,
		MinCapacity: 1,
		MaxCapacity: capacity,
		Type:        TypeRegular,
		CanCombine:  true,
		Status:      StatusNormal,
		Bookable:    true,
	}
}

func TestNewCombination(t *testing.T) {
	groupA := uuid.New()
	groupB := uuid.New()

	t1 := combinableTable(groupA, 4)
	t2 := combinableTable(groupA, 4)
	t3 := combinableTable(groupA, 2)
	foreign := combinableTable(groupB, 4)
	rigid := combinableTable(groupA, 4)
	rigid.CanCombine = false

	tests := []struct {
		name      string
		members   []Table
		partySize int
		maxTables int
		wantErr   error
	}{
		{name: "two tables cover the party", members: []Table{t1, t2}, partySize: 6},
		{name: "exact capacity is enough", members: []Table{t1, t3}, partySize: 6},
		{name: "single table is not a combination", members: []Table{t1}, partySize: 2, wantErr: ErrTooFewTables},
		{name: "over the table limit", members: []Table{t1, t2, t3}, partySize: 8, maxTables: 2, wantErr: ErrTooManyTables},
		{name: "zero limit means unlimited", members: []Table{t1, t2, t3}, partySize: 8},
		{name: "mixed groups rejected", members: []Table{t1, foreign}, partySize: 6, wantErr: ErrMixedGroups},
		{name: "non-combinable member rejected", members: []Table{t1, rigid}, partySize: 6, wantErr: ErrNotCombinable},
		{name: "insufficient capacity", members: []Table{t1, t3}, partySize: 7, wantErr: ErrInsufficientCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			combo, err := NewCombination(tt.members, tt.partySize, tt.maxTables)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, combo)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.members[0].GroupID, combo.GroupID())
			assert.Len(t, combo.Members(), len(tt.members))
			assert.NotEqual(t, uuid.Nil, combo.ID())
		})
	}
}

func TestCombinationAccessors(t *testing.T) {
	group := uuid.New()
	t1 := combinableTable(group, 4)
	t2 := combinableTable(group, 2)

	combo, err := NewCombination([]Table{t1, t2}, 5, 0)
	require.NoError(t, err)

	assert.Equal(t, 6, combo.TotalCapacity())
	assert.Equal(t, []uuid.UUID{t1.ID, t2.ID}, combo.TableIDs())

	// Members returns a copy, not the backing slice.
	members := combo.Members()
	members[0].MaxCapacity = 99
	assert.Equal(t, 4, combo.Members()[0].MaxCapacity)
}

func TestTableUsableAndFits(t *testing.T) {
	tbl := combinableTable(uuid.New(), 4)
	tbl.MinCapacity = 2

	assert.True(t, tbl.Usable())
	assert.True(t, tbl.Fits(2))
	assert.True(t, tbl.Fits(4))
	assert.False(t, tbl.Fits(1))
	assert.False(t, tbl.Fits(5))

	maintenance := tbl
	maintenance.Status = StatusMaintenance
	assert.False(t, maintenance.Usable())

	hidden := tbl
	hidden.Bookable = false
	assert.False(t, hidden.Usable())
}
