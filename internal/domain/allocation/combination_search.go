package allocation

import (
	"sort"

	"tablebook/internal/domain/table"

	"github.com/google/uuid"
)

// searchCombination finds the smallest same-group subset of combinable
// candidates whose capacity covers the party. Within one cardinality the
// subset wasting the least capacity wins; ties fall to seating order, which
// the lexicographic enumeration over pre-sorted tables yields for free.
func searchCombination(candidates []table.Table, groupOrder map[uuid.UUID]int, partySize, maxTables int) *Result {
	byGroup := make(map[uuid.UUID][]table.Table)
	for _, t := range candidates {
		if t.CanCombine {
			byGroup[t.GroupID] = append(byGroup[t.GroupID], t)
		}
	}
	if len(byGroup) == 0 {
		return nil
	}

	groupIDs := make([]uuid.UUID, 0, len(byGroup))
	largest := 0
	for id, members := range byGroup {
		groupIDs = append(groupIDs, id)
		if len(members) > largest {
			largest = len(members)
		}
	}
	sort.Slice(groupIDs, func(i, j int) bool {
		return groupOrder[groupIDs[i]] < groupOrder[groupIDs[j]]
	})

	limit := maxTables
	if limit <= 0 || limit > largest {
		limit = largest
	}

	for size := 2; size <= limit; size++ {
		var best []table.Table
		bestWaste := -1
		for _, gid := range groupIDs {
			found, waste := bestSubsetOfSize(byGroup[gid], size, partySize)
			if found == nil {
				continue
			}
			if bestWaste < 0 || waste < bestWaste {
				best = found
				bestWaste = waste
			}
		}
		if best != nil {
			return &Result{Combination: best}
		}
	}
	return nil
}

// bestSubsetOfSize scans all size-length subsets of one group's tables in
// lexicographic order, returning the minimal-waste feasible subset.
func bestSubsetOfSize(tables []table.Table, size, partySize int) ([]table.Table, int) {
	if size > len(tables) {
		return nil, 0
	}

	var best []table.Table
	bestWaste := -1
	picked := make([]table.Table, 0, size)

	var walk func(start, capacity int)
	walk = func(start, capacity int) {
		if len(picked) == size {
			if capacity < partySize {
				return
			}
			waste := capacity - partySize
			if bestWaste < 0 || waste < bestWaste {
				best = append(best[:0:0], picked...)
				bestWaste = waste
			}
			return
		}
		remaining := size - len(picked)
		for i := start; i <= len(tables)-remaining; i++ {
			picked = append(picked, tables[i])
			walk(i+1, capacity+tables[i].MaxCapacity)
			picked = picked[:len(picked)-1]
		}
	}
	walk(0, 0)

	return best, bestWaste
}
