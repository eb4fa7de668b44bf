package rotation

import (
	"sort"

	"chorewheel/app/models"
)

// BuildRanks assigns each chore of the given frequency a stable 0-based rank
// used as its fairness offset. Order: sortIndex ascending with nil sinking
// last, then name, then id as the final tie-break so the order is total even
// for identical names. The result is a derived view; rebuild it whenever the
// chore list changes.
func BuildRanks(chores []models.Chore, freq models.Frequency) map[string]int {
	var same []models.Chore
	for _, c := range chores {
		if c.Frequency == freq {
			same = append(same, c)
		}
	}
	sort.Slice(same, func(i, j int) bool {
		ai, bi := sortIndexOf(same[i]), sortIndexOf(same[j])
		if ai != bi {
			return ai < bi
		}
		if same[i].Name != same[j].Name {
			return same[i].Name < same[j].Name
		}
		return same[i].ID < same[j].ID
	})

	ranks := make(map[string]int, len(same))
	for i, c := range same {
		ranks[c.ID] = i
	}
	return ranks
}

// BuildAllRanks builds the rank maps for all three frequencies in one pass
// over the chore list.
func BuildAllRanks(chores []models.Chore) map[models.Frequency]map[string]int {
	return map[models.Frequency]map[string]int{
		models.Daily:   BuildRanks(chores, models.Daily),
		models.Weekly:  BuildRanks(chores, models.Weekly),
		models.Monthly: BuildRanks(chores, models.Monthly),
	}
}

// sortIndexOf treats a missing sortIndex as greater than any explicit one.
func sortIndexOf(c models.Chore) int {
	if c.SortIndex == nil {
		return int(^uint(0) >> 1)
	}
	return *c.SortIndex
}
