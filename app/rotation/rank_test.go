package rotation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"chorewheel/app/models"
)

func intPtr(i int) *int { return &i }

func TestBuildRanksSortIndexOrder(t *testing.T) {
	chores := []models.Chore{
		{ID: "c", Name: "Stove", Frequency: models.Weekly, SortIndex: intPtr(2)},
		{ID: "a", Name: "Trash", Frequency: models.Weekly, SortIndex: intPtr(0)},
		{ID: "b", Name: "Living room", Frequency: models.Weekly, SortIndex: intPtr(1)},
	}

	ranks := BuildRanks(chores, models.Weekly)
	require.Equal(t, map[string]int{"a": 0, "b": 1, "c": 2}, ranks)
}

func TestBuildRanksNilSortIndexSinksLast(t *testing.T) {
	chores := []models.Chore{
		{ID: "late", Name: "Added later", Frequency: models.Daily},
		{ID: "first", Name: "Dishes", Frequency: models.Daily, SortIndex: intPtr(5)},
	}

	ranks := BuildRanks(chores, models.Daily)
	require.Equal(t, 0, ranks["first"])
	require.Equal(t, 1, ranks["late"])
}

func TestBuildRanksNameThenIDTieBreak(t *testing.T) {
	chores := []models.Chore{
		{ID: "z", Name: "Same", Frequency: models.Daily, SortIndex: intPtr(0)},
		{ID: "m", Name: "Same", Frequency: models.Daily, SortIndex: intPtr(0)},
		{ID: "k", Name: "Other", Frequency: models.Daily, SortIndex: intPtr(0)},
	}

	ranks := BuildRanks(chores, models.Daily)
	require.Equal(t, 0, ranks["k"]) // "Other" < "Same"
	require.Equal(t, 1, ranks["m"])
	require.Equal(t, 2, ranks["z"])
}

func TestBuildRanksIgnoresOtherFrequencies(t *testing.T) {
	chores := []models.Chore{
		{ID: "d1", Name: "Dishes", Frequency: models.Daily, SortIndex: intPtr(0)},
		{ID: "w1", Name: "Trash", Frequency: models.Weekly, SortIndex: intPtr(0)},
	}

	ranks := BuildRanks(chores, models.Daily)
	require.Len(t, ranks, 1)
	require.Contains(t, ranks, "d1")
}

func TestBuildAllRanksCoversEveryFrequency(t *testing.T) {
	chores := []models.Chore{
		{ID: "d1", Name: "Dishes", Frequency: models.Daily},
		{ID: "w1", Name: "Trash", Frequency: models.Weekly},
		{ID: "m1", Name: "Stairs", Frequency: models.Monthly},
	}

	all := BuildAllRanks(chores)
	require.Equal(t, 0, all[models.Daily]["d1"])
	require.Equal(t, 0, all[models.Weekly]["w1"])
	require.Equal(t, 0, all[models.Monthly]["m1"])
}
