package rotation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chorewheel/app/models"
)

var household = []models.Member{
	{ID: "a", Name: "Alice"},
	{ID: "b", Name: "Ben"},
	{ID: "c", Name: "Cleo"},
	{ID: "d", Name: "Dara"},
}

func TestAssignStaysInRange(t *testing.T) {
	dates := []time.Time{
		time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC),
		time.Date(2026, time.August, 5, 8, 0, 0, 0, time.UTC),
		time.Date(2030, time.December, 31, 8, 0, 0, 0, time.UTC),
	}
	for _, freq := range []models.Frequency{models.Daily, models.Weekly, models.Monthly} {
		for _, at := range dates {
			for n := 1; n <= 5; n++ {
				for offset := 0; offset < 7; offset++ {
					idx := Assign(freq, at, n, offset)
					require.GreaterOrEqual(t, idx, 0)
					require.Less(t, idx, n)
				}
			}
		}
	}
}

// Daily indexes are negative before the Unix epoch; assignment must still
// land in range and resolve to a member instead of panicking.
func TestAssignPreEpochDates(t *testing.T) {
	dates := []time.Time{
		time.Date(1969, time.December, 25, 8, 0, 0, 0, time.UTC),
		time.Date(1955, time.March, 3, 8, 0, 0, 0, time.UTC),
	}
	for _, freq := range []models.Frequency{models.Daily, models.Weekly, models.Monthly} {
		for _, at := range dates {
			for n := 1; n <= 5; n++ {
				for offset := 0; offset < 7; offset++ {
					idx := Assign(freq, at, n, offset)
					require.GreaterOrEqual(t, idx, 0)
					require.Less(t, idx, n)
				}
			}
		}
	}

	chore := models.Chore{ID: "dishes", Frequency: models.Daily, ExemptMemberIDs: []string{}}
	member := AssignedMember(chore, household, map[string]int{"dishes": 0}, dates[0])
	require.NotNil(t, member)
}

func TestAssignNoEligibleMembers(t *testing.T) {
	at := time.Date(2026, time.August, 5, 8, 0, 0, 0, time.UTC)
	require.Equal(t, Unassigned, Assign(models.Daily, at, 0, 0))
	require.Equal(t, Unassigned, Assign(models.Weekly, at, 0, 3))
}

func TestAssignDeterministic(t *testing.T) {
	at := time.Date(2026, time.August, 5, 8, 0, 0, 0, time.UTC)
	first := Assign(models.Weekly, at, 4, 2)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, Assign(models.Weekly, at, 4, 2))
	}
}

// Two same-frequency chores whose ranks differ by one must land one member
// apart, so sibling chores spread across the household instead of piling on
// the same person.
func TestAdjacentOffsetsSpreadAssignments(t *testing.T) {
	at := time.Date(2026, time.August, 5, 8, 0, 0, 0, time.UTC)
	for n := 2; n <= 5; n++ {
		for offset := 0; offset < n; offset++ {
			a := Assign(models.Weekly, at, n, offset)
			b := Assign(models.Weekly, at, n, offset+1)
			require.Equal(t, (a+1)%n, b)
		}
	}
}

// Four members, one weekly chore, no exemptions: over four consecutive
// weeks everyone gets the chore exactly once before the cycle repeats.
func TestWeeklyRotationCyclesThroughAllMembers(t *testing.T) {
	chore := models.Chore{ID: "trash", Name: "Take out trash", Frequency: models.Weekly, ExemptMemberIDs: []string{}}
	ranks := map[string]int{"trash": 0}

	start := time.Date(2026, time.February, 4, 8, 0, 0, 0, time.UTC)
	seen := map[string]int{}
	for week := 0; week < 4; week++ {
		member := AssignedMember(chore, household, ranks, start.AddDate(0, 0, 7*week))
		require.NotNil(t, member)
		seen[member.ID]++
	}

	require.Len(t, seen, 4)
	for _, count := range seen {
		require.Equal(t, 1, count)
	}
}

func TestExemptMembersNeverAssigned(t *testing.T) {
	chore := models.Chore{
		ID:              "bins",
		Name:            "Bins",
		Frequency:       models.Daily,
		ExemptMemberIDs: []string{"b", "d"},
	}

	eligible := Eligible(chore, household)
	require.Equal(t, []models.Member{household[0], household[2]}, eligible)

	ranks := map[string]int{"bins": 0}
	start := time.Date(2026, time.August, 1, 8, 0, 0, 0, time.UTC)
	for day := 0; day < 30; day++ {
		at := start.AddDate(0, 0, day)
		idx := Assign(chore.Frequency, at, len(eligible), ranks[chore.ID])
		require.Contains(t, []int{0, 1}, idx)

		member := AssignedMember(chore, household, ranks, at)
		require.NotNil(t, member)
		require.Contains(t, []string{"a", "c"}, member.ID)
	}
}

func TestAssignedMemberNilWhenAllExempt(t *testing.T) {
	chore := models.Chore{
		ID:              "nobody",
		Frequency:       models.Daily,
		ExemptMemberIDs: []string{"a", "b", "c", "d"},
	}
	at := time.Date(2026, time.August, 5, 8, 0, 0, 0, time.UTC)
	require.Nil(t, AssignedMember(chore, household, map[string]int{}, at))
}
