package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chorewheel/app/ledger"
	"chorewheel/app/models"
)

func completedEntry(id, choreID, memberID string, at time.Time) *models.LedgerEntry {
	return &models.LedgerEntry{
		ID:                  id,
		PeriodKey:           "D:2026-8-1",
		ChoreID:             choreID,
		FrequencySnapshot:   models.Daily,
		CreatedAt:           at,
		Completed:           true,
		CompletedAt:         &at,
		CompletedByMemberID: &memberID,
	}
}

func TestMemberRankingWindow(t *testing.T) {
	store := ledger.NewMemoryStore()
	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	// 3 recent completions by X, 1 by Y, 10 by X older than 30 days.
	for i := 0; i < 3; i++ {
		require.NoError(t, store.Put(ctx, completedEntry(
			"recent-x-"+string(rune('a'+i)), "dishes", "x", now.AddDate(0, 0, -i-1))))
	}
	require.NoError(t, store.Put(ctx, completedEntry("recent-y", "trash", "y", now.AddDate(0, 0, -2))))
	for i := 0; i < 10; i++ {
		require.NoError(t, store.Put(ctx, completedEntry(
			"old-x-"+string(rune('a'+i)), "dishes", "x", now.AddDate(0, 0, -40-i))))
	}

	st := &models.State{Members: []models.Member{
		{ID: "x", Name: "Xena"},
		{ID: "y", Name: "Yuri"},
	}}

	agg := NewAggregator(store)

	week, err := agg.MemberRanking(ctx, st, WindowWeek, now)
	require.NoError(t, err)
	require.Equal(t, []MemberScore{
		{MemberID: "x", Name: "Xena", Score: 3},
		{MemberID: "y", Name: "Yuri", Score: 1},
	}, week)

	all, err := agg.MemberRanking(ctx, st, WindowAll, now)
	require.NoError(t, err)
	require.Equal(t, 13, all[0].Score)
	require.Equal(t, 1, all[1].Score)
}

func TestMemberRankingSkipsUnattributedCompletions(t *testing.T) {
	store := ledger.NewMemoryStore()
	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	at := now.AddDate(0, 0, -1)
	require.NoError(t, store.Put(ctx, &models.LedgerEntry{
		ID: "anon", PeriodKey: "D:2026-8-29", ChoreID: "dishes",
		FrequencySnapshot: models.Daily, CreatedAt: at,
		Completed: true, CompletedAt: &at,
	}))

	st := &models.State{Members: []models.Member{{ID: "x", Name: "Xena"}}}
	rows, err := NewAggregator(store).MemberRanking(ctx, st, WindowAll, now)
	require.NoError(t, err)
	require.Equal(t, 0, rows[0].Score)
}

func TestMemberRankingTieBreaksByName(t *testing.T) {
	store := ledger.NewMemoryStore()
	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)

	st := &models.State{Members: []models.Member{
		{ID: "2", Name: "ben"},
		{ID: "1", Name: "Alice"},
	}}

	rows, err := NewAggregator(store).MemberRanking(context.Background(), st, WindowAll, now)
	require.NoError(t, err)
	// Equal scores: case-insensitive name order decides.
	require.Equal(t, "Alice", rows[0].Name)
	require.Equal(t, "ben", rows[1].Name)
}

func TestChoreCountsExcludesUntracked(t *testing.T) {
	store := ledger.NewMemoryStore()
	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, completedEntry("e1", "dishes", "x", now.AddDate(0, 0, -1))))
	require.NoError(t, store.Put(ctx, completedEntry("e2", "secret", "x", now.AddDate(0, 0, -1))))

	st := &models.State{
		Members: []models.Member{{ID: "x", Name: "Xena"}},
		Chores: []models.Chore{
			{ID: "dishes", Name: "Dishes", Frequency: models.Daily, TrackOnLeaderboard: true},
			{ID: "secret", Name: "Secret", Frequency: models.Daily, TrackOnLeaderboard: false},
		},
	}

	rows, err := NewAggregator(store).ChoreCounts(ctx, st, WindowAll, now)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "dishes", rows[0].ChoreID)
	require.Equal(t, 1, rows[0].Count)
}

func TestBuildDegradesWithBrokenStore(t *testing.T) {
	st := &models.State{}
	_, err := NewAggregator(brokenStore{}).Build(context.Background(), st, WindowAll, time.Now())
	require.Error(t, err)
}

func TestWindowValidation(t *testing.T) {
	require.True(t, WindowAll.Valid())
	require.True(t, WindowWeek.Valid())
	require.True(t, WindowMonth.Valid())
	require.False(t, Window("year").Valid())
}
