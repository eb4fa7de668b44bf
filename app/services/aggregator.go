package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"chorewheel/app/ledger"
	"chorewheel/app/models"
)

// Window restricts aggregation to completions within a trailing number of
// days, or all time.
type Window string

const (
	WindowAll   Window = "all"
	WindowWeek  Window = "week"  // trailing 7 days
	WindowMonth Window = "month" // trailing 30 days
)

// Valid reports whether w is a known window.
func (w Window) Valid() bool {
	return w == WindowAll || w == WindowWeek || w == WindowMonth
}

// cutoff returns the earliest completedAt that still counts, or ok=false for
// the all-time window.
func (w Window) cutoff(now time.Time) (time.Time, bool) {
	switch w {
	case WindowWeek:
		return now.Add(-7 * 24 * time.Hour), true
	case WindowMonth:
		return now.Add(-30 * 24 * time.Hour), true
	default:
		return time.Time{}, false
	}
}

// MemberScore is one leaderboard row.
type MemberScore struct {
	MemberID string `json:"memberId"`
	Name     string `json:"name"`
	Color    string `json:"color,omitempty"`
	Score    int    `json:"score"`
}

// ChoreCount is one most-completed-chores row.
type ChoreCount struct {
	ChoreID   string           `json:"choreId"`
	Name      string           `json:"name"`
	Frequency models.Frequency `json:"frequency"`
	Count     int              `json:"count"`
}

// Leaderboard bundles both rankings for one window.
type Leaderboard struct {
	Window  Window        `json:"window"`
	Members []MemberScore `json:"members"`
	Chores  []ChoreCount  `json:"chores"`
}

// Aggregator derives rankings from the full ledger. It only reads; a failing
// ledger degrades to an error the caller can render as an empty view.
type Aggregator struct {
	ledger ledger.Store
}

// NewAggregator creates an aggregator reading from the given ledger store.
func NewAggregator(store ledger.Store) *Aggregator {
	return &Aggregator{ledger: store}
}

// MemberRanking scores every member by completed ledger entries within the
// window. Entries count when completed with a known completer. Order: score
// descending, then name ascending (case-folded), then id — total and stable
// whatever order the store returns.
func (a *Aggregator) MemberRanking(ctx context.Context, st *models.State, w Window, now time.Time) ([]MemberScore, error) {
	entries, err := a.ledger.All(ctx)
	if err != nil {
		return nil, err
	}
	return memberRanking(entries, st.Members, w, now), nil
}

// ChoreCounts counts completions per chore within the window, restricted to
// chores tracked on the leaderboard. Same ordering rules as MemberRanking.
func (a *Aggregator) ChoreCounts(ctx context.Context, st *models.State, w Window, now time.Time) ([]ChoreCount, error) {
	entries, err := a.ledger.All(ctx)
	if err != nil {
		return nil, err
	}
	return choreCounts(entries, st.Chores, w, now), nil
}

// Build computes both rankings from a single ledger scan.
func (a *Aggregator) Build(ctx context.Context, st *models.State, w Window, now time.Time) (*Leaderboard, error) {
	entries, err := a.ledger.All(ctx)
	if err != nil {
		return nil, err
	}
	return &Leaderboard{
		Window:  w,
		Members: memberRanking(entries, st.Members, w, now),
		Chores:  choreCounts(entries, st.Chores, w, now),
	}, nil
}

func memberRanking(entries []models.LedgerEntry, members []models.Member, w Window, now time.Time) []MemberScore {
	byMember := make(map[string]int)
	for _, entry := range completedIn(entries, w, now) {
		byMember[*entry.CompletedByMemberID]++
	}

	rows := make([]MemberScore, 0, len(members))
	for _, m := range members {
		rows = append(rows, MemberScore{
			MemberID: m.ID,
			Name:     m.Name,
			Color:    m.Color,
			Score:    byMember[m.ID],
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		ni, nj := strings.ToLower(rows[i].Name), strings.ToLower(rows[j].Name)
		if ni != nj {
			return ni < nj
		}
		return rows[i].MemberID < rows[j].MemberID
	})
	return rows
}

func choreCounts(entries []models.LedgerEntry, chores []models.Chore, w Window, now time.Time) []ChoreCount {
	tracked := make(map[string]bool, len(chores))
	for _, c := range chores {
		if c.TrackOnLeaderboard {
			tracked[c.ID] = true
		}
	}

	byChore := make(map[string]int)
	for _, entry := range completedIn(entries, w, now) {
		if tracked[entry.ChoreID] {
			byChore[entry.ChoreID]++
		}
	}

	var rows []ChoreCount
	for _, c := range chores {
		if !tracked[c.ID] {
			continue
		}
		rows = append(rows, ChoreCount{
			ChoreID:   c.ID,
			Name:      c.Name,
			Frequency: c.Frequency,
			Count:     byChore[c.ID],
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		ni, nj := strings.ToLower(rows[i].Name), strings.ToLower(rows[j].Name)
		if ni != nj {
			return ni < nj
		}
		return rows[i].ChoreID < rows[j].ChoreID
	})
	return rows
}

// completedIn filters to entries that count toward scores: completed, with a
// known completer, inside the window.
func completedIn(entries []models.LedgerEntry, w Window, now time.Time) []models.LedgerEntry {
	cutoff, bounded := w.cutoff(now)
	var out []models.LedgerEntry
	for _, entry := range entries {
		if !entry.Completed || entry.CompletedByMemberID == nil {
			continue
		}
		if bounded && (entry.CompletedAt == nil || entry.CompletedAt.Before(cutoff)) {
			continue
		}
		out = append(out, entry)
	}
	return out
}
