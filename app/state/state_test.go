package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"chorewheel/app/models"
)

func TestLoadMissingFileSeedsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := NewFileStore(path)

	st, err := store.Load()
	require.NoError(t, err)
	require.Len(t, st.Members, 4)
	require.Len(t, st.Chores, 11)
	require.NotNil(t, st.Completions)

	// The seed is written back so every process sees the same household.
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "state.json"))

	idx := 3
	st := &models.State{
		Members: []models.Member{{ID: "a", Name: "Alice", Color: "#fff"}},
		Chores: []models.Chore{{
			ID: "c1", Name: "Dishes", Frequency: models.Daily,
			SortIndex: &idx, ExemptMemberIDs: []string{"a"}, TrackOnLeaderboard: true,
		}},
		Completions: map[string]map[string]models.CompletionRecord{
			"D:2026-8-5": {"c1": {DoneByMemberID: "a", At: 1754380800000}},
		},
	}
	require.NoError(t, store.Save(st))

	got, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, st.Members, got.Members)
	require.Equal(t, st.Chores, got.Chores)
	require.Equal(t, st.Completions, got.Completions)
}

func TestLoadAppliesLegacyChoreDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	// A chore written before exemptions and leaderboard tracking existed.
	doc := `{
		"members": [{"id": "a", "name": "Alice"}],
		"chores": [{"id": "c1", "name": "Dishes", "frequency": "daily"}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	st, err := NewFileStore(path).Load()
	require.NoError(t, err)
	require.Equal(t, []string{}, st.Chores[0].ExemptMemberIDs)
	require.True(t, st.Chores[0].TrackOnLeaderboard)
	require.NotNil(t, st.Completions)
}

func TestLoadCorruptFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	st, err := NewFileStore(path).Load()
	require.NoError(t, err)
	require.Len(t, st.Members, 4)

	// The broken file is left alone until the next save.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "{not json", string(data))
}
