package state

import (
	"time"

	"github.com/google/uuid"

	"chorewheel/app/models"
)

// DefaultState builds the starter household: four members and a small set of
// daily, weekly and monthly chores.
func DefaultState() *models.State {
	members := []models.Member{
		{ID: uuid.New().String(), Name: "Member 1", Color: "#6b8afd"},
		{ID: uuid.New().String(), Name: "Member 2", Color: "#57c08f"},
		{ID: uuid.New().String(), Name: "Member 3", Color: "#f2c266"},
		{ID: uuid.New().String(), Name: "Member 4", Color: "#c69cf6"},
	}

	now := time.Now().UnixMilli()
	chore := func(name, icon string, freq models.Frequency, sortIndex int) models.Chore {
		idx := sortIndex
		return models.Chore{
			ID:                 uuid.New().String(),
			Name:               name,
			Icon:               icon,
			Frequency:          freq,
			SortIndex:          &idx,
			RotationStart:      now,
			ExemptMemberIDs:    []string{},
			TrackOnLeaderboard: true,
		}
	}

	chores := []models.Chore{
		chore("Clean kitchen counter", "🍽️", models.Daily, 0),
		chore("Clean kitchen floors", "🫧", models.Daily, 1),
		chore("Clean sink area", "🧼", models.Daily, 2),

		chore("Take out trash", "🗑️", models.Weekly, 0),
		chore("Tidy living room", "🛋️", models.Weekly, 1),
		chore("Clean stove", "🍳", models.Weekly, 2),
		chore("Clean bathroom", "🚿", models.Weekly, 3),
		chore("Clean guest toilet", "🚽", models.Weekly, 4),
		chore("Clean dining table", "🍜", models.Weekly, 5),

		chore("Sweep stairs", "🧹", models.Monthly, 0),
		chore("Trim weeds", "🪣", models.Monthly, 1),
	}

	return &models.State{
		Members:     members,
		Chores:      chores,
		Completions: map[string]map[string]models.CompletionRecord{},
		Prefs:       models.Prefs{AutoNight: true},
	}
}
