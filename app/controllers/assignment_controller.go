package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"chorewheel/app/models"
	"chorewheel/app/period"
	"chorewheel/app/rotation"
	"chorewheel/app/state"
)

// Assignment is one chore's rotation result for a date: who it falls to and
// whether it is already done this period.
type Assignment struct {
	Chore            models.Chore `json:"chore"`
	PeriodKey        string       `json:"periodKey"`
	AssignedMemberID *string      `json:"assignedMemberId"`
	AssignedName     *string      `json:"assignedName"`
	Completed        bool         `json:"completed"`
	CompletedByID    *string      `json:"completedByMemberId,omitempty"`
}

// AssignmentController renders the current rotation.
type AssignmentController struct {
	Store *state.FileStore
}

// NewAssignmentController creates a new AssignmentController.
func NewAssignmentController(store *state.FileStore) *AssignmentController {
	return &AssignmentController{Store: store}
}

// GetAssignments handles GET /assignments?date=RFC3339. Date defaults to
// now; assignments for any date are pure arithmetic, so past and future
// rotations can be previewed.
func (c *AssignmentController) GetAssignments(w http.ResponseWriter, r *http.Request) {
	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			http.Error(w, "Invalid date, want RFC3339", http.StatusBadRequest)
			return
		}
		date = parsed
	}

	st, err := c.Store.Load()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	ranks := rotation.BuildAllRanks(st.Chores)
	assignments := make([]Assignment, 0, len(st.Chores))
	for _, chore := range st.Chores {
		pk := period.KeyFor(chore.Frequency, date)
		a := Assignment{Chore: chore, PeriodKey: pk}
		if member := rotation.AssignedMember(chore, st.Members, ranks[chore.Frequency], date); member != nil {
			a.AssignedMemberID = &member.ID
			a.AssignedName = &member.Name
		}
		if completion := st.Completion(pk, chore.ID); completion != nil {
			doneBy := completion.DoneByMemberID
			a.Completed = true
			a.CompletedByID = &doneBy
		}
		assignments = append(assignments, a)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(assignments)
}
