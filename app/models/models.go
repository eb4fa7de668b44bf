package models

import (
	"encoding/json"
	"time"
)

// Frequency is the recurrence class of a chore.
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

// Valid reports whether f is one of the three known frequencies.
func (f Frequency) Valid() bool {
	return f == Daily || f == Weekly || f == Monthly
}

// Member is one person in the household. List order is display order.
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Chore is a recurring task assigned on rotation.
//
// SortIndex orders chores within a frequency; nil sorts after any explicit
// index. ExemptMemberIDs lists members who never get this chore.
type Chore struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Icon               string    `json:"icon,omitempty"`
	Frequency          Frequency `json:"frequency"`
	SortIndex          *int      `json:"sortIndex,omitempty"`
	RotationStart      int64     `json:"rotationStart,omitempty"`
	ExemptMemberIDs    []string  `json:"exemptMemberIds"`
	TrackOnLeaderboard bool      `json:"trackOnLeaderboard"`
}

// UnmarshalJSON applies the legacy-state migrations: a missing
// trackOnLeaderboard means true, a missing exemption list means none.
func (c *Chore) UnmarshalJSON(data []byte) error {
	type alias Chore
	a := alias{TrackOnLeaderboard: true}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if a.ExemptMemberIDs == nil {
		a.ExemptMemberIDs = []string{}
	}
	*c = Chore(a)
	return nil
}

// CompletionRecord marks a chore done for one period in the fast-path store.
type CompletionRecord struct {
	DoneByMemberID string `json:"doneByMemberId"`
	At             int64  `json:"at"`
}

// Prefs holds presentation preferences. Stored and round-tripped, not acted
// on by this service.
type Prefs struct {
	Dark      bool `json:"dark"`
	AutoNight bool `json:"autoNight"`
}

// State is the whole fast-path document: members, chores, and the current
// completion map keyed periodKey -> choreID -> record. Last write wins.
type State struct {
	Members     []Member                               `json:"members"`
	Chores      []Chore                                `json:"chores"`
	Completions map[string]map[string]CompletionRecord `json:"completions"`
	Prefs       Prefs                                  `json:"prefs"`
}

// Completion returns the completion record for (periodKey, choreID), or nil.
func (s *State) Completion(periodKey, choreID string) *CompletionRecord {
	byChore, ok := s.Completions[periodKey]
	if !ok {
		return nil
	}
	rec, ok := byChore[choreID]
	if !ok {
		return nil
	}
	return &rec
}

// MemberByID returns the member with the given id, or nil.
func (s *State) MemberByID(id string) *Member {
	for i := range s.Members {
		if s.Members[i].ID == id {
			return &s.Members[i]
		}
	}
	return nil
}

// ChoreByID returns the chore with the given id, or nil.
func (s *State) ChoreByID(id string) *Chore {
	for i := range s.Chores {
		if s.Chores[i].ID == id {
			return &s.Chores[i]
		}
	}
	return nil
}

// LedgerEntry is one durable row per (periodKey, choreID). The primary key
// is "<periodKey>|<choreID>". PeriodKey, ChoreID and FrequencySnapshot never
// change after creation; AssignedMemberID is fixed at creation time even if
// exemptions or the member list change later. Rows are never deleted.
type LedgerEntry struct {
	ID                  string     `json:"id"`
	PeriodKey           string     `json:"periodKey"`
	ChoreID             string     `json:"choreId"`
	ChoreNameSnapshot   string     `json:"choreNameSnapshot,omitempty"`
	FrequencySnapshot   Frequency  `json:"frequencySnapshot"`
	AssignedMemberID    *string    `json:"assignedMemberId"`
	CreatedAt           time.Time  `json:"createdAt"`
	Completed           bool       `json:"completed"`
	CompletedAt         *time.Time `json:"completedAt"`
	CompletedByMemberID *string    `json:"completedByMemberId"`
	CompletedByName     *string    `json:"completedByNameSnapshot"`
}

// LedgerID builds the composite primary key for a ledger entry.
func LedgerID(periodKey, choreID string) string {
	return periodKey + "|" + choreID
}
