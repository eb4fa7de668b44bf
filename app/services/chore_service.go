package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"chorewheel/app/models"
	"chorewheel/app/period"
	"chorewheel/app/state"
)

var (
	// ErrChoreNotFound is returned when a chore id doesn't exist.
	ErrChoreNotFound = errors.New("chore not found")
	// ErrMemberNotFound is returned when a member id doesn't exist.
	ErrMemberNotFound = errors.New("member not found")
)

// StateStore is the fast-path document store the services read and write.
// *state.FileStore is the production implementation.
type StateStore interface {
	Load() (*models.State, error)
	Save(*models.State) error
}

var _ StateStore = (*state.FileStore)(nil)

// ChoreService handles chore definitions and completion toggling against the
// fast-path state store.
type ChoreService struct {
	store StateStore
}

// NewChoreService creates a new instance of ChoreService.
func NewChoreService(store StateStore) *ChoreService {
	return &ChoreService{store: store}
}

// List returns all chores.
func (s *ChoreService) List() ([]models.Chore, error) {
	st, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	return st.Chores, nil
}

// Add creates a new chore. A missing sortIndex is set to one past the
// highest index among chores of the same frequency, so new chores land at
// the end of their group.
func (s *ChoreService) Add(chore models.Chore) (*models.Chore, error) {
	if chore.Name == "" {
		return nil, fmt.Errorf("chore name is required")
	}
	if !chore.Frequency.Valid() {
		return nil, fmt.Errorf("invalid frequency %q", chore.Frequency)
	}

	st, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	if chore.ID == "" {
		chore.ID = uuid.New().String()
	}
	if chore.ExemptMemberIDs == nil {
		chore.ExemptMemberIDs = []string{}
	}
	if chore.RotationStart == 0 {
		chore.RotationStart = time.Now().UnixMilli()
	}
	if chore.SortIndex == nil {
		next := 0
		for _, c := range st.Chores {
			if c.Frequency == chore.Frequency && c.SortIndex != nil && *c.SortIndex >= next {
				next = *c.SortIndex + 1
			}
		}
		chore.SortIndex = &next
	}

	st.Chores = append(st.Chores, chore)
	if err := s.store.Save(st); err != nil {
		return nil, err
	}
	return &chore, nil
}

// Update replaces the editable fields of an existing chore. Changing the
// frequency moves the chore to a new period-key namespace; ledger history
// written under the old namespace is kept as is.
func (s *ChoreService) Update(id string, patch models.Chore) (*models.Chore, error) {
	if !patch.Frequency.Valid() {
		return nil, fmt.Errorf("invalid frequency %q", patch.Frequency)
	}

	st, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	chore := st.ChoreByID(id)
	if chore == nil {
		return nil, ErrChoreNotFound
	}
	chore.Name = patch.Name
	chore.Icon = patch.Icon
	chore.Frequency = patch.Frequency
	chore.SortIndex = patch.SortIndex
	chore.TrackOnLeaderboard = patch.TrackOnLeaderboard
	if patch.ExemptMemberIDs != nil {
		chore.ExemptMemberIDs = patch.ExemptMemberIDs
	}

	if err := s.store.Save(st); err != nil {
		return nil, err
	}
	return chore, nil
}

// Delete removes a chore definition. Ledger history for it survives under
// its snapshots.
func (s *ChoreService) Delete(id string) error {
	st, err := s.store.Load()
	if err != nil {
		return err
	}

	kept := st.Chores[:0]
	found := false
	for _, c := range st.Chores {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return ErrChoreNotFound
	}
	st.Chores = kept
	return s.store.Save(st)
}

// Mark records a completion for the chore's current period in the fast-path
// store, and returns the period key plus the completing member for the
// follow-up ledger write.
func (s *ChoreService) Mark(choreID, memberID string, now time.Time) (string, *models.Member, error) {
	st, err := s.store.Load()
	if err != nil {
		return "", nil, err
	}
	if st.ChoreByID(choreID) == nil {
		return "", nil, ErrChoreNotFound
	}
	member := st.MemberByID(memberID)
	if member == nil {
		return "", nil, ErrMemberNotFound
	}

	pk := period.Key(st.Chores, choreID, now)
	if st.Completions[pk] == nil {
		st.Completions[pk] = map[string]models.CompletionRecord{}
	}
	st.Completions[pk][choreID] = models.CompletionRecord{
		DoneByMemberID: memberID,
		At:             now.UnixMilli(),
	}

	if err := s.store.Save(st); err != nil {
		return pk, nil, err
	}
	return pk, member, nil
}

// Unmark clears the completion for the chore's current period. Returns the
// period key; existed is false when there was nothing to clear.
func (s *ChoreService) Unmark(choreID string, now time.Time) (string, bool, error) {
	st, err := s.store.Load()
	if err != nil {
		return "", false, err
	}
	if st.ChoreByID(choreID) == nil {
		return "", false, ErrChoreNotFound
	}

	pk := period.Key(st.Chores, choreID, now)
	byChore, ok := st.Completions[pk]
	if !ok {
		return pk, false, nil
	}
	if _, ok := byChore[choreID]; !ok {
		return pk, false, nil
	}

	delete(byChore, choreID)
	if len(byChore) == 0 {
		delete(st.Completions, pk)
	}
	if err := s.store.Save(st); err != nil {
		return pk, false, err
	}
	return pk, true, nil
}
