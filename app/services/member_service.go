package services

import (
	"fmt"

	"github.com/google/uuid"

	"chorewheel/app/models"
)

// MemberService handles household membership against the fast-path store.
type MemberService struct {
	store StateStore
}

// NewMemberService creates a new instance of MemberService.
func NewMemberService(store StateStore) *MemberService {
	return &MemberService{store: store}
}

// List returns all members in display order.
func (s *MemberService) List() ([]models.Member, error) {
	st, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	return st.Members, nil
}

// Add appends a member to the household.
func (s *MemberService) Add(member models.Member) (*models.Member, error) {
	if member.Name == "" {
		return nil, fmt.Errorf("member name is required")
	}

	st, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	st.Members = append(st.Members, member)
	if err := s.store.Save(st); err != nil {
		return nil, err
	}
	return &member, nil
}

// Update renames or recolors a member.
func (s *MemberService) Update(id string, patch models.Member) (*models.Member, error) {
	st, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	member := st.MemberByID(id)
	if member == nil {
		return nil, ErrMemberNotFound
	}
	if patch.Name != "" {
		member.Name = patch.Name
	}
	if patch.Color != "" {
		member.Color = patch.Color
	}
	if err := s.store.Save(st); err != nil {
		return nil, err
	}
	return member, nil
}

// Delete removes a member and strips them from every exemption list. Ledger
// history keeps counting them through name snapshots; future rotation simply
// no longer includes them.
func (s *MemberService) Delete(id string) error {
	st, err := s.store.Load()
	if err != nil {
		return err
	}

	kept := st.Members[:0]
	found := false
	for _, m := range st.Members {
		if m.ID == id {
			found = true
			continue
		}
		kept = append(kept, m)
	}
	if !found {
		return ErrMemberNotFound
	}
	st.Members = kept

	for i := range st.Chores {
		exempt := st.Chores[i].ExemptMemberIDs[:0]
		for _, e := range st.Chores[i].ExemptMemberIDs {
			if e != id {
				exempt = append(exempt, e)
			}
		}
		st.Chores[i].ExemptMemberIDs = exempt
	}
	return s.store.Save(st)
}
