package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"chorewheel/app/models"
	"chorewheel/app/services"
)

// MemberController handles HTTP requests for household members.
type MemberController struct {
	Members *services.MemberService
}

// NewMemberController creates a new MemberController.
func NewMemberController(members *services.MemberService) *MemberController {
	return &MemberController{Members: members}
}

// GetMembers handles GET /members.
func (c *MemberController) GetMembers(w http.ResponseWriter, r *http.Request) {
	members, err := c.Members.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(members)
}

// CreateMember handles POST /members.
func (c *MemberController) CreateMember(w http.ResponseWriter, r *http.Request) {
	var member models.Member
	if err := json.NewDecoder(r.Body).Decode(&member); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	created, err := c.Members.Add(member)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// UpdateMember handles PUT /members/{memberID}.
func (c *MemberController) UpdateMember(w http.ResponseWriter, r *http.Request) {
	memberID := mux.Vars(r)["memberID"]
	var patch models.Member
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	updated, err := c.Members.Update(memberID, patch)
	if errors.Is(err, services.ErrMemberNotFound) {
		http.Error(w, "Member not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// DeleteMember handles DELETE /members/{memberID}.
func (c *MemberController) DeleteMember(w http.ResponseWriter, r *http.Request) {
	memberID := mux.Vars(r)["memberID"]
	err := c.Members.Delete(memberID)
	if errors.Is(err, services.ErrMemberNotFound) {
		http.Error(w, "Member not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
