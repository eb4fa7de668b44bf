package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"chorewheel/app/models"
	"chorewheel/app/services"
)

// ChoreController handles HTTP requests for chores and completion toggling.
type ChoreController struct {
	Chores     *services.ChoreService
	Reconciler *services.Reconciler
}

// NewChoreController creates a new ChoreController.
func NewChoreController(chores *services.ChoreService, reconciler *services.Reconciler) *ChoreController {
	return &ChoreController{Chores: chores, Reconciler: reconciler}
}

// GetChores handles GET /chores.
func (c *ChoreController) GetChores(w http.ResponseWriter, r *http.Request) {
	chores, err := c.Chores.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(chores)
}

// CreateChore handles POST /chores.
func (c *ChoreController) CreateChore(w http.ResponseWriter, r *http.Request) {
	var chore models.Chore
	if err := json.NewDecoder(r.Body).Decode(&chore); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	created, err := c.Chores.Add(chore)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// UpdateChore handles PUT /chores/{choreID}.
func (c *ChoreController) UpdateChore(w http.ResponseWriter, r *http.Request) {
	choreID := mux.Vars(r)["choreID"]
	var patch models.Chore
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	updated, err := c.Chores.Update(choreID, patch)
	if errors.Is(err, services.ErrChoreNotFound) {
		http.Error(w, "Chore not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// DeleteChore handles DELETE /chores/{choreID}.
func (c *ChoreController) DeleteChore(w http.ResponseWriter, r *http.Request) {
	choreID := mux.Vars(r)["choreID"]
	err := c.Chores.Delete(choreID)
	if errors.Is(err, services.ErrChoreNotFound) {
		http.Error(w, "Chore not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkChore handles POST /chores/{choreID}/complete. The fast-path state is
// written first and is authoritative; the ledger patch afterwards is
// best-effort and never fails the request.
func (c *ChoreController) MarkChore(w http.ResponseWriter, r *http.Request) {
	choreID := mux.Vars(r)["choreID"]
	var body struct {
		MemberID string `json:"memberId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	now := time.Now()
	pk, member, err := c.Chores.Mark(choreID, body.MemberID, now)
	if errors.Is(err, services.ErrChoreNotFound) || errors.Is(err, services.ErrMemberNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if _, err := c.Reconciler.ApplyCompletion(r.Context(), pk, choreID, member.ID, member.Name, now); err != nil {
		slog.Warn("ledger completion write failed", "periodKey", pk, "choreId", choreID, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"periodKey": pk})
}

// UnmarkChore handles DELETE /chores/{choreID}/complete.
func (c *ChoreController) UnmarkChore(w http.ResponseWriter, r *http.Request) {
	choreID := mux.Vars(r)["choreID"]

	pk, _, err := c.Chores.Unmark(choreID, time.Now())
	if errors.Is(err, services.ErrChoreNotFound) {
		http.Error(w, "Chore not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if _, err := c.Reconciler.RevertCompletion(r.Context(), pk, choreID); err != nil {
		slog.Warn("ledger completion revert failed", "periodKey", pk, "choreId", choreID, "error", err)
	}

	w.WriteHeader(http.StatusNoContent)
}
