package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"chorewheel/app/services"
	"chorewheel/app/state"
)

// ReconcileController exposes a manual reconciliation trigger.
type ReconcileController struct {
	Store      *state.FileStore
	Reconciler *services.Reconciler
}

// NewReconcileController creates a new ReconcileController.
func NewReconcileController(store *state.FileStore, reconciler *services.Reconciler) *ReconcileController {
	return &ReconcileController{Store: store, Reconciler: reconciler}
}

// Reconcile handles POST /reconcile: seeds ledger entries for every chore's
// current period. Safe to call any number of times.
func (c *ReconcileController) Reconcile(w http.ResponseWriter, r *http.Request) {
	st, err := c.Store.Load()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	seeded := c.Reconciler.Reconcile(r.Context(), st, time.Now())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"seeded": seeded})
}
