package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"chorewheel/app/services"
	"chorewheel/app/state"
)

// LeaderboardController renders rankings derived from the ledger.
type LeaderboardController struct {
	Store      *state.FileStore
	Aggregator *services.Aggregator
}

// NewLeaderboardController creates a new LeaderboardController.
func NewLeaderboardController(store *state.FileStore, aggregator *services.Aggregator) *LeaderboardController {
	return &LeaderboardController{Store: store, Aggregator: aggregator}
}

// GetLeaderboard handles GET /leaderboard?window=all|week|month. A failing
// ledger degrades to an empty leaderboard rather than an error: rankings are
// a derived view and must never break the app.
func (c *LeaderboardController) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	window := services.Window(r.URL.Query().Get("window"))
	if window == "" {
		window = services.WindowAll
	}
	if !window.Valid() {
		http.Error(w, "Invalid window, want all, week or month", http.StatusBadRequest)
		return
	}

	st, err := c.Store.Load()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	board, err := c.Aggregator.Build(r.Context(), st, window, time.Now())
	if err != nil {
		slog.Warn("leaderboard aggregation failed", "window", window, "error", err)
		board = &services.Leaderboard{Window: window}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(board)
}
