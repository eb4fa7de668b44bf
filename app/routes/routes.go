package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"chorewheel/app/controllers"
)

// RegisterRoutes sets up all routes for the application.
func RegisterRoutes(router *mux.Router,
	choreController *controllers.ChoreController,
	memberController *controllers.MemberController,
	assignmentController *controllers.AssignmentController,
	leaderboardController *controllers.LeaderboardController,
	reconcileController *controllers.ReconcileController,
) {
	router.HandleFunc("/chores", choreController.GetChores).Methods(http.MethodGet)
	router.HandleFunc("/chores", choreController.CreateChore).Methods(http.MethodPost)
	router.HandleFunc("/chores/{choreID}", choreController.UpdateChore).Methods(http.MethodPut)
	router.HandleFunc("/chores/{choreID}", choreController.DeleteChore).Methods(http.MethodDelete)
	router.HandleFunc("/chores/{choreID}/complete", choreController.MarkChore).Methods(http.MethodPost)
	router.HandleFunc("/chores/{choreID}/complete", choreController.UnmarkChore).Methods(http.MethodDelete)

	router.HandleFunc("/members", memberController.GetMembers).Methods(http.MethodGet)
	router.HandleFunc("/members", memberController.CreateMember).Methods(http.MethodPost)
	router.HandleFunc("/members/{memberID}", memberController.UpdateMember).Methods(http.MethodPut)
	router.HandleFunc("/members/{memberID}", memberController.DeleteMember).Methods(http.MethodDelete)

	router.HandleFunc("/assignments", assignmentController.GetAssignments).Methods(http.MethodGet)
	router.HandleFunc("/leaderboard", leaderboardController.GetLeaderboard).Methods(http.MethodGet)
	router.HandleFunc("/reconcile", reconcileController.Reconcile).Methods(http.MethodPost)
}
