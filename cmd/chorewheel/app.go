package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"chorewheel/app/config"
	"chorewheel/app/controllers"
	"chorewheel/app/ledger"
	"chorewheel/app/models"
	"chorewheel/app/period"
	"chorewheel/app/routes"
	"chorewheel/app/services"
	"chorewheel/app/state"
)

// App wires the stores, services and HTTP surface together for serve mode.
type App struct {
	cfg *config.Config

	stateStore  *state.FileStore
	ledgerStore ledger.Store
	reconciler  *services.Reconciler

	server *http.Server
}

// NewApp creates the application from configuration.
func NewApp(cfg *config.Config) (*App, error) {
	ledgerStore, err := ledger.Open(cfg.Ledger)
	if err != nil {
		return nil, err
	}

	stateStore := state.NewFileStore(cfg.State.Path)
	reconciler := services.NewReconciler(ledgerStore)
	aggregator := services.NewAggregator(ledgerStore)

	router := mux.NewRouter()
	routes.RegisterRoutes(router,
		controllers.NewChoreController(services.NewChoreService(stateStore), reconciler),
		controllers.NewMemberController(services.NewMemberService(stateStore)),
		controllers.NewAssignmentController(stateStore),
		controllers.NewLeaderboardController(stateStore, aggregator),
		controllers.NewReconcileController(stateStore, reconciler),
	)

	return &App{
		cfg:         cfg,
		stateStore:  stateStore,
		ledgerStore: ledgerStore,
		reconciler:  reconciler,
		server:      &http.Server{Addr: cfg.Server.Listen, Handler: router},
	}, nil
}

// Run serves the API until ctx is cancelled. It reconciles once at startup,
// again whenever the state file changes on disk, and again shortly after
// each local-midnight period boundary (a daily boundary is always the
// nearest one, so a daily timer covers weekly and monthly too).
func (a *App) Run(ctx context.Context) error {
	defer a.ledgerStore.Close(context.Background())

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.reconcileNow(runCtx)

	if a.cfg.State.Watch {
		stop, err := state.Watch(a.stateStore.Path(), func() {
			slog.Info("state file changed, reconciling")
			a.reconcileNow(runCtx)
		})
		if err != nil {
			slog.Warn("state watch unavailable", "error", err)
		} else {
			defer stop()
		}
	}

	boundaryDone := make(chan struct{})
	go a.boundaryLoop(runCtx, boundaryDone)
	defer func() { cancel(); <-boundaryDone }()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", a.cfg.Server.Listen)
		if err := a.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return a.server.Shutdown(shutdownCtx)
}

// boundaryLoop sleeps until just past the next local midnight, reconciles,
// and reschedules. Seeding is lazy anyway, so a missed tick only delays the
// ledger until the next trigger.
func (a *App) boundaryLoop(ctx context.Context, done chan<- struct{}) {
	defer close(done)
	for {
		next := period.NextBoundary(models.Daily, time.Now()).Add(time.Second)
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			slog.Info("period boundary passed, reconciling")
			a.reconcileNow(ctx)
		}
	}
}

func (a *App) reconcileNow(ctx context.Context) {
	st, err := a.stateStore.Load()
	if err != nil {
		slog.Error("state load failed, skipping reconcile", "error", err)
		return
	}
	seeded := a.reconciler.Reconcile(ctx, st, time.Now())
	if seeded > 0 {
		slog.Info("ledger reconciled", "seeded", seeded)
	}
}
