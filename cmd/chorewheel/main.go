// Package main provides the chorewheel binary entry point: a household
// chore rotation service with a durable completion ledger.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"chorewheel/app/config"
	"chorewheel/app/ledger"
	"chorewheel/app/services"
	"chorewheel/app/state"
)

const appName = "chorewheel"

var configPath string

func main() {
	root := &cobra.Command{
		Use:   appName,
		Short: "Rotating chore assignments with a durable completion ledger",
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (YAML)")

	root.AddCommand(serveCmd())
	root.AddCommand(reconcileCmd())
	root.AddCommand(leaderboardCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and keep the ledger reconciled",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			app, err := NewApp(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx)
		},
	}
}

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Run one reconciliation pass and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := ledger.Open(cfg.Ledger)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			defer store.Close(ctx)

			st, err := state.NewFileStore(cfg.State.Path).Load()
			if err != nil {
				return err
			}

			seeded := services.NewReconciler(store).Reconcile(ctx, st, time.Now())
			fmt.Printf("seeded %d ledger entries\n", seeded)
			return nil
		},
	}
}

func leaderboardCmd() *cobra.Command {
	var window string
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print completion rankings",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := services.Window(window)
			if !w.Valid() {
				return fmt.Errorf("invalid window %q, want all, week or month", window)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := ledger.Open(cfg.Ledger)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			defer store.Close(ctx)

			st, err := state.NewFileStore(cfg.State.Path).Load()
			if err != nil {
				return err
			}

			board, err := services.NewAggregator(store).Build(ctx, st, w, time.Now())
			if err != nil {
				return err
			}

			fmt.Printf("Members (%s):\n", w)
			for i, row := range board.Members {
				fmt.Printf("  %2d. %-24s %d\n", i+1, row.Name, row.Score)
			}
			fmt.Println("Chores:")
			for _, row := range board.Chores {
				fmt.Printf("      %-24s %-8s %d\n", row.Name, row.Frequency, row.Count)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&window, "window", "w", "all", "ranking window: all, week or month")
	return cmd
}

// loadConfig reads the configured file, or falls back to chorewheel.yaml in
// the working directory, or plain defaults when neither exists.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		if _, err := os.Stat("chorewheel.yaml"); err == nil {
			path = "chorewheel.yaml"
		} else {
			cfg := config.DefaultConfig()
			return cfg, cfg.Validate()
		}
	}

	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
