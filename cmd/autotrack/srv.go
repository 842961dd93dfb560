package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"autotrack/internal/config"
	"autotrack/internal/models"
	"autotrack/internal/server"
	"autotrack/internal/store"
)

func newSrvCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "srv",
		Short: "Run the autotrack page and API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg == nil {
				return fmt.Errorf("config not initialized")
			}

			logger := slog.Default().With("component", "server")

			addr, err := server.ListenAddr(cfg.APIURL)
			if err != nil {
				return err
			}

			roster, err := cfg.ResolveRoster()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			st, err := openStore(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := st.Close(); err != nil {
					logger.Error("close store", "error", err)
				}
			}()

			dataPath := ""
			if st.Persistent() {
				dataPath = cfg.Storage.Path
			}

			srv := server.New(addr, st, server.Options{
				Title:        cfg.UI.Title,
				ShowPriority: cfg.UI.ShowPriority,
				Roster:       roster,
				Backend:      cfg.Storage.Backend,
				DataPath:     dataPath,
			}, logger)
			return srv.ListenAndServe(ctx)
		},
	}
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*store.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		st := store.NewMemory()
		if cfg.Storage.SeedDemo {
			if err := st.Seed(demoTasks()); err != nil {
				return nil, err
			}
			logger.Info("seeded demo tasks")
		}
		return st, nil
	case config.BackendSQLite:
		logger.Info("opening database", "path", cfg.Storage.Path)
		db, err := store.OpenSQLite(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		st, err := store.Open(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		return st, nil
	case config.BackendJSON:
		logger.Info("opening task file", "path", cfg.Storage.Path)
		return store.Open(ctx, store.NewJSONFile(cfg.Storage.Path))
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
}

func demoTasks() []models.Task {
	return []models.Task{
		{
			ID:        1,
			Name:      "Daily Report Generation",
			Status:    models.StatusCompleted,
			Submitter: "Ilda Karaj",
			Priority:  models.PriorityMedium,
			LastRun:   "2026-01-30 09:00",
			Notes:     "Runs every morning at 9 AM",
		},
		{
			ID:        2,
			Name:      "Data Sync Pipeline",
			Status:    models.StatusRunning,
			Submitter: "Torben Schmidt",
			Priority:  models.PriorityHigh,
			LastRun:   "2026-01-30 14:30",
			Notes:     "Syncing customer data from CRM",
		},
		{
			ID:        3,
			Name:      "Backup Automation",
			Status:    models.StatusPending,
			Submitter: "Kilian Zedelius",
			Priority:  models.PriorityMedium,
			LastRun:   "2026-01-29 23:00",
			Notes:     "Scheduled for midnight",
		},
	}
}
