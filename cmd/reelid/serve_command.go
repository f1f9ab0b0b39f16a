package main

import (
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"reelid/internal/history"
	"reelid/internal/identification"
	"reelid/internal/logging"
	"reelid/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the identification HTTP API",
		Long: `Serve the identification pipeline over HTTP on the configured bind address.

Only one instance may run per data directory; a lock file prevents a second
serve from clobbering the history database.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}

			lockPath := filepath.Join(cfg.Paths.DataDir, "reelid.lock")
			lock := flock.New(lockPath)
			ok, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire lock: %w", err)
			}
			if !ok {
				return errors.New("another reelid serve instance is already running")
			}
			defer func() {
				_ = lock.Unlock()
			}()

			identifier, err := identification.NewFromConfig(cfg, logger)
			if err != nil {
				return fmt.Errorf("build pipeline: %w", err)
			}

			var store *history.Store
			if cfg.History.Enabled {
				store, err = history.Open(cfg.History.Path, cfg.History.MaxEntries)
				if err != nil {
					return fmt.Errorf("open history store: %w", err)
				}
				defer store.Close()
			}

			srv, err := server.New(cfg, version, identifier, store, logger)
			if err != nil {
				return fmt.Errorf("build api server: %w", err)
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := srv.Start(runCtx); err != nil {
				return err
			}
			logger.Info("serving", logging.String("address", srv.Addr()), logging.String("lock", lockPath))

			<-runCtx.Done()
			srv.Stop()
			logger.Info("shutdown complete")
			return nil
		},
	}
}
