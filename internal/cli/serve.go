package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"cpusim/api"
	"cpusim/internal/store"

	"github.com/spf13/cobra"
)

func newServeCmd(e *env) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scheduling API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				e.config.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var st store.Store
			if e.config.DBPath != "" {
				sqlite, err := openStore(ctx, e)
				if err != nil {
					return err
				}
				defer sqlite.Close()
				st = sqlite
			}

			app := api.NewApp(api.NewSchedulerHandlerImpl(e.config, st, e.logger), e.logger)
			go func() {
				<-ctx.Done()
				e.logger.Info("shutting down")
				if err := app.Shutdown(); err != nil {
					e.logger.Error("shutdown", "error", err)
				}
			}()

			addr := fmt.Sprintf(":%d", e.config.Port)
			e.logger.Info("listening", "addr", addr, "history", e.config.DBPath != "")
			if err := app.Listen(addr); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("listen %s: %w", addr, err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Listen port (default from config)")
	return cmd
}

// openStore opens and migrates the history database named in the config.
func openStore(ctx context.Context, e *env) (*store.SQLiteStore, error) {
	if e.config.DBPath == "" {
		return nil, errors.New("run history is disabled: set db_path in the config")
	}
	st, err := store.NewSQLiteStore(e.config.DBPath, e.logger)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}
