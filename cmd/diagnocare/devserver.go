package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"diagnocare/internal/devserver"
	"diagnocare/internal/platform/logging"
)

func newDevServerCmd() *cobra.Command {
	var addr, level string
	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Run an in-memory DiagnoCare API for local use",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logging.Console(level)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			srv := &http.Server{
				Addr:              addr,
				Handler:           devserver.New(devserver.WithLogger(log)),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info("devserver listening", zap.String("addr", addr))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("listen: %w", err)
			case <-ctx.Done():
			}

			log.Info("devserver shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8765", "listen address")
	cmd.Flags().StringVar(&level, "log-level", "info", "debug|info|warn|error")
	return cmd
}
