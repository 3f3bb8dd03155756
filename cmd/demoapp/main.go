// Buggy Cars demo server
//
// Serves a small in-memory clone of the Buggy Cars Rating site so the
// acceptance suite can run without touching the public deployment.
//
//	go run ./cmd/demoapp --addr :8080
//	BASE_URL=http://localhost:8080 go run ./cmd/buggycars run
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Eruoni/buggy.justestit/cmd/demoapp/server"
	"github.com/Eruoni/buggy.justestit/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func newCmd() *cobra.Command {
	cfg := server.DefaultConfig()
	var logLevel string
	cmd := &cobra.Command{
		Use:          "demoapp",
		Short:        "Serve a local Buggy Cars Rating stand-in",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := logging.New(logLevel, logging.FormatConsole)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			cfg.Logger = logger
			return server.ListenAndServe(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&cfg.Addr, "addr", ":8080", "listen address")
	cmd.Flags().DurationVar(&cfg.ConfirmDelay, "confirm-delay", cfg.ConfirmDelay, "delay before the vote confirmation appears")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	return cmd
}
