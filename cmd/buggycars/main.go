// Buggy Cars acceptance suite runner.
//
// Runs the embedded feature files against https://buggy.justtestit.org (or
// any BASE_URL) with one browser session per worker.
//
// Usage:
//
//	go run ./cmd/buggycars install
//	go run ./cmd/buggycars run --engine chrome --tags @vote
//	go run ./cmd/buggycars run --base-url http://localhost:8080 --workers 2
//	go run ./cmd/buggycars serve-demo --addr :8080
//
// Every run flag overrides the matching environment variable (BROWSER,
// HEADLESS, BASE_URL, SLOW_MO, RECORD_VIDEO, RESULTS_DIR, LOG_LEVEL).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	stop()

	var exit *exitError
	switch {
	case errors.As(err, &exit):
		os.Exit(exit.code)
	case err != nil:
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}
}

// exitError carries a non-zero suite status out of cobra without printing
// anything; the formatter has already reported the failures.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("suite exited with status %d", e.code) }
