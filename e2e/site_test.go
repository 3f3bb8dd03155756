//go:build e2e

package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Eruoni/buggy.justestit/cmd/demoapp/server"
	"github.com/Eruoni/buggy.justestit/pkg/browser"
	"github.com/Eruoni/buggy.justestit/pkg/ui"
)

const testPassword = "Buggy-Pass-42"

// startSite starts the demo site on a random port for the duration of t.
func startSite(t *testing.T) *server.Server {
	t.Helper()
	cfg := server.DefaultConfig()
	cfg.Logger = zaptest.NewLogger(t)
	srv, err := server.NewServer(cfg)
	require.NoError(t, err, "failed to create server")

	addr, err := srv.Start()
	require.NoError(t, err, "failed to start server")
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			t.Errorf("server shutdown error: %v", err)
		}
	})

	t.Logf("Server started on %s", addr)
	return srv
}

// siteConfig reads the environment and points it at baseURL. Results go to
// a per-test directory.
func siteConfig(t *testing.T, baseURL string) browser.Config {
	t.Helper()
	cfg, err := browser.LoadConfig()
	require.NoError(t, err)
	cfg.BaseURL = baseURL
	cfg.ResultsDir = t.TempDir()
	cfg.ShortTimeoutMS = 2000
	return cfg
}

// openPage starts a session with its own context and page.
func openPage(t *testing.T, cfg browser.Config) (*browser.Manager, *ui.Facade) {
	t.Helper()
	m := browser.NewManager(browser.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, m.StartSession(cfg), "failed to start browser session")
	t.Cleanup(func() {
		if err := m.CloseAll(); err != nil {
			t.Errorf("browser close error: %v", err)
		}
	})
	require.NoError(t, m.OpenContext())
	require.NoError(t, m.OpenPage())

	f, err := m.Facade()
	require.NoError(t, err)
	return m, f
}
