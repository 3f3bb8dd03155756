package browser

import (
	"errors"
	"fmt"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/Eruoni/buggy.justestit/internal/logging"
)

// Launched is a running browser plus the teardown for everything started
// alongside it.
type Launched struct {
	Browser playwright.Browser

	// Release stops the engine process and the playwright driver. It runs
	// after Browser.Close and may be nil.
	Release func() error
}

// Launcher starts a browser for an engine. The Manager owns the result.
type Launcher interface {
	Launch(engine Engine, cfg Config) (*Launched, error)
}

// LauncherFunc adapts a function to Launcher.
type LauncherFunc func(engine Engine, cfg Config) (*Launched, error)

// Launch calls f.
func (f LauncherFunc) Launch(engine Engine, cfg Config) (*Launched, error) { return f(engine, cfg) }

// PlaywrightLauncher starts the playwright driver and launches the engine
// through it. Chrome is launched by rod's launcher and attached over CDP;
// the other engines use playwright's bundled builds.
type PlaywrightLauncher struct {
	Logger *zap.Logger
}

// Launch starts the playwright driver and the browser for engine.
func (l PlaywrightLauncher) Launch(engine Engine, cfg Config) (*Launched, error) {
	logger := logging.OrNop(l.Logger)

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(float64(cfg.SlowMoMS)),
		Timeout:  playwright.Float(float64(cfg.TimeoutMS)),
	}

	var (
		b          playwright.Browser
		killChrome func()
	)
	switch engine {
	case Chrome:
		b, killChrome, err = launchChrome(pw, cfg, logger)
	case Chromium:
		b, err = pw.Chromium.Launch(opts)
	case Firefox:
		b, err = pw.Firefox.Launch(opts)
	case WebKit:
		b, err = pw.WebKit.Launch(opts)
	default:
		err = &UnsupportedEngineError{Name: string(engine)}
	}
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", engine, err)
	}

	logger.Info("browser launched", zap.String("engine", string(engine)), zap.String("version", b.Version()))

	return &Launched{
		Browser: b,
		Release: func() error {
			if killChrome != nil {
				killChrome()
			}
			if err := pw.Stop(); err != nil {
				return fmt.Errorf("failed to stop playwright: %w", err)
			}
			return nil
		},
	}, nil
}

// launchChrome starts Chrome with rod's launcher (system binary if present,
// otherwise the one rod downloads) and connects playwright to it.
func launchChrome(pw *playwright.Playwright, cfg Config, logger *zap.Logger) (playwright.Browser, func(), error) {
	l := launcher.New().
		Headless(cfg.Headless).
		Set("no-sandbox").
		Set("disable-gpu").
		Set("window-size", "1280,720")

	if path, ok := launcher.LookPath(); ok {
		l = l.Bin(path)
	}

	wsURL, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to launch Chrome: %w", err)
	}
	logger.Debug("chrome started", zap.Int("pid", l.PID()), zap.String("cdp", wsURL))

	kill := func() {
		l.Kill()
		l.Cleanup()
	}

	b, err := pw.Chromium.ConnectOverCDP(wsURL, playwright.BrowserTypeConnectOverCDPOptions{
		SlowMo:  playwright.Float(float64(cfg.SlowMoMS)),
		Timeout: playwright.Float(float64(cfg.TimeoutMS)),
	})
	if err != nil {
		kill()
		return nil, nil, fmt.Errorf("failed to connect to Chrome: %w", err)
	}
	return b, kill, nil
}

// Install downloads the playwright driver and the browsers the given
// engines need. Chrome is resolved by rod at launch and needs nothing here.
func Install(engines ...Engine) error {
	var browsers []string
	for _, e := range engines {
		if e == Chrome {
			continue
		}
		browsers = append(browsers, e.PlaywrightBrowser())
	}
	opts := &playwright.RunOptions{Browsers: browsers}
	if len(browsers) == 0 {
		opts.SkipInstallBrowsers = true
	}
	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}
	return nil
}

// InstallChrome makes sure rod can find or download a Chrome binary.
func InstallChrome() (string, error) {
	if path, ok := launcher.LookPath(); ok {
		return path, nil
	}
	path, err := launcher.NewBrowser().Get()
	if err != nil {
		return "", fmt.Errorf("failed to download Chrome: %w", err)
	}
	if path == "" {
		return "", errors.New("failed to download Chrome: empty path")
	}
	return path, nil
}
