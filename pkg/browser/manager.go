// Package browser owns the browser session lifecycle of a suite worker:
// one Session per run, one Context and Page per scenario.
package browser

import (
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/Eruoni/buggy.justestit/internal/logging"
	"github.com/Eruoni/buggy.justestit/pkg/ui"
)

// Viewport is the fixed size of every Context.
var Viewport = playwright.Size{Width: 1280, Height: 720}

// State is the lifecycle position of a Manager.
type State int

const (
	Uninitialized State = iota
	SessionStarted
	ContextOpen
	PageOpen
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case SessionStarted:
		return "session-started"
	case ContextOpen:
		return "context-open"
	case PageOpen:
		return "page-open"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Manager holds the Session, Context and Page of one worker. It is not safe
// for concurrent use; run one Manager per worker.
type Manager struct {
	launcher Launcher
	logger   *zap.Logger

	cfg     Config
	started bool

	launched *Launched
	context  playwright.BrowserContext
	page     playwright.Page
	facade   *ui.Facade
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) { m.logger = logging.OrNop(l) }
}

// WithLauncher replaces the engine launcher.
func WithLauncher(l Launcher) Option {
	return func(m *Manager) {
		if l != nil {
			m.launcher = l
		}
	}
}

// NewManager returns an Uninitialized Manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		cfg:    DefaultConfig(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.launcher == nil {
		m.launcher = PlaywrightLauncher{Logger: m.logger}
	}
	return m
}

// StartSession launches the configured engine. The engine name is checked
// before anything is started; unset timeouts and base URL take their
// defaults.
func (m *Manager) StartSession(cfg Config) error {
	if m.started {
		return ErrSessionActive
	}
	cfg = cfg.WithDefaults()
	engine, err := ParseEngine(cfg.Engine)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	m.logger.Info("starting browser session",
		zap.String("engine", string(engine)),
		zap.Bool("headless", cfg.Headless),
		zap.String("url", cfg.BaseURL))

	launched, err := m.launcher.Launch(engine, cfg)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	m.cfg = cfg
	m.launched = launched
	m.started = true
	return nil
}

// OpenContext opens a fresh isolated Context, closing the previous one.
func (m *Manager) OpenContext() error {
	if !m.started {
		return &NotInitializedError{Resource: ResourceSession}
	}
	if m.context != nil {
		if err := m.CloseScenario(); err != nil {
			m.logger.Warn("failed to close previous context", zap.Error(err))
		}
	}

	opts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: Viewport.Width, Height: Viewport.Height},
	}
	if m.cfg.RecordVideo {
		opts.RecordVideo = &playwright.RecordVideo{
			Dir:  m.cfg.VideoDir(),
			Size: &playwright.Size{Width: Viewport.Width, Height: Viewport.Height},
		}
	}

	ctx, err := m.launched.Browser.NewContext(opts)
	if err != nil {
		return fmt.Errorf("failed to open context: %w", err)
	}
	m.context = ctx
	return nil
}

// OpenPage opens a Page in the current Context and builds its Facade.
func (m *Manager) OpenPage() error {
	if m.context == nil {
		return &NotInitializedError{Resource: ResourceContext}
	}
	page, err := m.context.NewPage()
	if err != nil {
		return fmt.Errorf("failed to open page: %w", err)
	}
	timeout := float64(m.cfg.TimeoutMS)
	page.SetDefaultTimeout(timeout)
	page.SetDefaultNavigationTimeout(timeout)

	m.page = page
	m.facade = ui.New(page, ui.WithTimeout(m.cfg.Timeout()), ui.WithLogger(m.logger))
	return nil
}

// Browser returns the Session's browser.
func (m *Manager) Browser() (playwright.Browser, error) {
	if !m.started {
		return nil, &NotInitializedError{Resource: ResourceSession}
	}
	return m.launched.Browser, nil
}

// Context returns the current Context.
func (m *Manager) Context() (playwright.BrowserContext, error) {
	if m.context == nil {
		return nil, &NotInitializedError{Resource: ResourceContext}
	}
	return m.context, nil
}

// Page returns the current Page.
func (m *Manager) Page() (playwright.Page, error) {
	if m.page == nil {
		return nil, &NotInitializedError{Resource: ResourcePage}
	}
	return m.page, nil
}

// Facade returns the interaction Facade bound to the current Page.
func (m *Manager) Facade() (*ui.Facade, error) {
	if m.facade == nil {
		return nil, &NotInitializedError{Resource: ResourcePage}
	}
	return m.facade, nil
}

// CloseScenario closes the Page and then the Context. Missing resources are
// skipped.
func (m *Manager) CloseScenario() error {
	var errs []error
	if m.page != nil {
		if err := m.page.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close page: %w", err))
		}
		m.page = nil
		m.facade = nil
	}
	if m.context != nil {
		// Closing the context flushes any video recording to disk.
		if err := m.context.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close context: %w", err))
		}
		m.context = nil
	}
	return errors.Join(errs...)
}

// CloseAll tears everything down in Page, Context, Browser, engine order.
// It always leaves the Manager Uninitialized and may be called repeatedly.
func (m *Manager) CloseAll() error {
	errs := []error{m.CloseScenario()}
	if m.launched != nil {
		if m.launched.Browser != nil {
			if err := m.launched.Browser.Close(); err != nil {
				errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
			}
		}
		if m.launched.Release != nil {
			if err := m.launched.Release(); err != nil {
				errs = append(errs, err)
			}
		}
		m.logger.Info("browser session closed")
	}
	m.launched = nil
	m.started = false
	return errors.Join(errs...)
}

// State reports the deepest open resource.
func (m *Manager) State() State {
	switch {
	case m.page != nil:
		return PageOpen
	case m.context != nil:
		return ContextOpen
	case m.started:
		return SessionStarted
	default:
		return Uninitialized
	}
}

// Config returns the active configuration, or DefaultConfig before a
// Session was started.
func (m *Manager) Config() Config { return m.cfg }

// BaseURL is the site under test.
func (m *Manager) BaseURL() string { return m.cfg.BaseURL }

// DefaultTimeout bounds actions, navigations and assertions.
func (m *Manager) DefaultTimeout() time.Duration { return m.cfg.Timeout() }

// ShortTimeout bounds quick checks such as the logged-in test on the home page.
func (m *Manager) ShortTimeout() time.Duration { return m.cfg.ShortTimeout() }
