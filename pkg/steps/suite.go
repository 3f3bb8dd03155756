// Package steps binds the Gherkin steps of the suite to the screen models
// and drives the browser lifecycle from godog hooks.
package steps

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"time"

	"github.com/cucumber/godog"
	"go.uber.org/zap"

	"github.com/Eruoni/buggy.justestit/internal/logging"
	"github.com/Eruoni/buggy.justestit/pkg/browser"
	"github.com/Eruoni/buggy.justestit/pkg/screens"
	"github.com/Eruoni/buggy.justestit/pkg/ui"
)

// Suite is the step state of one worker. The Manager it owns lives for the
// whole run; each scenario gets its own Context and Page.
type Suite struct {
	cfg     browser.Config
	manager *browser.Manager
	logger  *zap.Logger
	now     func() time.Time

	startErr error
}

// Option configures a Suite.
type Option func(*Suite)

func WithLogger(l *zap.Logger) Option {
	return func(s *Suite) { s.logger = logging.OrNop(l) }
}

// WithManager replaces the browser Manager, e.g. with one using a fake
// launcher.
func WithManager(m *browser.Manager) Option {
	return func(s *Suite) { s.manager = m }
}

// NewSuite returns a Suite for cfg.
func NewSuite(cfg browser.Config, opts ...Option) *Suite {
	s := &Suite{cfg: cfg, logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.manager == nil {
		s.manager = browser.NewManager(browser.WithLogger(s.logger))
	}
	return s
}

// Manager exposes the worker's browser Manager.
func (s *Suite) Manager() *browser.Manager { return s.manager }

// InitializeTestSuite starts the session before the first scenario and
// tears everything down after the last one.
func (s *Suite) InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		s.logger.Info("launching browser")
		if err := s.manager.StartSession(s.cfg); err != nil {
			s.logger.Error("failed to start browser session", zap.Error(err))
			s.startErr = err
		}
	})
	ctx.AfterSuite(func() {
		s.logger.Info("closing browser")
		if err := s.manager.CloseAll(); err != nil {
			s.logger.Warn("browser teardown reported errors", zap.Error(err))
		}
	})
}

// InitializeScenario registers hooks and step definitions.
func (s *Suite) InitializeScenario(sc *godog.ScenarioContext) {
	sc.Before(s.beforeScenario)
	sc.After(s.afterScenario)

	sc.Given(`^User login as:$`, s.userLoginAs)
	sc.When(`^User comes to Popular Model from Home Page$`, s.userComesToPopularModel)
	sc.When(`^User leaves a comment: "([^"]*)"$`, s.userLeavesComment)
	sc.When(`^User vote for the car$`, s.userVotes)
	sc.Then(`^User should see comment added confirmation message$`, s.userSeesVoteConfirmation)
	sc.Then(`^User should see their comment displayed at the top of the Review table$`, s.userSeesCommentOnTop)
	sc.When(`^User log out$`, s.userLogsOut)
	sc.Then(`^User should see login form displayed$`, s.userSeesLoginForm)
}

// world is the per-scenario state shared between steps.
type world struct {
	scenario string
	comment  string
}

type worldKey struct{}

func worldFrom(ctx context.Context) *world {
	if w, ok := ctx.Value(worldKey{}).(*world); ok {
		return w
	}
	return &world{}
}

func (s *Suite) beforeScenario(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
	if s.startErr != nil {
		return ctx, fmt.Errorf("browser session unavailable: %w", s.startErr)
	}
	s.logger.Debug("creating new context and page", zap.String("scenario", sc.Name))
	if err := s.manager.OpenContext(); err != nil {
		return ctx, err
	}
	if err := s.manager.OpenPage(); err != nil {
		return ctx, err
	}
	f, err := s.manager.Facade()
	if err != nil {
		return ctx, err
	}
	s.logger.Debug("navigating", zap.String("url", s.manager.BaseURL()))
	if err := f.Goto(s.manager.BaseURL()); err != nil {
		return ctx, err
	}
	return context.WithValue(ctx, worldKey{}, &world{scenario: sc.Name}), nil
}

func (s *Suite) afterScenario(ctx context.Context, sc *godog.Scenario, scenarioErr error) (context.Context, error) {
	status := "passed"
	if scenarioErr != nil {
		status = "failed"
		ctx = s.captureFailure(ctx, sc.Name)
	}
	s.logger.Info("scenario finished", zap.String("scenario", sc.Name), zap.String("status", status))

	if err := s.manager.CloseScenario(); err != nil {
		s.logger.Warn("scenario teardown reported errors", zap.Error(err))
	}
	return ctx, nil
}

// captureFailure screenshots the page and attaches the PNG to the scenario.
// A missing page is not an error: the scenario may have failed before one
// was opened.
func (s *Suite) captureFailure(ctx context.Context, scenario string) context.Context {
	f, err := s.manager.Facade()
	if err != nil {
		return ctx
	}
	path := ScreenshotPath(s.cfg.ScreenshotDir(), scenario, s.now())
	png, err := f.TakeScreenshot(path)
	if err != nil {
		s.logger.Warn("failed to take screenshot", zap.String("scenario", scenario), zap.Error(err))
		return ctx
	}
	s.logger.Info("saved failure screenshot", zap.String("path", path))
	return godog.Attach(ctx, godog.Attachment{
		Body:      png,
		FileName:  filepath.Base(path),
		MediaType: "image/png",
	})
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ScreenshotPath returns <dir>/<scenario>-<unix-ms>.png with the scenario
// name made file-system safe.
func ScreenshotPath(dir, scenario string, at time.Time) string {
	name := unsafeFileChars.ReplaceAllString(scenario, "_")
	if name == "" {
		name = "scenario"
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%d.png", name, at.UnixMilli()))
}

func (s *Suite) facade() (*ui.Facade, error) {
	return s.manager.Facade()
}

func (s *Suite) home() (*screens.Home, error) {
	f, err := s.facade()
	if err != nil {
		return nil, err
	}
	return screens.NewHome(f, s.manager.BaseURL(), s.manager.ShortTimeout()), nil
}

func (s *Suite) register() (*screens.Register, error) {
	f, err := s.facade()
	if err != nil {
		return nil, err
	}
	return screens.NewRegister(f), nil
}

func (s *Suite) modelContent() (*screens.ModelContent, error) {
	f, err := s.facade()
	if err != nil {
		return nil, err
	}
	return screens.NewModelContent(f), nil
}
