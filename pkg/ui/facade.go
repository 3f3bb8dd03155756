// Package ui is the timeout-aware interaction vocabulary that screen models
// use to drive a playwright page.
//
// Every element operation takes a Ref and a trailing list of CallOption.
// Waiting operations are bounded by the Facade's default timeout unless a
// call overrides it with Timeout. Failures to converge surface as
// *TimeoutError, which satisfies errors.Is(err, ErrTimeout).
package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/Eruoni/buggy.justestit/pkg/ui/internal"
)

const (
	// DefaultTimeout bounds every waiting call without an explicit Timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultTypeDelay is the pause between keystrokes in TypeWithDelay.
	DefaultTypeDelay = 100 * time.Millisecond

	// DefaultPollInterval is how often Expect* re-reads the page.
	DefaultPollInterval = 100 * time.Millisecond
)

// Facade wraps a single page. It is not safe for concurrent use, apart from
// the dialog router which receives events on playwright's goroutine.
type Facade struct {
	page    playwright.Page
	timeout time.Duration
	poll    time.Duration
	clock   Clock
	logger  *zap.Logger
	dialogs *dialogRouter
}

// Clock supplies the time and sleeping used by assertion polling.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// Option configures a Facade.
type Option func(*Facade)

// WithTimeout sets the default timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(f *Facade) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithLogger sets the logger used for action tracing.
func WithLogger(l *zap.Logger) Option {
	return func(f *Facade) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithClock replaces the clock used by assertion polling and Pause.
func WithClock(c Clock) Option {
	return func(f *Facade) {
		if c != nil {
			f.clock = c
		}
	}
}

// WithPollInterval sets how often assertions re-read the page.
func WithPollInterval(d time.Duration) Option {
	return func(f *Facade) {
		if d > 0 {
			f.poll = d
		}
	}
}

// New builds a Facade over page and installs its dialog router.
func New(page playwright.Page, opts ...Option) *Facade {
	f := &Facade{
		page:    page,
		timeout: DefaultTimeout,
		poll:    DefaultPollInterval,
		clock:   internal.MonotonicClock{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.dialogs = newDialogRouter(f.logger)
	page.OnDialog(f.dialogs.handle)
	return f
}

// Page returns the wrapped page.
func (f *Facade) Page() playwright.Page { return f.page }

// DefaultTimeout returns the timeout applied when a call sets none.
func (f *Facade) DefaultTimeout() time.Duration { return f.timeout }

// CallOption overrides a Facade default for one call.
type CallOption func(*callOptions)

type callOptions struct {
	timeout time.Duration
	delay   time.Duration
}

// Timeout bounds one call. Non-positive values fall back to the default.
func Timeout(d time.Duration) CallOption {
	return func(o *callOptions) { o.timeout = d }
}

// Delay sets the per-keystroke delay of TypeWithDelay.
func Delay(d time.Duration) CallOption {
	return func(o *callOptions) { o.delay = d }
}

func (f *Facade) options(opts []CallOption) callOptions {
	o := callOptions{timeout: f.timeout, delay: DefaultTypeDelay}
	for _, opt := range opts {
		opt(&o)
	}
	if o.timeout <= 0 {
		o.timeout = f.timeout
	}
	if o.delay < 0 {
		o.delay = 0
	}
	return o
}

func (f *Facade) locate(ref Ref) playwright.Locator {
	return ref.Resolve(f.page)
}

// ms converts d to the float milliseconds playwright expects. Zero means
// "no timeout" to playwright, so callers never pass it through.
func ms(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}

// wrap turns a playwright failure into the Facade's error vocabulary.
func wrap(op, target string, timeout time.Duration, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return &TimeoutError{Op: op, Target: target, Timeout: timeout, Err: err}
	}
	if target == "" {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	return fmt.Errorf("failed to %s %s: %w", op, target, err)
}

func (f *Facade) trace(op string, ref Ref) {
	f.logger.Debug(op, zap.Stringer("selector", ref))
}
