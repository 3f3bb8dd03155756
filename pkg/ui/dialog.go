package ui

import (
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// DialogInfo describes a JavaScript dialog the page opened.
type DialogInfo struct {
	Kind    string // alert, confirm, prompt or beforeunload
	Message string
}

type dialogExpectation struct {
	accept bool
	done   chan DialogInfo
}

// dialogRouter is the page's only dialog listener. Each dialog consumes the
// oldest armed expectation; dialogs nobody armed for are dismissed so the
// page never blocks.
type dialogRouter struct {
	mu      sync.Mutex
	pending []*dialogExpectation
	logger  *zap.Logger
}

func newDialogRouter(logger *zap.Logger) *dialogRouter {
	return &dialogRouter{logger: logger}
}

func (r *dialogRouter) arm(accept bool) *dialogExpectation {
	e := &dialogExpectation{accept: accept, done: make(chan DialogInfo, 1)}
	r.mu.Lock()
	r.pending = append(r.pending, e)
	r.mu.Unlock()
	return e
}

// cancel removes e if it has not been consumed yet.
func (r *dialogRouter) cancel(e *dialogExpectation) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.pending {
		if p == e {
			r.pending = append(r.pending[:i], r.pending[i+1:]...)
			return true
		}
	}
	return false
}

func (r *dialogRouter) next() *dialogExpectation {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.pending) == 0 {
		return nil
	}
	e := r.pending[0]
	r.pending = r.pending[1:]
	return e
}

func (r *dialogRouter) handle(d playwright.Dialog) {
	info := DialogInfo{Kind: d.Type(), Message: d.Message()}
	e := r.next()

	var err error
	if e != nil && e.accept {
		err = d.Accept()
	} else {
		err = d.Dismiss()
	}
	if err != nil {
		r.logger.Warn("dialog response failed", zap.String("kind", info.Kind), zap.Error(err))
	}
	r.logger.Debug("dialog", zap.String("kind", info.Kind), zap.String("message", info.Message),
		zap.Bool("armed", e != nil))

	if e != nil {
		e.done <- info
	}
}

// AcceptNextDialog accepts the next dialog the page opens.
func (f *Facade) AcceptNextDialog() {
	f.dialogs.arm(true)
}

// DismissNextDialog dismisses the next dialog the page opens.
func (f *Facade) DismissNextDialog() {
	f.dialogs.arm(false)
}

// NextDialog arms acceptance of the next dialog and returns a waiter for it.
// Arm before triggering the action that opens the dialog.
func (f *Facade) NextDialog(opts ...CallOption) *DialogWaiter {
	o := f.options(opts)
	return &DialogWaiter{
		router:  f.dialogs,
		exp:     f.dialogs.arm(true),
		timeout: o.timeout,
	}
}

// DialogWaiter resolves once the dialog it was armed for has been handled.
type DialogWaiter struct {
	router  *dialogRouter
	exp     *dialogExpectation
	timeout time.Duration
}

// Wait blocks until the dialog was accepted or the timeout elapsed.
func (w *DialogWaiter) Wait() (DialogInfo, error) {
	timer := time.NewTimer(w.timeout)
	defer timer.Stop()

	select {
	case info := <-w.exp.done:
		return info, nil
	case <-timer.C:
		if !w.router.cancel(w.exp) {
			// Consumed while the timer fired; the result is on its way.
			return <-w.exp.done, nil
		}
		return DialogInfo{}, &TimeoutError{Op: "wait for dialog", Timeout: w.timeout}
	}
}
