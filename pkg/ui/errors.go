package ui

import (
	"errors"
	"fmt"
	"time"
)

// ErrTimeout matches every timeout raised by the Facade:
// errors.Is(err, ui.ErrTimeout).
var ErrTimeout = errors.New("ui: timed out")

// TimeoutError reports a waiting operation that did not converge within its
// budget. Err carries the underlying playwright error, if any.
type TimeoutError struct {
	Op      string
	Target  string
	Timeout time.Duration
	Err     error
}

func (e *TimeoutError) Error() string {
	msg := fmt.Sprintf("ui: %s", e.Op)
	if e.Target != "" {
		msg += " " + e.Target
	}
	msg += fmt.Sprintf(": timed out after %s", e.Timeout)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TimeoutError) Unwrap() error { return e.Err }

func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }

// AssertionTimeoutError is returned by the Expect* family once polling gives
// up. Observed holds the last value read from the page.
type AssertionTimeoutError struct {
	Assertion string
	Target    string
	Expected  string
	Observed  string
	Timeout   time.Duration
}

func (e *AssertionTimeoutError) Error() string {
	return fmt.Sprintf("ui: expect %s of %s: want %q, last observed %q after %s",
		e.Assertion, e.Target, e.Expected, e.Observed, e.Timeout)
}

// Unwrap exposes the assertion as a plain timeout.
func (e *AssertionTimeoutError) Unwrap() error {
	return &TimeoutError{Op: "expect " + e.Assertion, Target: e.Target, Timeout: e.Timeout}
}

// FrameNotFoundError reports a frame lookup by name or index that matched
// nothing.
type FrameNotFoundError struct {
	Name  string
	Index int
}

func (e *FrameNotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("ui: frame %q not found", e.Name)
	}
	return fmt.Sprintf("ui: frame at index %d not found", e.Index)
}
