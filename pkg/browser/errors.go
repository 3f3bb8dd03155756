package browser

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoSession, ErrNoContext and ErrNoPage match the corresponding
	// *NotInitializedError with errors.Is.
	ErrNoSession = errors.New("browser session not started")
	ErrNoContext = errors.New("browser context not open")
	ErrNoPage    = errors.New("page not open")

	// ErrSessionActive is returned when StartSession is called twice.
	ErrSessionActive = errors.New("browser session already started")
)

// Resource names a level of the Session > Context > Page hierarchy.
type Resource string

const (
	ResourceSession Resource = "session"
	ResourceContext Resource = "context"
	ResourcePage    Resource = "page"
)

// NotInitializedError reports an accessor or open step used before the
// resource it depends on exists.
type NotInitializedError struct {
	Resource Resource
}

func (e *NotInitializedError) Error() string {
	return fmt.Sprintf("%s not initialized", e.Resource)
}

func (e *NotInitializedError) Is(target error) bool {
	switch target {
	case ErrNoSession:
		return e.Resource == ResourceSession
	case ErrNoContext:
		return e.Resource == ResourceContext
	case ErrNoPage:
		return e.Resource == ResourcePage
	}
	return false
}

// UnsupportedEngineError reports an engine name outside Engines().
type UnsupportedEngineError struct {
	Name string
}

func (e *UnsupportedEngineError) Error() string {
	names := make([]string, 0, 4)
	for _, eng := range Engines() {
		names = append(names, string(eng))
	}
	return fmt.Sprintf("unsupported browser %q (supported: %s, safari)", e.Name, strings.Join(names, ", "))
}
