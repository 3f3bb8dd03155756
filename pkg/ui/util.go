package ui

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// TakeScreenshot captures the full page to path, creating parent
// directories, and returns the PNG bytes.
func (f *Facade) TakeScreenshot(path string) ([]byte, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create screenshot dir: %w", err)
	}
	png, err := f.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
		Timeout:  ms(f.timeout),
	})
	if err != nil {
		return nil, wrap("take screenshot", path, f.timeout, err)
	}
	f.logger.Debug("screenshot", zap.String("path", path))
	return png, nil
}

// Evaluate runs a JavaScript expression or function in the page. arg is
// passed to the function form when non-nil.
func (f *Facade) Evaluate(expr string, arg any) (any, error) {
	var (
		v   any
		err error
	)
	if arg == nil {
		v, err = f.page.Evaluate(expr)
	} else {
		v, err = f.page.Evaluate(expr, arg)
	}
	if err != nil {
		return nil, wrap("evaluate", "", f.timeout, err)
	}
	return v, nil
}

// Frame returns the frame with the given name attribute.
func (f *Facade) Frame(name string) (playwright.Frame, error) {
	fr := f.page.Frame(playwright.PageFrameOptions{Name: playwright.String(name)})
	if fr == nil {
		return nil, &FrameNotFoundError{Name: name}
	}
	return fr, nil
}

// FrameAt returns the index-th frame, the main frame being 0.
func (f *Facade) FrameAt(index int) (playwright.Frame, error) {
	frames := f.page.Frames()
	if index < 0 || index >= len(frames) {
		return nil, &FrameNotFoundError{Index: index}
	}
	return frames[index], nil
}

const randomAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandomString returns prefix followed by length random lowercase
// alphanumerics. It is meant for unique usernames, not secrets.
func RandomString(length int, prefix string) string {
	if length <= 0 {
		return prefix
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = randomAlphabet[rand.IntN(len(randomAlphabet))]
	}
	return prefix + string(b)
}
