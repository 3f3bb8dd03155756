package browser

import "strings"

// Engine names a browser engine a Session can run on.
type Engine string

const (
	// Chrome is a stock Chrome binary attached over CDP.
	Chrome   Engine = "chrome"
	Chromium Engine = "chromium"
	Firefox  Engine = "firefox"
	WebKit   Engine = "webkit"
)

// Engines lists the supported engines in display order.
func Engines() []Engine {
	return []Engine{Chrome, Chromium, Firefox, WebKit}
}

// ParseEngine maps a case-insensitive engine name to an Engine.
// "safari" is accepted as an alias for WebKit.
func ParseEngine(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "chrome":
		return Chrome, nil
	case "chromium":
		return Chromium, nil
	case "firefox":
		return Firefox, nil
	case "webkit", "safari":
		return WebKit, nil
	default:
		return "", &UnsupportedEngineError{Name: name}
	}
}

// PlaywrightBrowser is the browser name the playwright installer expects.
func (e Engine) PlaywrightBrowser() string {
	if e == Chrome {
		return string(Chromium)
	}
	return string(e)
}
