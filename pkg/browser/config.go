package browser

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the run configuration read from the environment. Durations
// are kept in milliseconds to match the variables users set.
type Config struct {
	Engine         string `env:"BROWSER" envDefault:"chrome"`
	Headless       bool   `env:"HEADLESS" envDefault:"true"`
	SlowMoMS       int    `env:"SLOW_MO" envDefault:"0"`
	TimeoutMS      int    `env:"TIMEOUT" envDefault:"30000"`
	ShortTimeoutMS int    `env:"SHORT_TIMEOUT" envDefault:"5000"`
	BaseURL        string `env:"BASE_URL" envDefault:"https://buggy.justtestit.org"`
	RecordVideo    bool   `env:"RECORD_VIDEO" envDefault:"false"`
	ResultsDir     string `env:"RESULTS_DIR" envDefault:"test-results"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
}

// DefaultConfig returns the configuration used when no variable is set.
func DefaultConfig() Config {
	return Config{
		Engine:         string(Chrome),
		Headless:       true,
		TimeoutMS:      30000,
		ShortTimeoutMS: 5000,
		BaseURL:        "https://buggy.justtestit.org",
		ResultsDir:     "test-results",
		LogLevel:       "info",
	}
}

// LoadConfig reads Config from the process environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// LoadConfigFrom reads Config from environ instead of the process
// environment. Missing keys take their defaults.
func LoadConfigFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// WithDefaults returns c with unset (zero) timeouts, base URL, results
// directory and log level taken from DefaultConfig. Negative values are left
// for Validate to reject.
func (c Config) WithDefaults() Config {
	def := DefaultConfig()
	if c.Engine == "" {
		c.Engine = def.Engine
	}
	if c.TimeoutMS == 0 {
		c.TimeoutMS = def.TimeoutMS
	}
	if c.ShortTimeoutMS == 0 {
		c.ShortTimeoutMS = def.ShortTimeoutMS
	}
	if c.BaseURL == "" {
		c.BaseURL = def.BaseURL
	}
	if c.ResultsDir == "" {
		c.ResultsDir = def.ResultsDir
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	return c
}

// Validate checks the engine name and that timeouts are usable.
func (c Config) Validate() error {
	var errs []error
	if _, err := ParseEngine(c.Engine); err != nil {
		errs = append(errs, err)
	}
	if c.TimeoutMS <= 0 {
		errs = append(errs, fmt.Errorf("TIMEOUT must be positive, got %d", c.TimeoutMS))
	}
	if c.ShortTimeoutMS <= 0 {
		errs = append(errs, fmt.Errorf("SHORT_TIMEOUT must be positive, got %d", c.ShortTimeoutMS))
	}
	if c.SlowMoMS < 0 {
		errs = append(errs, fmt.Errorf("SLOW_MO must not be negative, got %d", c.SlowMoMS))
	}
	if c.BaseURL == "" {
		errs = append(errs, errors.New("BASE_URL must not be empty"))
	}
	return errors.Join(errs...)
}

// Timeout is the default bound of actions, navigations and assertions.
func (c Config) Timeout() time.Duration { return time.Duration(c.TimeoutMS) * time.Millisecond }

// ShortTimeout bounds quick checks such as the logged-in test on the home page.
func (c Config) ShortTimeout() time.Duration { return time.Duration(c.ShortTimeoutMS) * time.Millisecond }

// SlowMo is the delay playwright inserts before every operation.
func (c Config) SlowMo() time.Duration { return time.Duration(c.SlowMoMS) * time.Millisecond }

// VideoDir is where context recordings land.
func (c Config) VideoDir() string { return filepath.Join(c.ResultsDir, "videos") }

// ScreenshotDir is where failure screenshots land.
func (c Config) ScreenshotDir() string { return filepath.Join(c.ResultsDir, "screenshots") }
