package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Eruoni/buggy.justestit/cmd/demoapp/server"
	"github.com/Eruoni/buggy.justestit/internal/logging"
	"github.com/Eruoni/buggy.justestit/pkg/browser"
	"github.com/Eruoni/buggy.justestit/pkg/runner"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "buggycars",
		Short:         "Browser acceptance suite for the Buggy Cars Rating site",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newInstallCmd(), newServeDemoCmd())
	return root
}

type runFlags struct {
	engine     string
	headless   bool
	baseURL    string
	slowMo     time.Duration
	video      bool
	resultsDir string
	logLevel   string
	logFormat  string

	tags          string
	format        string
	workers       int
	stopOnFailure bool
	strict        bool
	noColors      bool
}

func (f *runFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.engine, "engine", "", "browser engine: chrome, chromium, firefox or webkit")
	fs.BoolVar(&f.headless, "headless", true, "run the browser without a window")
	fs.StringVar(&f.baseURL, "base-url", "", "site under test")
	fs.DurationVar(&f.slowMo, "slow-mo", 0, "delay inserted before every browser operation")
	fs.BoolVar(&f.video, "video", false, "record a video of every scenario")
	fs.StringVar(&f.resultsDir, "results-dir", "", "directory for screenshots and videos")
	fs.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	fs.StringVar(&f.logFormat, "log-format", string(logging.FormatConsole), "console or json")

	fs.StringVar(&f.tags, "tags", "", "godog tag expression, e.g. \"@vote && ~@wip\"")
	fs.StringVar(&f.format, "format", "pretty", "godog formatter: pretty, progress, cucumber, junit")
	fs.IntVar(&f.workers, "workers", 1, "number of parallel browser sessions")
	fs.BoolVar(&f.stopOnFailure, "stop-on-failure", false, "stop a worker after its first failing scenario")
	fs.BoolVar(&f.strict, "strict", false, "fail on pending or undefined steps")
	fs.BoolVar(&f.noColors, "no-colors", false, "disable colored formatter output")
}

// apply overlays the flags the user set explicitly onto cfg.
func (f *runFlags) apply(fs *pflag.FlagSet, cfg browser.Config) browser.Config {
	if fs.Changed("engine") {
		cfg.Engine = f.engine
	}
	if fs.Changed("headless") {
		cfg.Headless = f.headless
	}
	if fs.Changed("base-url") {
		cfg.BaseURL = f.baseURL
	}
	if fs.Changed("slow-mo") {
		cfg.SlowMoMS = int(f.slowMo.Milliseconds())
	}
	if fs.Changed("video") {
		cfg.RecordVideo = f.video
	}
	if fs.Changed("results-dir") {
		cfg.ResultsDir = f.resultsDir
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	return cfg
}

func newRunCmd() *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "run [feature...]",
		Short: "Run the acceptance suite",
		Long: `Run the embedded feature files, or only the named ones.

Examples:
  buggycars run
  buggycars run --tags @logout --engine firefox
  buggycars run demo.feature --headless=false --slow-mo 250ms`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := browser.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg = flags.apply(cmd.Flags(), cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := logging.New(cfg.LogLevel, logging.Format(flags.logFormat))
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			res, err := runner.Run(cmd.Context(), runner.Options{
				Config:        cfg,
				Tags:          flags.tags,
				Format:        flags.format,
				Paths:         args,
				Workers:       flags.workers,
				Output:        cmd.OutOrStdout(),
				Logger:        logger,
				StopOnFailure: flags.stopOnFailure,
				Strict:        flags.strict,
				NoColors:      flags.noColors,
			})
			if err != nil {
				return err
			}
			if !res.Passed() {
				return &exitError{code: res.Status}
			}
			return nil
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func newInstallCmd() *cobra.Command {
	var engines []string
	var chrome bool
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Download the Playwright driver and browsers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var parsed []browser.Engine
			for _, name := range engines {
				e, err := browser.ParseEngine(name)
				if err != nil {
					return err
				}
				parsed = append(parsed, e)
			}
			if err := browser.Install(parsed...); err != nil {
				return err
			}
			if chrome {
				bin, err := browser.InstallChrome()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "chrome:", bin)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&engines, "engine", nil, "engines to install; none installs only the driver")
	cmd.Flags().BoolVar(&chrome, "chrome", false, "also make sure a Chrome binary is available for the chrome engine")
	return cmd
}

func newServeDemoCmd() *cobra.Command {
	var addr string
	var delay time.Duration
	cmd := &cobra.Command{
		Use:   "serve-demo",
		Short: "Serve a local stand-in for the Buggy Cars site",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := logging.New("info", logging.FormatConsole)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			cfg := server.DefaultConfig()
			cfg.Addr = addr
			cfg.ConfirmDelay = delay
			cfg.Logger = logger
			return server.ListenAndServe(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().DurationVar(&delay, "confirm-delay", server.DefaultConfig().ConfirmDelay, "delay before the vote confirmation appears")
	return cmd
}
