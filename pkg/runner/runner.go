// Package runner executes the feature files of the suite across a pool of
// workers, each with its own browser session.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Eruoni/buggy.justestit/features"
	"github.com/Eruoni/buggy.justestit/internal/logging"
	"github.com/Eruoni/buggy.justestit/pkg/browser"
	"github.com/Eruoni/buggy.justestit/pkg/steps"
)

// Exit statuses, as returned by godog.
const (
	StatusPassed = 0
	StatusFailed = 1
	StatusUsage  = 2
)

// Options configures a run.
type Options struct {
	Config browser.Config

	// Tags is a godog tag expression such as "@vote && ~@wip".
	Tags string

	// Format is a godog formatter name. Defaults to "pretty".
	Format string

	// Paths lists feature files inside FS. Empty means every *.feature at
	// the root of FS.
	Paths []string

	// FS holds the feature files. Defaults to the embedded features.
	FS fs.FS

	// Workers is the number of parallel sessions. Values below 1 mean 1;
	// it is capped at the number of feature files.
	Workers int

	// Output receives the formatter output of every worker, in worker
	// order. Defaults to os.Stdout.
	Output io.Writer

	Logger        *zap.Logger
	StopOnFailure bool
	Strict        bool
	NoColors      bool

	// NewSuite builds the step suite of a worker. Defaults to steps.NewSuite.
	NewSuite func(worker int, cfg browser.Config, logger *zap.Logger) *steps.Suite
}

// Result summarizes a run.
type Result struct {
	RunID    string
	Status   int
	Workers  int
	Duration time.Duration

	// WorkerStatus holds the godog exit status of each worker.
	WorkerStatus []int
}

// Passed reports whether every worker passed.
func (r Result) Passed() bool { return r.Status == StatusPassed }

func (o Options) withDefaults() Options {
	if o.FS == nil {
		o.FS = features.FS
	}
	if o.Format == "" {
		o.Format = "pretty"
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.Output == nil {
		o.Output = os.Stdout
	}
	o.Logger = logging.OrNop(o.Logger)
	if o.NewSuite == nil {
		o.NewSuite = func(_ int, cfg browser.Config, logger *zap.Logger) *steps.Suite {
			return steps.NewSuite(cfg, steps.WithLogger(logger))
		}
	}
	return o
}

// Run executes the selected features. The returned error covers setup
// problems only; failing scenarios are reported through Result.Status.
func Run(ctx context.Context, opts Options) (Result, error) {
	start := time.Now()
	opts = opts.withDefaults()

	res := Result{RunID: uuid.NewString()}
	logger := opts.Logger.With(zap.String("run_id", res.RunID))

	paths, err := ResolvePaths(opts.FS, opts.Paths)
	if err != nil {
		return res, err
	}
	shards := Partition(paths, opts.Workers)
	res.Workers = len(shards)
	res.WorkerStatus = make([]int, len(shards))
	outputs := make([]bytes.Buffer, len(shards))

	logger.Info("starting run",
		zap.String("engine", opts.Config.Engine),
		zap.String("url", opts.Config.BaseURL),
		zap.Int("workers", len(shards)),
		zap.Int("features", len(paths)))

	g, gctx := errgroup.WithContext(ctx)
	for i, shard := range shards {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			wlog := logger.With(zap.Int("worker", i))
			suite := opts.NewSuite(i, opts.Config, wlog)
			ts := godog.TestSuite{
				Name:                 fmt.Sprintf("buggycars-%d", i),
				TestSuiteInitializer: suite.InitializeTestSuite,
				ScenarioInitializer:  suite.InitializeScenario,
				Options: &godog.Options{
					Format:         opts.Format,
					Paths:          shard,
					Tags:           opts.Tags,
					FS:             opts.FS,
					Output:         &outputs[i],
					Concurrency:    1,
					StopOnFailure:  opts.StopOnFailure,
					Strict:         opts.Strict,
					NoColors:       opts.NoColors,
					DefaultContext: gctx,
				},
			}
			res.WorkerStatus[i] = ts.Run()
			wlog.Info("worker finished", zap.Int("status", res.WorkerStatus[i]), zap.Strings("features", shard))
			return nil
		})
	}
	waitErr := g.Wait()

	var writeErrs []error
	for i := range outputs {
		if _, err := outputs[i].WriteTo(opts.Output); err != nil {
			writeErrs = append(writeErrs, fmt.Errorf("failed to write output of worker %d: %w", i, err))
		}
	}

	res.Status = slices.Max(res.WorkerStatus)
	res.Duration = time.Since(start)
	logger.Info("run finished", zap.Int("status", res.Status), zap.Duration("duration", res.Duration))

	if waitErr != nil {
		return res, fmt.Errorf("run interrupted: %w", waitErr)
	}
	return res, errors.Join(writeErrs...)
}

// ResolvePaths returns paths unchanged after checking they exist in fsys,
// or every root-level *.feature file when paths is empty.
func ResolvePaths(fsys fs.FS, paths []string) ([]string, error) {
	if len(paths) == 0 {
		matches, err := fs.Glob(fsys, "*.feature")
		if err != nil {
			return nil, fmt.Errorf("failed to list feature files: %w", err)
		}
		if len(matches) == 0 {
			return nil, errors.New("no feature files found")
		}
		return matches, nil
	}
	for _, p := range paths {
		if _, err := fs.Stat(fsys, p); err != nil {
			return nil, fmt.Errorf("feature path %q: %w", p, err)
		}
	}
	return paths, nil
}

// Partition deals paths round-robin into at most workers non-empty shards.
func Partition(paths []string, workers int) [][]string {
	if len(paths) == 0 {
		return nil
	}
	workers = max(1, min(workers, len(paths)))
	shards := make([][]string, workers)
	for i, p := range paths {
		shards[i%workers] = append(shards[i%workers], p)
	}
	return shards
}
