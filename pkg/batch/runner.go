/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: runner.go
Description: Parallel batch analysis for the Akaylee Regex Analyzer. Fans a
list of patterns out to a pool of worker goroutines, each producing a full
per-pattern report (feature profile, engine variant, portability verdicts,
optional backtracking probe). Analysis is pure per pattern, so workers share
nothing but the job channel.
*/

package batch

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kleascm/akaylee-regex/pkg/backtrack"
	"github.com/kleascm/akaylee-regex/pkg/engine"
	"github.com/kleascm/akaylee-regex/pkg/interfaces"
	"github.com/kleascm/akaylee-regex/pkg/portability"
	"github.com/kleascm/akaylee-regex/pkg/syntax"
)

// Report is the combined analysis result for one pattern
type Report struct {
	Pattern     string                       `json:"pattern"`
	Valid       bool                         `json:"valid"`
	Error       string                       `json:"error,omitempty"`
	Profile     interfaces.FeatureProfile    `json:"profile,omitempty"`
	Variant     interfaces.EngineVariant     `json:"variant,omitempty"`
	Reason      string                       `json:"reason,omitempty"`
	Portability interfaces.PortabilityReport `json:"portability,omitempty"`
	Backtrack   *interfaces.BacktrackVerdict `json:"backtrack,omitempty"`
}

// Options configures a batch run
type Options struct {
	Workers     int                    // worker goroutines, defaults to GOMAXPROCS
	Dialects    []interfaces.DialectID // portability targets, empty = all registered
	Probe       bool                   // run the backtracking probe per pattern
	ProbeBudget time.Duration          // per-pattern probe budget when Probe is set
	Logger      *logrus.Logger         // optional progress logging
}

// Runner executes batch analyses over a worker pool
type Runner struct {
	opts     Options
	analyzer *backtrack.Analyzer

	// Performance tracking
	analyzed     int64 // patterns analyzed
	failed       int64 // patterns that did not parse
	catastrophic int64 // patterns classified catastrophic
	startTime    time.Time

	mu sync.Mutex
}

// NewRunner creates a batch runner, defaulting unset options
func NewRunner(opts Options) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.ProbeBudget <= 0 {
		opts.ProbeBudget = 2 * time.Second
	}
	return &Runner{
		opts:      opts,
		analyzer:  backtrack.NewAnalyzer(backtrack.DefaultOptions()),
		startTime: time.Now(),
	}
}

// Run analyzes every pattern and returns reports in input order. The context
// cancels outstanding work; reports produced before cancellation are kept.
func (r *Runner) Run(ctx context.Context, patterns []string) ([]Report, error) {
	reports := make([]Report, len(patterns))

	type job struct {
		idx     int
		pattern string
	}
	jobs := make(chan job)

	var wg sync.WaitGroup
	for w := 0; w < r.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				reports[j.idx] = r.analyzeOne(ctx, j.pattern)
			}
		}()
	}

	var err error
feed:
	for i, p := range patterns {
		select {
		case jobs <- job{idx: i, pattern: p}:
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	return reports, err
}

// analyzeOne produces the full report for a single pattern
func (r *Runner) analyzeOne(ctx context.Context, pattern string) Report {
	report := Report{Pattern: pattern}

	tree, err := syntax.Parse(pattern)
	if err != nil {
		report.Error = err.Error()
		r.count(&r.failed)
		return report
	}
	report.Valid = true
	report.Profile = syntax.DeriveProfile(tree)
	report.Variant = engine.Select(report.Profile)
	report.Reason = engine.Reason(report.Profile)

	if len(r.opts.Dialects) > 0 {
		// unknown dialect IDs were validated by the caller; a failure here
		// leaves the portability section empty rather than aborting the run
		if pr, perr := portability.Check(report.Profile, r.opts.Dialects); perr == nil {
			report.Portability = pr
		}
	} else {
		report.Portability = portability.CheckAll(report.Profile)
	}

	if r.opts.Probe {
		verdict, perr := r.analyzer.Analyze(ctx, pattern, "", r.opts.ProbeBudget)
		if perr == nil {
			report.Backtrack = verdict
			if verdict.Classification == interfaces.BacktrackCatastrophic {
				r.count(&r.catastrophic)
			}
		}
	}

	r.count(&r.analyzed)
	if r.opts.Logger != nil {
		r.opts.Logger.WithFields(logrus.Fields{
			"pattern": pattern,
			"variant": report.Variant,
		}).Debug("Pattern analyzed")
	}
	return report
}

func (r *Runner) count(field *int64) {
	r.mu.Lock()
	*field++
	r.mu.Unlock()
}

// GetStats returns runner statistics
func (r *Runner) GetStats() map[string]interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()

	return map[string]interface{}{
		"workers":      r.opts.Workers,
		"analyzed":     r.analyzed,
		"failed":       r.failed,
		"catastrophic": r.catastrophic,
		"uptime":       time.Since(r.startTime).String(),
	}
}
