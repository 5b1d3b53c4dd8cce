/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: analyzer.go
Description: Catastrophic backtracking (ReDoS) analyzer. Two-phase design: a static
scan scores the pattern from its nested-quantifier depth and overlapping alternation,
and only risky patterns proceed to a dynamic probe that times the backtracking matcher
against a family of doubling adversarial inputs. Every probe attempt runs inside an
abandoned-on-deadline goroutine under a hard per-attempt ceiling, so the analyzer
never blocks past its total budget no matter what the pattern does.
*/

package backtrack

import (
	"context"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kleascm/akaylee-regex/pkg/engine"
	"github.com/kleascm/akaylee-regex/pkg/interfaces"
	"github.com/kleascm/akaylee-regex/pkg/syntax"
)

// Options tunes the dynamic probe. Thresholds are empirical: validated against
// known-catastrophic patterns like (a+)+$ and known-safe ones like \d{4}-\d{2}-\d{2}.
type Options struct {
	// BaseSize is the smallest adversarial input length in bytes
	BaseSize int

	// MaxSteps bounds the number of input doublings
	MaxSteps int

	// GrowthRatio is the per-doubling elapsed-time ratio treated as
	// exponential. A safe linear matcher doubles; exponential ones explode.
	GrowthRatio float64

	// NoiseGate discards samples too fast to yield a meaningful ratio
	NoiseGate time.Duration

	// Logger receives per-attempt probe telemetry (optional)
	Logger *logrus.Logger
}

// DefaultOptions returns the probe tuning used by the CLI
func DefaultOptions() Options {
	return Options{
		BaseSize:    16,
		MaxSteps:    10,
		GrowthRatio: 4.0,
		NoiseGate:   50 * time.Microsecond,
	}
}

// Analyzer classifies patterns as safe, suspicious, or catastrophic
type Analyzer struct {
	opts Options
}

// NewAnalyzer creates an analyzer with the given probe tuning
func NewAnalyzer(opts Options) *Analyzer {
	if opts.BaseSize <= 0 {
		opts.BaseSize = 16
	}
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = 10
	}
	if opts.GrowthRatio <= 1.0 {
		opts.GrowthRatio = 4.0
	}
	return &Analyzer{opts: opts}
}

// StaticScore computes the static-phase risk score for a profile. Each level
// of nested-quantifier depth beyond the first adds 2; overlapping alternation
// under a quantifier adds 1. Score 0 means the dynamic probe is skipped.
func StaticScore(profile interfaces.FeatureProfile) int {
	score := 0
	if profile.NestedQuantifierDepth >= 2 {
		score += 2 * (profile.NestedQuantifierDepth - 1)
	}
	if profile.HasOverlappingAlternation {
		score++
	}
	return score
}

// Analyze runs the full two-phase analysis on a raw pattern string. The seed
// argument, when non-empty, replaces the statically derived ambiguous
// substring as the repeated probe unit. A probe attempt that exceeds its
// ceiling is aborted and classified Catastrophic; it is a terminal verdict,
// not an error. The analyzer never blocks past budget in total.
func (a *Analyzer) Analyze(ctx context.Context, pattern string, seed string, budget time.Duration) (*interfaces.BacktrackVerdict, error) {
	tree, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}

	profile := syntax.DeriveProfile(tree)
	verdict := &interfaces.BacktrackVerdict{
		ID:        uuid.New().String(),
		Pattern:   pattern,
		RiskScore: StaticScore(profile),
	}

	if verdict.RiskScore == 0 {
		verdict.Classification = interfaces.BacktrackSafe
		return verdict, nil
	}

	unit, terminator := a.probeSeed(tree, pattern, seed)

	re, err := engine.CompileBacktracking(pattern, budget)
	if err != nil {
		return nil, err
	}

	deadline := time.Now().Add(budget)
	size := a.opts.BaseSize

	for step := 0; step < a.opts.MaxSteps; step++ {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}
		ceiling := remaining / time.Duration(a.opts.MaxSteps-step)

		input := adversarialInput(unit, terminator, size)
		elapsed, aborted, err := a.attempt(ctx, re, input, ceiling)
		if err != nil {
			return nil, err
		}

		if a.opts.Logger != nil {
			a.opts.Logger.WithFields(logrus.Fields{
				"probe_id":   verdict.ID,
				"input_size": len(input),
				"ceiling":    ceiling,
				"elapsed":    elapsed,
				"aborted":    aborted,
			}).Debug("Probe attempt completed")
		}

		if aborted {
			// A ceiling violation is itself the primary catastrophic
			// signal; no further size steps, no retry.
			verdict.Classification = interfaces.BacktrackCatastrophic
			verdict.Aborted = true
			verdict.AbortInputSize = len(input)
			verdict.AbortCeiling = ceiling
			verdict.Suggestion = suggestFix(pattern)
			return verdict, nil
		}

		verdict.Samples = append(verdict.Samples, interfaces.BenchmarkSample{
			InputSize: len(input),
			Elapsed:   elapsed,
		})
		size *= 2
	}

	verdict.Classification = a.classifyGrowth(verdict.Samples)
	if verdict.Classification != interfaces.BacktrackSafe {
		verdict.Suggestion = suggestFix(pattern)
	}
	return verdict, nil
}

// attempt runs one probe match in an isolated goroutine under a hard ceiling.
// On timeout the goroutine is abandoned; its buffered channel lets it finish
// eventually without leaking a blocked sender.
func (a *Analyzer) attempt(ctx context.Context, re *regexp2.Regexp, input string, ceiling time.Duration) (time.Duration, bool, error) {
	// MatchTimeout is the in-matcher fence; the select below is the outer one
	re.MatchTimeout = ceiling

	done := make(chan time.Duration, 1)
	start := time.Now()
	go func() {
		_, matchErr := re.MatchString(input)
		elapsed := time.Since(start)
		if matchErr != nil {
			// MatchTimeout fired inside the matcher
			done <- -1
			return
		}
		done <- elapsed
	}()

	timer := time.NewTimer(ceiling)
	defer timer.Stop()

	select {
	case elapsed := <-done:
		if elapsed < 0 {
			return 0, true, nil
		}
		return elapsed, false, nil
	case <-timer.C:
		return 0, true, nil
	case <-ctx.Done():
		return 0, false, ctx.Err()
	}
}

// classifyGrowth applies the multi-sample confirmation rule: two consecutive
// doubling ratios at or above the threshold classify Catastrophic, a single
// unconfirmed elevated ratio classifies Suspicious, anything else is Safe.
func (a *Analyzer) classifyGrowth(samples []interfaces.BenchmarkSample) interfaces.BacktrackClass {
	consecutive := 0
	sawElevated := false

	prev := time.Duration(-1)
	for _, s := range samples {
		if s.Elapsed < a.opts.NoiseGate {
			// too fast to measure; reset the streak rather than divide noise
			prev = -1
			continue
		}
		if prev > 0 {
			ratio := float64(s.Elapsed) / float64(prev)
			if ratio >= a.opts.GrowthRatio {
				sawElevated = true
				consecutive++
				if consecutive >= 2 {
					return interfaces.BacktrackCatastrophic
				}
			} else {
				consecutive = 0
			}
		}
		prev = s.Elapsed
	}

	if sawElevated {
		return interfaces.BacktrackSuspicious
	}
	return interfaces.BacktrackSafe
}

// probeSeed picks the repeated unit and the non-matching terminator for the
// adversarial input family. A caller-supplied seed overrides the unit; the
// terminator still comes from tree analysis so the probe is forced to fail
// and backtrack through every decomposition of the repeated prefix.
func (a *Analyzer) probeSeed(tree *syntax.SyntaxTree, pattern string, seed string) (unit, terminator string) {
	unit, terminator, ok := syntax.AmbiguousSeed(tree)
	if !ok {
		unit, terminator = knownEvilSeed(pattern)
	}
	if seed != "" {
		unit = seed
	}
	return unit, terminator
}

// knownEvilSeed holds probe seeds for well-known vulnerable constructions,
// used when tree analysis cannot pick an ambiguous substring
func knownEvilSeed(pattern string) (unit, terminator string) {
	evil := []struct {
		fragment   string
		unit       string
		terminator string
	}{
		{"(a+)+", "a", "b"},
		{"(a|aa)+", "a", "b"},
		{"(a|a?)+", "a", "b"},
		{"(.*)*", "a", "X"},
		{"(.+)+@", "a", "!"},
	}
	for _, e := range evil {
		if strings.Contains(pattern, e.fragment) {
			return e.unit, e.terminator
		}
	}
	return "a", "!"
}

// adversarialInput repeats unit up to at least size bytes and appends the
// terminator so the overall match fails at the very end of the input
func adversarialInput(unit, terminator string, size int) string {
	if unit == "" {
		unit = "a"
	}
	n := size / len(unit)
	if n < 1 {
		n = 1
	}
	var b strings.Builder
	b.Grow(n*len(unit) + len(terminator))
	for i := 0; i < n; i++ {
		b.WriteString(unit)
	}
	b.WriteString(terminator)
	return b.String()
}

// suggestFix offers a remediation hint for a risky pattern
func suggestFix(pattern string) string {
	if strings.Contains(pattern, "(a+)+") {
		return "Use atomic group or possessive quantifier: (?>a+)+"
	}
	if strings.Contains(pattern, "(.+)+") || strings.Contains(pattern, "(.*)+") {
		return "Use atomic group: (?>.+)+ or limit repetition"
	}
	return "Consider using atomic groups (?>...) or possessive quantifiers to prevent backtracking"
}
