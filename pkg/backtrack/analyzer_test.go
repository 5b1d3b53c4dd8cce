/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: analyzer_test.go
Description: Tests for the catastrophic backtracking analyzer. Covers static
risk scoring, the fast path for structurally safe patterns, budget-bounded
dynamic probing of exponential patterns, and abort reporting.
*/

package backtrack_test

import (
	"context"
	"testing"
	"time"

	"github.com/kleascm/akaylee-regex/pkg/backtrack"
	"github.com/kleascm/akaylee-regex/pkg/interfaces"
	"github.com/kleascm/akaylee-regex/pkg/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStaticScore tests the structural risk scoring rules
func TestStaticScore(t *testing.T) {
	cases := []struct {
		pattern string
		score   int
	}{
		{`abc`, 0},
		{`a+`, 0},
		{`\d{4}-\d{2}-\d{2}`, 0},
		{`(a+)+`, 2},
		{`((a+)+)+`, 4},
		{`(a|ab)+`, 1},
		{`(a|a?)+`, 3}, // nested ambiguous quantifier plus overlapping branches
	}

	for _, tc := range cases {
		tree, err := syntax.Parse(tc.pattern)
		require.NoError(t, err)
		profile := syntax.DeriveProfile(tree)
		assert.Equal(t, tc.score, backtrack.StaticScore(profile), "pattern %q", tc.pattern)
	}
}

// TestAnalyzeSafeFastPath tests that a zero-score pattern skips the probe
func TestAnalyzeSafeFastPath(t *testing.T) {
	analyzer := backtrack.NewAnalyzer(backtrack.DefaultOptions())

	verdict, err := analyzer.Analyze(context.Background(), `\d{4}-\d{2}-\d{2}`, "", 500*time.Millisecond)
	require.NoError(t, err)

	assert.Equal(t, interfaces.BacktrackSafe, verdict.Classification)
	assert.Equal(t, 0, verdict.RiskScore)
	assert.Empty(t, verdict.Samples, "safe patterns must not be probed")
	assert.False(t, verdict.Aborted)
	assert.NotEmpty(t, verdict.ID)
	assert.Equal(t, `\d{4}-\d{2}-\d{2}`, verdict.Pattern)
}

// TestAnalyzeCatastrophic tests classification of the classic exponential
// pattern within its time budget
func TestAnalyzeCatastrophic(t *testing.T) {
	analyzer := backtrack.NewAnalyzer(backtrack.DefaultOptions())
	budget := 1 * time.Second

	begin := time.Now()
	verdict, err := analyzer.Analyze(context.Background(), `(a+)+$`, "a", budget)
	elapsed := time.Since(begin)

	require.NoError(t, err)
	assert.Equal(t, interfaces.BacktrackCatastrophic, verdict.Classification)
	assert.GreaterOrEqual(t, verdict.RiskScore, 2)
	assert.NotEmpty(t, verdict.Suggestion)
	assert.Less(t, elapsed, 3*budget, "analysis must stay near its budget")
}

// TestAnalyzeAbortReporting tests that a cut-off probe records where it died
func TestAnalyzeAbortReporting(t *testing.T) {
	analyzer := backtrack.NewAnalyzer(backtrack.DefaultOptions())

	verdict, err := analyzer.Analyze(context.Background(), `(a+)+$`, "", 1*time.Second)
	require.NoError(t, err)
	require.Equal(t, interfaces.BacktrackCatastrophic, verdict.Classification)

	if verdict.Aborted {
		assert.Greater(t, verdict.AbortInputSize, 0)
		assert.Greater(t, verdict.AbortCeiling, time.Duration(0))
	}
}

// TestAnalyzeInvalidPattern tests the parse error path
func TestAnalyzeInvalidPattern(t *testing.T) {
	analyzer := backtrack.NewAnalyzer(backtrack.DefaultOptions())

	_, err := analyzer.Analyze(context.Background(), `(`, "", time.Second)
	require.Error(t, err)
}

// TestAnalyzeLinearGrowth tests that a linear pattern with a nonzero score
// path still resolves within budget
func TestAnalyzeLinearGrowth(t *testing.T) {
	analyzer := backtrack.NewAnalyzer(backtrack.DefaultOptions())

	// overlapping alternation under repetition scores 1, triggering the
	// dynamic probe, but anchored-free matching stays polynomial here
	verdict, err := analyzer.Analyze(context.Background(), `(a|[ab])+`, "", 1*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, verdict.RiskScore)
	assert.Contains(t, []interfaces.BacktrackClass{
		interfaces.BacktrackSafe,
		interfaces.BacktrackSuspicious,
	}, verdict.Classification)
}

// TestDefaultOptions tests option defaulting for zero values
func TestDefaultOptions(t *testing.T) {
	opts := backtrack.DefaultOptions()
	assert.Equal(t, 16, opts.BaseSize)
	assert.Equal(t, 10, opts.MaxSteps)
	assert.Equal(t, 4.0, opts.GrowthRatio)
	assert.Equal(t, 50*time.Microsecond, opts.NoiseGate)

	analyzer := backtrack.NewAnalyzer(backtrack.Options{})
	require.NotNil(t, analyzer)
}
