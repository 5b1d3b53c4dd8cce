/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: runner_test.go
Description: Tests for the parallel batch analysis runner. Covers report
ordering, mixed valid/invalid input, portability subsetting, probe wiring,
and cancellation.
*/

package batch_test

import (
	"context"
	"testing"
	"time"

	"github.com/kleascm/akaylee-regex/pkg/batch"
	"github.com/kleascm/akaylee-regex/pkg/interfaces"
	"github.com/kleascm/akaylee-regex/pkg/portability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRunPreservesOrder tests that reports line up with the input patterns
func TestRunPreservesOrder(t *testing.T) {
	runner := batch.NewRunner(batch.Options{Workers: 4})
	patterns := []string{`abc`, `a+`, `(a)\1`, `\d{4}`, `[x-z]+`}

	reports, err := runner.Run(context.Background(), patterns)
	require.NoError(t, err)
	require.Len(t, reports, len(patterns))

	for i, report := range reports {
		assert.Equal(t, patterns[i], report.Pattern)
		assert.True(t, report.Valid)
	}
	assert.Equal(t, interfaces.EngineBacktracking, reports[2].Variant)
	assert.Equal(t, interfaces.EngineLinearTime, reports[0].Variant)
}

// TestRunInvalidPattern tests that a parse failure stays local to its report
func TestRunInvalidPattern(t *testing.T) {
	runner := batch.NewRunner(batch.Options{})
	reports, err := runner.Run(context.Background(), []string{`(`, `ok`})
	require.NoError(t, err)

	assert.False(t, reports[0].Valid)
	assert.NotEmpty(t, reports[0].Error)
	assert.True(t, reports[1].Valid)
}

// TestRunPortabilitySubset tests dialect narrowing
func TestRunPortabilitySubset(t *testing.T) {
	runner := batch.NewRunner(batch.Options{
		Dialects: []interfaces.DialectID{portability.DialectGoRegexp},
	})
	reports, err := runner.Run(context.Background(), []string{`(?=a)b`})
	require.NoError(t, err)
	require.Len(t, reports[0].Portability, 1)
	assert.False(t, reports[0].Portability[portability.DialectGoRegexp].Supported)
}

// TestRunWithProbe tests that probing attaches a backtrack verdict
func TestRunWithProbe(t *testing.T) {
	runner := batch.NewRunner(batch.Options{
		Probe:       true,
		ProbeBudget: 500 * time.Millisecond,
	})
	reports, err := runner.Run(context.Background(), []string{`(a+)+$`, `abc`})
	require.NoError(t, err)

	require.NotNil(t, reports[0].Backtrack)
	assert.Equal(t, interfaces.BacktrackCatastrophic, reports[0].Backtrack.Classification)

	require.NotNil(t, reports[1].Backtrack)
	assert.Equal(t, interfaces.BacktrackSafe, reports[1].Backtrack.Classification)
}

// TestRunCancellation tests that a cancelled context stops feeding work
func TestRunCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := batch.NewRunner(batch.Options{Workers: 1})
	patterns := make([]string, 100)
	for i := range patterns {
		patterns[i] = `a+b`
	}

	reports, err := runner.Run(ctx, patterns)
	assert.Error(t, err)
	assert.Len(t, reports, len(patterns), "report slots exist even when unfilled")
}

// TestGetStats tests the runner statistics snapshot
func TestGetStats(t *testing.T) {
	runner := batch.NewRunner(batch.Options{Workers: 2})
	_, err := runner.Run(context.Background(), []string{`a`, `(`, `b+`})
	require.NoError(t, err)

	stats := runner.GetStats()
	assert.Equal(t, int64(2), stats["analyzed"])
	assert.Equal(t, int64(1), stats["failed"])
	assert.Equal(t, 2, stats["workers"])
}
