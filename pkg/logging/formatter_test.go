/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: formatter_test.go
Description: Tests for the log formatters. Covers field rendering in the custom
formatter and the analyzer formatter's event prefixes and value abbreviation.
*/

package logging_test

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/akaylee-regex/pkg/logging"
)

func formatterEntry(msg string, fields logrus.Fields) *logrus.Entry {
	entry := logrus.NewEntry(logrus.New()).WithFields(fields)
	entry.Message = msg
	entry.Level = logrus.InfoLevel
	entry.Time = time.Now()
	return entry
}

// TestCustomFormatterFields tests plain field rendering without colors
func TestCustomFormatterFields(t *testing.T) {
	f := &logging.CustomFormatter{}
	out, err := f.Format(formatterEntry("Pattern analyzed", logrus.Fields{
		"pattern": `(a+)+`,
	}))
	require.NoError(t, err)

	line := string(out)
	assert.Contains(t, line, "INFO")
	assert.Contains(t, line, "Pattern analyzed")
	assert.Contains(t, line, "pattern=(a+)+")
}

// TestAnalyzerFormatterPrefixes tests that event messages get their prefix
func TestAnalyzerFormatterPrefixes(t *testing.T) {
	f := &logging.AnalyzerFormatter{}

	cases := map[string]string{
		"Pattern analyzed":        "[ANALYZE]",
		"Pattern explained":       "[EXPLAIN]",
		"Probe attempt completed": "[PROBE]",
		"Backtracking verdict":    "[VERDICT]",
		"Patterns inferred":       "[INFER]",
		"Portability checked":     "[PORTABILITY]",
	}
	for msg, prefix := range cases {
		out, err := f.Format(formatterEntry(msg, nil))
		require.NoError(t, err)
		assert.Contains(t, string(out), prefix)
	}

	out, err := f.Format(formatterEntry("unrelated message", nil))
	require.NoError(t, err)
	assert.NotContains(t, string(out), "[")
}

// TestAnalyzerFormatterValues tests analyzer-specific value formatting
func TestAnalyzerFormatterValues(t *testing.T) {
	f := &logging.AnalyzerFormatter{}
	out, err := f.Format(formatterEntry("Backtracking verdict", logrus.Fields{
		"elapsed":  5 * time.Millisecond,
		"probe_id": "0123456789abcdef",
	}))
	require.NoError(t, err)

	line := string(out)
	assert.Contains(t, line, "elapsed=5ms")
	assert.Contains(t, line, "probe_id=01234567...")
}
