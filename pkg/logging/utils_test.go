/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils_test.go
Description: Tests for log management. Covers size-based rotation with
compression, retention cleanup, file statistics, and log content analysis.
*/

package logging_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kleascm/akaylee-regex/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLogFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestRotateLogsOverLimit tests that oversized files are rotated and compressed
func TestRotateLogsOverLimit(t *testing.T) {
	dir := t.TempDir()
	big := writeLogFile(t, dir, "akaylee-regex_big.log", strings.Repeat("x", 2048))
	small := writeLogFile(t, dir, "akaylee-regex_small.log", "short")

	manager := logging.NewLogManager(dir, 10, 1024, true)
	require.NoError(t, manager.RotateLogs())

	_, err := os.Stat(big)
	assert.True(t, os.IsNotExist(err), "oversized file should be rotated away")

	compressed, err := filepath.Glob(filepath.Join(dir, "akaylee-regex_big.log.*.gz"))
	require.NoError(t, err)
	assert.Len(t, compressed, 1)

	_, err = os.Stat(small)
	assert.NoError(t, err, "file under the size limit stays in place")
}

// TestCleanupOldLogs tests that retention keeps only the newest files
func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		path := writeLogFile(t, dir, fmt.Sprintf("akaylee-regex_%d.log", i), "entry")
		mod := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(path, mod, mod))
	}

	manager := logging.NewLogManager(dir, 2, 1024*1024, false)
	require.NoError(t, manager.CleanupOldLogs())

	remaining, err := filepath.Glob(filepath.Join(dir, "akaylee-regex_*.log"))
	require.NoError(t, err)
	require.Len(t, remaining, 2)

	_, err = os.Stat(filepath.Join(dir, "akaylee-regex_3.log"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "akaylee-regex_4.log"))
	assert.NoError(t, err)
}

// TestGetLogStats tests file statistics over plain and compressed logs
func TestGetLogStats(t *testing.T) {
	dir := t.TempDir()
	writeLogFile(t, dir, "akaylee-regex_a.log", "aaaa")
	writeLogFile(t, dir, "akaylee-regex_b.log", "bbbb")
	writeLogFile(t, dir, "akaylee-regex_c.log.gz", "cc")

	manager := logging.NewLogManager(dir, 10, 1024*1024, false)
	stats, err := manager.GetLogStats()
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalFiles)
	assert.Equal(t, int64(10), stats.TotalSize)
	assert.Equal(t, 1, stats.CompressedFiles)
	assert.Equal(t, 2, stats.UncompressedFiles)
	assert.False(t, stats.NewestFile.Before(stats.OldestFile))
}

// TestAnalyzeLogs tests level and event counting over log content
func TestAnalyzeLogs(t *testing.T) {
	dir := t.TempDir()
	lines := []string{
		"INFO Pattern analyzed pattern=(a+)+",
		"INFO Pattern explained pattern=cat|dog part_count=1",
		"DEBUG Probe attempt completed input_size=64",
		"WARN Backtracking verdict classification=catastrophic",
		"INFO Patterns inferred example_count=3",
		"INFO Portability checked supported_dialects=4",
		"ERROR failed to open pattern file",
	}
	writeLogFile(t, dir, "akaylee-regex_run.log", strings.Join(lines, "\n")+"\n")

	analyzer := logging.NewLogAnalyzer(dir)
	analysis, err := analyzer.AnalyzeLogs()
	require.NoError(t, err)

	assert.Equal(t, 1, analysis.LogFiles)
	assert.Equal(t, int64(7), analysis.TotalLines)
	assert.Equal(t, int64(4), analysis.InfoCount)
	assert.Equal(t, int64(1), analysis.DebugCount)
	assert.Equal(t, int64(1), analysis.WarningCount)
	assert.Equal(t, int64(1), analysis.ErrorCount)

	assert.Equal(t, int64(1), analysis.AnalysisCount)
	assert.Equal(t, int64(1), analysis.ExplainCount)
	assert.Equal(t, int64(1), analysis.ProbeCount)
	assert.Equal(t, int64(1), analysis.VerdictCount)
	assert.Equal(t, int64(1), analysis.InferenceCount)
	assert.Equal(t, int64(1), analysis.PortabilityCount)

	summary := analysis.GetLogSummary()
	assert.Contains(t, summary, "Total Lines: 7")
	assert.Contains(t, summary, "Explanations: 1")
}
