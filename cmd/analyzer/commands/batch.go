/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: batch.go
Description: Batch command implementation for the Akaylee Regex Analyzer.
Reads a file of patterns and runs the full analysis over a worker pool,
printing a per-pattern summary and aggregate statistics.
*/

package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-regex/pkg/batch"
	"github.com/kleascm/akaylee-regex/pkg/interfaces"
	"github.com/kleascm/akaylee-regex/pkg/portability"
	"github.com/kleascm/akaylee-regex/pkg/utils"
)

// RunBatch analyzes a file of patterns in parallel
func RunBatch(cmd *cobra.Command, args []string) error {
	fmt.Println("📦 Akaylee Regex Analyzer - Batch Analysis")
	fmt.Println("==========================================")
	fmt.Println()

	// Load configuration first
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Setup logging
	if err := SetupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	patterns, err := readPatternFile(args[0])
	if err != nil {
		return err
	}
	if len(patterns) == 0 {
		return fmt.Errorf("no patterns found in %s", args[0])
	}
	fmt.Printf("🎯 Patterns: %d from %s\n", len(patterns), args[0])
	fmt.Println()

	var ids []interfaces.DialectID
	for _, d := range viper.GetStringSlice("batch_dialects") {
		ids = append(ids, interfaces.DialectID(d))
	}
	if len(ids) > 0 {
		// reject unknown dialect names before spinning up workers
		if _, err := portability.Check(interfaces.FeatureProfile{}, ids); err != nil {
			return err
		}
	}

	fileLogger, err := NewFileLogger()
	if err != nil {
		return err
	}
	defer fileLogger.Close()

	runner := batch.NewRunner(batch.Options{
		Workers:     viper.GetInt("batch_workers"),
		Dialects:    ids,
		Probe:       viper.GetBool("batch_probe"),
		ProbeBudget: viper.GetDuration("batch_budget"),
		Logger:      fileLogger.GetLogger(),
	})

	reports, err := runner.Run(context.Background(), patterns)
	if err != nil {
		return fmt.Errorf("batch run interrupted: %w", err)
	}

	if jsonOutput() {
		return printJSON(reports)
	}

	for _, report := range reports {
		if !report.Valid {
			fmt.Printf("❌ %s\n   %s\n", report.Pattern, report.Error)
			continue
		}

		marker := "🚀"
		if report.Variant == interfaces.EngineBacktracking {
			marker = "🐢"
		}
		fmt.Printf("%s %s (%s)", marker, report.Pattern, report.Variant)

		if report.Backtrack != nil && report.Backtrack.Classification == interfaces.BacktrackCatastrophic {
			fmt.Print("  💥 catastrophic")
		}
		fmt.Println()
	}

	stats := runner.GetStats()
	fmt.Println()
	fmt.Printf("📊 Analyzed: %d  Failed: %d  Catastrophic: %d  Workers: %d\n",
		stats["analyzed"], stats["failed"], stats["catastrophic"], stats["workers"])

	if viper.GetBool("batch_report") {
		path, werr := utils.WriteReportFile("batch", "1.0.0", reports)
		if werr != nil {
			return fmt.Errorf("failed to write report: %w", werr)
		}
		fmt.Printf("💾 Report written to %s\n", path)
	}

	return nil
}

// readPatternFile loads patterns from a file, one per line, skipping blank
// lines and '#' comments
func readPatternFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern file: %w", err)
	}

	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns, nil
}
