/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logs.go
Description: Logs command implementation for the Akaylee Regex Analyzer. Runs log
maintenance over the configured log directory: rotation, retention cleanup, file
statistics, and per-event counts aggregated from the remaining log files.
*/

package commands

import (
	"fmt"

	"github.com/kleascm/akaylee-regex/pkg/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunLogs rotates, cleans up, and summarizes analyzer log files
func RunLogs(cmd *cobra.Command, args []string) error {
	fmt.Println("🧹 Akaylee Regex Analyzer - Log Maintenance")
	fmt.Println("===========================================")
	fmt.Println()

	// Load configuration first
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Setup logging
	if err := SetupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	logDir := viper.GetString("log_dir")
	manager := logging.NewLogManager(
		logDir,
		viper.GetInt("log_max_files"),
		viper.GetInt64("log_max_size"),
		viper.GetBool("log_compress"),
	)

	if err := manager.RotateLogs(); err != nil {
		return fmt.Errorf("failed to rotate logs: %w", err)
	}
	if err := manager.CleanupOldLogs(); err != nil {
		return fmt.Errorf("failed to clean up logs: %w", err)
	}

	stats, err := manager.GetLogStats()
	if err != nil {
		return fmt.Errorf("failed to collect log stats: %w", err)
	}

	analyzer := logging.NewLogAnalyzer(logDir)
	analysis, err := analyzer.AnalyzeLogs()
	if err != nil {
		return fmt.Errorf("failed to analyze logs: %w", err)
	}

	if jsonOutput() {
		return printJSON(struct {
			Stats    *logging.LogStats    `json:"stats"`
			Analysis *logging.LogAnalysis `json:"analysis"`
		}{stats, analysis})
	}

	fmt.Printf("📁 Directory: %s\n", logDir)
	fmt.Printf("🗂️  Files: %d (%d compressed)\n", stats.TotalFiles, stats.CompressedFiles)
	fmt.Printf("💾 Total size: %d bytes\n", stats.TotalSize)
	if stats.TotalFiles > 0 {
		fmt.Printf("🕐 Oldest: %s\n", stats.OldestFile.Format("2006-01-02 15:04:05"))
		fmt.Printf("🕑 Newest: %s\n", stats.NewestFile.Format("2006-01-02 15:04:05"))
	}
	fmt.Println()
	fmt.Println(analysis.GetLogSummary())

	return nil
}
