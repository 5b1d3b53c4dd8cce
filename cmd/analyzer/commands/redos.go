/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: redos.go
Description: ReDoS command implementation for the Akaylee Regex Analyzer. Runs the
two-phase catastrophic backtracking analysis with a hard wall-clock budget and
reports the classification, timing samples, and remediation suggestions.
*/

package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/kleascm/akaylee-regex/pkg/backtrack"
	"github.com/kleascm/akaylee-regex/pkg/interfaces"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunRedos analyzes a pattern for catastrophic backtracking
func RunRedos(cmd *cobra.Command, args []string) error {
	fmt.Println("💥 Akaylee Regex Analyzer - ReDoS Detection")
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

	pattern := args[0]
	config := probeConfig()

	fmt.Printf("🎯 Pattern: %s\n", pattern)
	fmt.Printf("⏱️  Budget: %v\n", config.ProbeBudget)
	if config.SeedInput != "" {
		fmt.Printf("🌱 Seed: %q\n", config.SeedInput)
	}
	fmt.Println()

	opts := backtrack.DefaultOptions()
	if config.ProbeBaseSize > 0 {
		opts.BaseSize = config.ProbeBaseSize
	}
	if config.ProbeMaxSteps > 0 {
		opts.MaxSteps = config.ProbeMaxSteps
	}
	if config.GrowthRatio > 1.0 {
		opts.GrowthRatio = config.GrowthRatio
	}
	if config.ProbeNoiseGate > 0 {
		opts.NoiseGate = config.ProbeNoiseGate
	}

	analyzer := backtrack.NewAnalyzer(opts)

	start := time.Now()
	verdict, err := analyzer.Analyze(context.Background(), pattern, config.SeedInput, config.ProbeBudget)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fileLogger, err := NewProbeFileLogger()
	if err != nil {
		return err
	}
	defer fileLogger.Close()
	for _, s := range verdict.Samples {
		fileLogger.LogProbe(verdict.ID, s.InputSize, s.Elapsed, nil)
	}
	fileLogger.LogVerdict(verdict.ID, string(verdict.Classification), verdict.RiskScore, nil)

	if jsonOutput() {
		return printJSON(verdict)
	}

	fmt.Printf("🧮 Static risk score: %d\n", verdict.RiskScore)
	if verdict.RiskScore == 0 {
		fmt.Println("   No risky structure found, dynamic probe skipped.")
	} else {
		fmt.Printf("🔬 Probe samples (%d):\n", len(verdict.Samples))
		for _, s := range verdict.Samples {
			fmt.Printf("   %8d bytes → %v\n", s.InputSize, s.Elapsed)
		}
		if verdict.Aborted {
			fmt.Printf("🛑 Probe aborted at %d bytes (ceiling %v exceeded)\n",
				verdict.AbortInputSize, verdict.AbortCeiling)
		}
	}
	fmt.Println()

	switch verdict.Classification {
	case interfaces.BacktrackSafe:
		fmt.Println("✅ Classification: SAFE")
	case interfaces.BacktrackSuspicious:
		fmt.Println("⚠️  Classification: SUSPICIOUS")
	case interfaces.BacktrackCatastrophic:
		fmt.Println("💥 Classification: CATASTROPHIC")
	}
	if verdict.Suggestion != "" {
		fmt.Printf("💡 Suggestion: %s\n", verdict.Suggestion)
	}
	fmt.Printf("\n✨ Analysis completed in %v (probe id %s)\n", elapsed, verdict.ID)

	return nil
}

// probeConfig assembles the probe configuration from flags, environment, and
// config file via viper
func probeConfig() interfaces.AnalyzerConfig {
	config := interfaces.AnalyzerConfig{
		ProbeBudget:    viper.GetDuration("probe_budget"),
		ProbeBaseSize:  viper.GetInt("probe_base_size"),
		ProbeMaxSteps:  viper.GetInt("probe_max_steps"),
		GrowthRatio:    viper.GetFloat64("growth_ratio"),
		SeedInput:      viper.GetString("probe_seed"),
		ProbeNoiseGate: viper.GetDuration("probe_noise_gate"),
		LogLevel:       viper.GetString("log_level"),
		LogDir:         viper.GetString("log_dir"),
		JSONLogs:       viper.GetBool("json_logs"),
	}
	if config.ProbeBudget <= 0 {
		config.ProbeBudget = 2 * time.Second
	}
	return config
}
