/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Main command-line interface for the Akaylee Regex Analyzer. Provides
comprehensive command-line options, configuration management, and beautiful user
interface for analyzing regex patterns with advanced logging capabilities.
*/

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/kleascm/akaylee-regex/cmd/analyzer/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Configuration
	configFile string
	logLevel   string
	jsonLogs   bool

	// Output configuration
	outputFormat string

	// Logging configuration
	logDir      string
	logFormat   string
	logMaxFiles int
	logMaxSize  int64
	logCompress bool

	// Probe configuration
	probeBudget time.Duration
	probeSeed   string
	baseSize    int
	maxSteps    int
	growthRatio float64

	// Portability configuration
	dialects []string

	// Inference configuration
	negatives []string

	// Batch configuration
	batchWorkers int
	batchProbe   bool
	batchReport  bool
)

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "akaylee-regex",
		Short: "Akaylee Regex Analyzer - Production-level regex pattern analysis engine",
		Long: `Akaylee Regex Analyzer is a sophisticated pattern analysis engine that inspects
regular expressions without trusting them. It derives feature profiles, selects the
right matching engine, predicts cross-dialect portability, detects catastrophic
backtracking (ReDoS) with a time-bounded dynamic probe, and infers candidate
patterns from example strings.`,
		Version: "1.0.0",
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Use JSON log format")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output", "text", "Output format (text, json)")

	// Add logging-specific flags
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "./logs", "Log output directory")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "custom", "Log format (text, json, custom, analyzer)")
	rootCmd.PersistentFlags().IntVar(&logMaxFiles, "log-max-files", 10, "Maximum number of log files to keep")
	rootCmd.PersistentFlags().Int64Var(&logMaxSize, "log-max-size", 100*1024*1024, "Maximum log file size in bytes")
	rootCmd.PersistentFlags().BoolVar(&logCompress, "log-compress", false, "Compress rotated log files")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("json_logs", rootCmd.PersistentFlags().Lookup("json-logs"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log_max_files", rootCmd.PersistentFlags().Lookup("log-max-files"))
	viper.BindPFlag("log_max_size", rootCmd.PersistentFlags().Lookup("log-max-size"))
	viper.BindPFlag("log_compress", rootCmd.PersistentFlags().Lookup("log-compress"))

	// Add validate command
	validateCmd := &cobra.Command{
		Use:   "validate <pattern>",
		Short: "Validate a pattern and show its feature profile",
		Long: `Parse a regex pattern, derive its feature profile, and report syntax errors
with position information and fix suggestions. The profile lists every capability
flag the pattern uses plus structural risk metrics.`,
		Args: cobra.ExactArgs(1),
		RunE: commands.RunValidate,
	}
	rootCmd.AddCommand(validateCmd)

	// Add explain command
	explainCmd := &cobra.Command{
		Use:   "explain <pattern>",
		Short: "Break a pattern down into described parts",
		Long: `Parse a regex pattern and describe each component part in plain language,
with a one-line summary of what the whole pattern matches. Patterns equivalent to
a known format (dates, UUIDs, emails, addresses) are named in the summary.`,
		Args: cobra.ExactArgs(1),
		RunE: commands.RunExplain,
	}
	rootCmd.AddCommand(explainCmd)

	// Add engine command
	engineCmd := &cobra.Command{
		Use:   "engine <pattern>",
		Short: "Show which matching engine a pattern requires",
		Long: `Derive the pattern's feature profile and report whether it can run on the
linear-time engine or needs the backtracking engine, with the reason for the choice.`,
		Args: cobra.ExactArgs(1),
		RunE: commands.RunEngine,
	}
	rootCmd.AddCommand(engineCmd)

	// Add portability command
	portabilityCmd := &cobra.Command{
		Use:   "portability <pattern>",
		Short: "Predict cross-dialect portability for a pattern",
		Long: `Check a pattern's feature profile against the capability records of every
registered regex dialect and report, per dialect, whether the pattern is supported
and which feature blocks it when not.`,
		Args: cobra.ExactArgs(1),
		RunE: commands.RunPortability,
	}
	portabilityCmd.Flags().StringSliceVar(&dialects, "dialects", []string{}, "Dialects to check (default: all registered)")
	viper.BindPFlag("dialects", portabilityCmd.Flags().Lookup("dialects"))
	rootCmd.AddCommand(portabilityCmd)

	// Add redos command
	redosCmd := &cobra.Command{
		Use:   "redos <pattern>",
		Short: "Detect catastrophic backtracking (ReDoS) in a pattern",
		Long: `Run the two-phase backtracking analysis: a static scan of the pattern's
structure, then (for risky patterns) a dynamic probe that times the backtracking
matcher against growing adversarial inputs under a hard time budget. The analyzer
never blocks past the budget regardless of how the pattern behaves.`,
		Args: cobra.ExactArgs(1),
		RunE: commands.RunRedos,
	}
	redosCmd.Flags().DurationVar(&probeBudget, "budget", 2*time.Second, "Total wall-clock budget for the dynamic probe")
	redosCmd.Flags().StringVar(&probeSeed, "seed", "", "Adversarial seed substring (default: derived from the pattern)")
	redosCmd.Flags().IntVar(&baseSize, "base-size", 16, "Smallest adversarial input size in bytes")
	redosCmd.Flags().IntVar(&maxSteps, "max-steps", 10, "Maximum number of input doublings")
	redosCmd.Flags().Float64Var(&growthRatio, "growth-ratio", 4.0, "Per-doubling time ratio treated as exponential")

	viper.BindPFlag("probe_budget", redosCmd.Flags().Lookup("budget"))
	viper.BindPFlag("probe_seed", redosCmd.Flags().Lookup("seed"))
	viper.BindPFlag("probe_base_size", redosCmd.Flags().Lookup("base-size"))
	viper.BindPFlag("probe_max_steps", redosCmd.Flags().Lookup("max-steps"))
	viper.BindPFlag("growth_ratio", redosCmd.Flags().Lookup("growth-ratio"))

	rootCmd.AddCommand(redosCmd)

	// Add infer command
	inferCmd := &cobra.Command{
		Use:   "infer <example> [example...]",
		Short: "Infer candidate patterns from example strings",
		Long: `Synthesize regex candidates from example strings. Examples are tokenized and
grouped by structure; each group yields a candidate with a confidence score. Known
formats (dates, UUIDs, emails, addresses) are recognized from a curated template table.`,
		Args: cobra.MinimumNArgs(1),
		RunE: commands.RunInfer,
	}
	inferCmd.Flags().StringSliceVar(&negatives, "negative", []string{}, "Negative examples the pattern must not match")
	viper.BindPFlag("negative_examples", inferCmd.Flags().Lookup("negative"))
	rootCmd.AddCommand(inferCmd)

	// Add batch command
	batchCmd := &cobra.Command{
		Use:   "batch <pattern-file>",
		Short: "Analyze a file of patterns in parallel",
		Long: `Run the full analysis (profile, engine selection, portability, optional ReDoS
probe) over every pattern in a file, one pattern per line. Lines starting with '#'
and blank lines are skipped. Patterns are analyzed concurrently over a worker pool.`,
		Args: cobra.ExactArgs(1),
		RunE: commands.RunBatch,
	}
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "Worker goroutines (default: number of CPUs)")
	batchCmd.Flags().BoolVar(&batchProbe, "probe", false, "Run the ReDoS probe on every pattern")
	batchCmd.Flags().DurationVar(&probeBudget, "budget", 2*time.Second, "Per-pattern probe budget when --probe is set")
	batchCmd.Flags().StringSliceVar(&dialects, "dialects", []string{}, "Dialects to check (default: all registered)")
	batchCmd.Flags().BoolVar(&batchReport, "report", false, "Write the results to the reports directory")

	viper.BindPFlag("batch_workers", batchCmd.Flags().Lookup("workers"))
	viper.BindPFlag("batch_probe", batchCmd.Flags().Lookup("probe"))
	viper.BindPFlag("batch_budget", batchCmd.Flags().Lookup("budget"))
	viper.BindPFlag("batch_dialects", batchCmd.Flags().Lookup("dialects"))
	viper.BindPFlag("batch_report", batchCmd.Flags().Lookup("report"))

	rootCmd.AddCommand(batchCmd)

	// Add logs command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "logs",
		Short: "Rotate, clean up, and summarize analyzer log files",
		Long: `Run log maintenance over the configured log directory: rotate files that
exceed the size limit, remove the oldest files beyond the retention count, and print
file statistics plus per-event counts aggregated from the remaining files.`,
		RunE: commands.RunLogs,
	})

	// Add dialects command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "dialects",
		Short: "List registered regex dialects",
		Long: `List every regex dialect registered in the portability matrix. These are the
identifiers accepted by the portability command's --dialects flag.`,
		RunE: commands.RunDialects,
	})

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
