/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the Akaylee Regex Analyzer commands. Provides common
configuration loading, logging setup, and output helpers used across all command
implementations.
*/

package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-regex/pkg/logging"
)

// LoadConfig loads configuration from files and environment
func LoadConfig() error {
	// Set config file if specified
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("AKAYLEE")
	viper.AutomaticEnv()

	return nil
}

// SetupLogging configures the logging system
func SetupLogging() error {
	logLevel := viper.GetString("log_level")
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	logrus.SetLevel(level)
	if viper.GetBool("json_logs") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		return nil
	}
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return nil
}

// fileLoggerConfig assembles the file logger configuration from the logging flags
func fileLoggerConfig() *logging.LoggerConfig {
	return &logging.LoggerConfig{
		Level:     logging.LogLevel(viper.GetString("log_level")),
		Format:    logging.LogFormat(viper.GetString("log_format")),
		OutputDir: viper.GetString("log_dir"),
		MaxFiles:  viper.GetInt("log_max_files"),
		MaxSize:   viper.GetInt64("log_max_size"),
		Compress:  viper.GetBool("log_compress"),
		Timestamp: true,
	}
}

// NewFileLogger builds the file-backed logging system from the logging flags.
// Callers must Close it when done.
func NewFileLogger() (*logging.Logger, error) {
	config := fileLoggerConfig()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logging configuration: %w", err)
	}
	return logging.NewLogger(config)
}

// NewProbeFileLogger is NewFileLogger with the analyzer formatter swapped in
// for the default custom format. Probe and verdict events carry the field sets
// the analyzer formatter knows how to prefix and abbreviate.
func NewProbeFileLogger() (*logging.Logger, error) {
	config := fileLoggerConfig()
	if config.Format == logging.LogFormatCustom {
		config.Format = logging.LogFormatAnalyzer
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logging configuration: %w", err)
	}
	return logging.NewLogger(config)
}

// jsonOutput reports whether results should be emitted as JSON
func jsonOutput() bool {
	return viper.GetString("output") == "json"
}

// printJSON pretty-prints a result value to stdout
func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}
