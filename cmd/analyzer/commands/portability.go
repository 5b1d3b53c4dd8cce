/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: portability.go
Description: Portability command implementation for the Akaylee Regex Analyzer.
Checks a pattern's feature profile against every requested dialect's capability
record and reports per-dialect support verdicts.
*/

package commands

import (
	"fmt"

	"github.com/kleascm/akaylee-regex/pkg/interfaces"
	"github.com/kleascm/akaylee-regex/pkg/portability"
	"github.com/kleascm/akaylee-regex/pkg/syntax"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunPortability predicts cross-dialect portability for a pattern
func RunPortability(cmd *cobra.Command, args []string) error {
	fmt.Println("🌍 Akaylee Regex Analyzer - Portability Check")
	fmt.Println("=============================================")
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
	fmt.Printf("🎯 Pattern: %s\n", pattern)
	fmt.Println()

	tree, err := syntax.Parse(pattern)
	if err != nil {
		return err
	}
	profile := syntax.DeriveProfile(tree)

	requested := viper.GetStringSlice("dialects")
	var ids []interfaces.DialectID
	if len(requested) == 0 {
		ids = portability.Dialects()
	} else {
		for _, d := range requested {
			ids = append(ids, interfaces.DialectID(d))
		}
	}

	report, err := portability.Check(profile, ids)
	if err != nil {
		return err
	}

	supported := 0
	for _, id := range ids {
		if report[id].Supported {
			supported++
		}
	}

	fileLogger, err := NewFileLogger()
	if err != nil {
		return err
	}
	defer fileLogger.Close()
	fileLogger.LogPortability(pattern, supported, len(ids), nil)

	if jsonOutput() {
		return printJSON(struct {
			Pattern string                       `json:"pattern"`
			Report  interfaces.PortabilityReport `json:"report"`
		}{pattern, report})
	}

	for _, id := range ids {
		verdict := report[id]
		if verdict.Supported {
			fmt.Printf("  ✅ %-14s supported\n", id)
		} else {
			fmt.Printf("  ❌ %-14s unsupported (%s)\n", id, verdict.Reason)
		}
	}
	fmt.Println()
	fmt.Printf("📊 Supported in %d of %d dialects\n", supported, len(ids))

	return nil
}

// RunDialects lists the registered dialect identifiers
func RunDialects(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ids := portability.Dialects()
	if jsonOutput() {
		return printJSON(ids)
	}

	fmt.Println("🌍 Registered dialects:")
	for _, id := range ids {
		fmt.Printf("  • %s\n", id)
	}
	return nil
}
