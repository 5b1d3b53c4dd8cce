/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: engine.go
Description: Engine command implementation for the Akaylee Regex Analyzer. Derives
a pattern's feature profile and reports which matching engine can execute it and why.
*/

package commands

import (
	"fmt"

	"github.com/kleascm/akaylee-regex/pkg/engine"
	"github.com/kleascm/akaylee-regex/pkg/interfaces"
	"github.com/kleascm/akaylee-regex/pkg/syntax"
	"github.com/spf13/cobra"
)

// RunEngine reports the engine variant a pattern requires
func RunEngine(cmd *cobra.Command, args []string) error {
	fmt.Println("⚙️  Akaylee Regex Analyzer - Engine Selection")
	fmt.Println("============================================")
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
	variant := engine.Select(profile)
	reason := engine.Reason(profile)

	if jsonOutput() {
		return printJSON(struct {
			Pattern string                   `json:"pattern"`
			Engine  interfaces.EngineVariant `json:"engine"`
			Reason  string                   `json:"reason"`
		}{pattern, variant, reason})
	}

	switch variant {
	case interfaces.EngineLinearTime:
		fmt.Println("🚀 Engine: linear_time")
		fmt.Println("   Guaranteed linear-time matching, immune to catastrophic backtracking.")
	case interfaces.EngineBacktracking:
		fmt.Println("🐢 Engine: backtracking")
		fmt.Println("   Full feature support at the cost of potential exponential runtime.")
	}
	if reason != "" {
		fmt.Printf("📌 Reason: %s\n", reason)
	}

	return nil
}
