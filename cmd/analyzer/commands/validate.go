/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: validate.go
Description: Validate command implementation for the Akaylee Regex Analyzer. Parses
a pattern, derives its feature profile, and reports syntax errors with position
information and fix suggestions.
*/

package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kleascm/akaylee-regex/pkg/engine"
	"github.com/kleascm/akaylee-regex/pkg/interfaces"
	"github.com/kleascm/akaylee-regex/pkg/syntax"
	"github.com/spf13/cobra"
)

// RunValidate parses a pattern and shows its feature profile
func RunValidate(cmd *cobra.Command, args []string) error {
	fmt.Println("🔍 Akaylee Regex Analyzer - Pattern Validation")
	fmt.Println("==============================================")
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
		var perr *syntax.ParseError
		if errors.As(err, &perr) {
			fmt.Printf("❌ Syntax error at position %d: %s\n", perr.Position, perr.Message)
			fmt.Printf("   %s\n", pattern)
			fmt.Printf("   %s^\n", strings.Repeat(" ", perr.Position))
			if perr.Suggestion != "" {
				fmt.Printf("💡 Suggestion: %s\n", perr.Suggestion)
			}
		}
		return err
	}

	profile := syntax.DeriveProfile(tree)
	variant := engine.Select(profile)

	fileLogger, err := NewFileLogger()
	if err != nil {
		return err
	}
	defer fileLogger.Close()
	fileLogger.LogAnalysis(pattern, string(variant), map[string]interface{}{
		"nested_quantifier_depth": profile.NestedQuantifierDepth,
	})

	if jsonOutput() {
		return printJSON(struct {
			Pattern string                    `json:"pattern"`
			Valid   bool                      `json:"valid"`
			Profile interfaces.FeatureProfile `json:"profile"`
			Engine  interfaces.EngineVariant  `json:"engine"`
		}{pattern, true, profile, variant})
	}

	fmt.Println("✅ Pattern is valid")
	fmt.Println()
	fmt.Println("📋 Feature Profile")
	fmt.Println("==================")
	printProfile(profile)
	fmt.Println()
	if reason := engine.Reason(profile); reason != "" {
		fmt.Printf("⚙️  Engine: %s (%s)\n", variant, reason)
	} else {
		fmt.Printf("⚙️  Engine: %s\n", variant)
	}

	return nil
}

// printProfile displays a feature profile in a readable format
func printProfile(p interfaces.FeatureProfile) {
	flag := func(name string, set bool) {
		mark := " "
		if set {
			mark = "✓"
		}
		fmt.Printf("  [%s] %s\n", mark, name)
	}

	flag("lookahead", p.HasLookahead)
	flag("lookbehind", p.HasLookbehind)
	flag("variable-length lookbehind", p.LookbehindIsVariableLength)
	flag("backreference", p.HasBackreference)
	flag("backreference in lookaround", p.HasBackrefInLookaround)
	flag("named groups", p.HasNamedGroups)
	flag("conditional", p.HasConditional)
	flag("atomic group", p.HasAtomicGroup)
	flag("possessive quantifier", p.HasPossessiveQuantifier)
	flag("unicode property", p.HasUnicodeProperty)
	flag("overlapping alternation", p.HasOverlappingAlternation)
	flag("quantifier inside lookahead", p.LookaheadHasNestedQuantifier)
	fmt.Printf("  nested quantifier depth: %d\n", p.NestedQuantifierDepth)
}
