/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: explain.go
Description: Explain command implementation for the Akaylee Regex Analyzer. Breaks
a pattern down into described component parts and prints a plain-language summary
of what the pattern matches.
*/

package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kleascm/akaylee-regex/pkg/explain"
	"github.com/kleascm/akaylee-regex/pkg/syntax"
	"github.com/spf13/cobra"
)

// RunExplain describes each component of a pattern in plain language
func RunExplain(cmd *cobra.Command, args []string) error {
	fmt.Println("📖 Akaylee Regex Analyzer - Pattern Explanation")
	fmt.Println("===============================================")
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

	result, err := explain.Explain(pattern)
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

	fileLogger, err := NewFileLogger()
	if err != nil {
		return err
	}
	defer fileLogger.Close()
	fileLogger.LogExplain(pattern, len(result.Parts), nil)

	if jsonOutput() {
		return printJSON(result)
	}

	fmt.Println("🧩 Parts")
	fmt.Println("========")
	printParts(result.Parts, 0)
	fmt.Println()
	fmt.Printf("📝 Summary: %s\n", result.Summary)

	return nil
}

// printParts renders explanation parts as an indented tree
func printParts(parts []explain.Part, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, p := range parts {
		fmt.Printf("%s• %-24s %s\n", indent, p.Token, p.Desc)
		if len(p.Children) > 0 {
			printParts(p.Children, depth+1)
		}
	}
}
