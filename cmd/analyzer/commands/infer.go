/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: infer.go
Description: Infer command implementation for the Akaylee Regex Analyzer. Synthesizes
regex candidates from example strings, with optional negative examples, and displays
them ordered by confidence.
*/

package commands

import (
	"fmt"

	"github.com/kleascm/akaylee-regex/pkg/inference"
	"github.com/kleascm/akaylee-regex/pkg/syntax"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunInfer synthesizes candidate patterns from example strings
func RunInfer(cmd *cobra.Command, args []string) error {
	fmt.Println("🧠 Akaylee Regex Analyzer - Pattern Inference")
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

	examples := args
	negatives := viper.GetStringSlice("negative_examples")

	fmt.Printf("📊 Examples: %d\n", len(examples))
	if len(negatives) > 0 {
		fmt.Printf("🚫 Negative examples: %d\n", len(negatives))
	}
	fmt.Println()

	inferencer := inference.NewInferencer()
	candidates, err := inferencer.InferWithNegatives(examples, negatives)
	if err != nil {
		return err
	}

	fileLogger, err := NewFileLogger()
	if err != nil {
		return err
	}
	defer fileLogger.Close()
	fileLogger.LogInference(len(examples), len(candidates), nil)

	if jsonOutput() {
		return printJSON(candidates)
	}

	fmt.Println("📋 Candidates")
	fmt.Println("=============")
	for i, c := range candidates {
		fmt.Printf("%d. %s\n", i+1, c.Pattern)
		fmt.Printf("   confidence: %.2f  (%s)\n", c.Confidence, c.Desc)

		// Every candidate must round-trip through the analyzer's own parser
		if _, err := syntax.Parse(c.Pattern); err != nil {
			fmt.Printf("   ⚠️  candidate failed to re-parse: %v\n", err)
		}
	}

	fmt.Println("\n✨ Inference completed!")
	return nil
}
