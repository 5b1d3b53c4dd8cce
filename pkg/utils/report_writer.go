/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: report_writer.go
Description: Utility for writing analysis results to the reports directory.
Handles timestamped, versioned, and kind-specific subdirectory naming.
Ensures directories exist and writes JSON files for easy analysis.
*/

package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// WriteReportFile writes a result to the reports directory with timestamp, kind, and version
func WriteReportFile(kind string, version string, result interface{}) (string, error) {
	// Ensure reports directory and subdirectory exist
	reportsDir := filepath.Join("reports", kind)
	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	// Generate filename: 2026-08-26_01-30-00_batch_v1.0.0.json
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s_v%s.json", timestamp, kind, version)
	filePath := filepath.Join(reportsDir, filename)

	// Marshal result to JSON
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	// Write to file
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	return filePath, nil
}
