package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CleaningCounts are the headline numbers of the cleaning step.
type CleaningCounts struct {
	TotalParsed    int `json:"total_parsed"`
	InvalidRemoved int `json:"invalid_removed"`
	ValidKept      int `json:"valid_kept"`
}

// WriteSummary writes the plain-text cleaning summary.
func WriteSummary(path string, c CleaningCounts) error {
	var b strings.Builder
	b.WriteString("=== DATA CLEANING SUMMARY ===\n")
	fmt.Fprintf(&b, "Total records parsed: %d\n", c.TotalParsed)
	fmt.Fprintf(&b, "Invalid records removed: %d\n", c.InvalidRemoved)
	fmt.Fprintf(&b, "Valid records after cleaning: %d\n", c.ValidKept)
	return WriteText(path, b.String())
}

// WriteText writes text to path, creating parent directories.
func WriteText(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("text: create output dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("text: write %q: %w", path, err)
	}
	return nil
}
