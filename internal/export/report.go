// Package export writes analysis results to disk: the JSON report and the
// optional archetype chart.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ramonehamilton/deck-labeler/internal/analysis"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_\- ]`)

// SafeFileName reduces a deck name to a filesystem-safe base name,
// defaulting to "deck" when nothing survives.
func SafeFileName(deckName string) string {
	name := strings.TrimSpace(unsafeNameChars.ReplaceAllString(deckName, ""))
	if name == "" {
		return "deck"
	}
	return name
}

// WriteReport writes the report as indented JSON into dir, creating the
// directory if needed. Returns the path of the written file.
func WriteReport(dir string, report *analysis.Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	path := filepath.Join(dir, SafeFileName(report.DeckName)+"_labels.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
