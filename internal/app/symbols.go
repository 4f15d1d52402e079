package app

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"quote-history/internal/crawl"
)

// LoadTargetsFromFile reads a list of instruments from a file.
// Supported formats:
//   - .txt  : one target per line (600000.SSE, SH.600000, SSE:600000); '#' starts a comment
//   - .json : JSON array of strings in the same forms
//
// Duplicates are dropped, first occurrence wins.
func LoadTargetsFromFile(path string) ([]crawl.Target, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w", path, err)
	}

	var lines []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(content, &lines); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	case ".txt":
		lines = parseTargetLines(string(content))
	default:
		return nil, fmt.Errorf("unsupported symbols file extension %q (use .txt or .json)", filepath.Ext(path))
	}

	seen := make(map[string]bool)
	var targets []crawl.Target
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		t, err := crawl.ParseTarget(l)
		if err != nil {
			return nil, fmt.Errorf("%s entry %d: %w", path, i+1, err)
		}
		if seen[t.Key()] {
			continue
		}
		seen[t.Key()] = true
		targets = append(targets, t)
	}

	slog.Info("loaded targets from file", "count", len(targets), "path", path)
	return targets, nil
}

// parseTargetLines keeps non-empty lines with trailing comments stripped.
func parseTargetLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
