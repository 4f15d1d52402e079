package crawl

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"quote-history/internal/model"
)

// ProgressUpdate is sent when a job succeeds: the date of its last bar.
type ProgressUpdate struct {
	Key  string
	Date string
}

func progressKey(t Target, interval model.Interval) string {
	return t.Key() + "@" + string(interval)
}

func loadProgress(path string) map[string]string {
	if path == "" {
		return make(map[string]string)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return make(map[string]string)
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		return make(map[string]string)
	}
	return m
}

// RunProgressWriter receives updates and persists to file (run as goroutine).
// An empty path discards updates.
func RunProgressWriter(path string, updates <-chan ProgressUpdate) {
	m := loadProgress(path)
	for u := range updates {
		if path == "" {
			continue
		}
		if prev, ok := m[u.Key]; ok && prev >= u.Date {
			continue
		}
		m[u.Key] = u.Date
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			slog.Warn("progress marshal error", "error", err)
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			slog.Warn("progress dir error", "error", err)
			continue
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			slog.Warn("progress write error", "error", err)
		}
	}
}
