package crawl

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type failedEntry struct {
	Key       string `json:"key"`
	DateRange string `json:"date_range"`
	Reason    string `json:"reason"`
}

func writeRunReport(saveBaseDir string, successList []string, failedList []failedEntry) error {
	if saveBaseDir == "" || (len(successList) == 0 && len(failedList) == 0) {
		return nil
	}
	if err := os.MkdirAll(saveBaseDir, 0755); err != nil {
		return err
	}
	if len(successList) > 0 {
		p := filepath.Join(saveBaseDir, ".lastrun.success.json")
		if err := writeJSON(p, successList); err != nil {
			return err
		}
		slog.Info("report wrote success", "path", p, "jobs", len(successList))
	}
	if len(failedList) > 0 {
		p := filepath.Join(saveBaseDir, ".lastrun.failed.json")
		if err := writeJSON(p, failedList); err != nil {
			return err
		}
		slog.Info("report wrote failed", "path", p, "count", len(failedList))
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func appendSuccess(list []string, key string) []string {
	for _, k := range list {
		if k == key {
			return list
		}
	}
	return append(list, key)
}

func joinFailedReasons(failedList []failedEntry) string {
	if len(failedList) == 0 {
		return ""
	}
	var b strings.Builder
	for i, f := range failedList {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f.Key)
		b.WriteString(": ")
		b.WriteString(f.Reason)
		if i >= 4 && len(failedList) > 6 {
			b.WriteString(fmt.Sprintf(" (+%d more)", len(failedList)-5))
			break
		}
	}
	return b.String()
}
