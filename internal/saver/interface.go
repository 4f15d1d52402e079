package saver

import (
	"strings"

	"quote-history/internal/model"
)

// PacketSaver writes one fetch result to a file.
// The app injects an implementation; fetch code only depends on this interface.
type PacketSaver interface {
	Save(bars []model.Bar, path string) error
	Extension() string
}

// Formats lists the accepted SAVE_FORMAT values.
var Formats = []string{"csv", "json", "json.gz", "parquet"}

// NewPacketSaver creates implementation by format (csv, json, json.gz, parquet).
// Returns nil if format not supported.
func NewPacketSaver(format string) PacketSaver {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVSaver{}
	case "parquet":
		return ParquetSaver{}
	case "json":
		return JSONSaver{}
	case "json.gz", "gzip":
		return GzipJSONSaver{}
	default:
		return nil
	}
}
