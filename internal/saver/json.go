package saver

import (
	"encoding/json"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	"quote-history/internal/model"
)

// JSONSaver writes bars as an indented JSON array.
type JSONSaver struct{}

func (JSONSaver) Extension() string { return "json" }

func (JSONSaver) Save(bars []model.Bar, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := encodeJSON(f, bars, "  "); err != nil {
		return err
	}
	return f.Close()
}

// GzipJSONSaver writes bars as a gzip-compressed compact JSON array.
type GzipJSONSaver struct{}

func (GzipJSONSaver) Extension() string { return "json.gz" }

func (GzipJSONSaver) Save(bars []model.Bar, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	zw := gzip.NewWriter(f)
	if err := encodeJSON(zw, bars, ""); err != nil {
		zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return f.Close()
}

func encodeJSON(w io.Writer, bars []model.Bar, indent string) error {
	enc := json.NewEncoder(w)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if bars == nil {
		bars = []model.Bar{}
	}
	return enc.Encode(bars)
}
