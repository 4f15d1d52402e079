package saver

import (
	"github.com/parquet-go/parquet-go"

	"quote-history/internal/model"
)

// ParquetSaver writes bars as a Parquet file using the struct tags on model.Bar.
type ParquetSaver struct{}

func (ParquetSaver) Extension() string { return "parquet" }

func (ParquetSaver) Save(bars []model.Bar, path string) error {
	return parquet.WriteFile(path, bars)
}
