// Package parquet provides data structures and functions for exporting cyclocsv
// rows to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"

	"github.com/huangsam/cyclocsv/schema"
	"github.com/parquet-go/parquet-go"
)

// FunctionRow is the Parquet layout of a schema.FunctionMetricRow.
type FunctionRow struct {
	// File is the source file identifier, relative to the working directory when possible
	File string `parquet:"file,snappy"`

	// Function is the function name as reported by the analyzer
	Function string `parquet:"function,snappy"`

	// Length is the line count of the function
	Length int32 `parquet:"length,snappy"`

	// Complexity is the complexity number reported by the analyzer
	Complexity int32 `parquet:"complexity,snappy"`

	// Line is the starting line of the function
	Line int32 `parquet:"line,snappy"`
}

// FixtureRow is the Parquet layout of a schema.FixtureRow.
type FixtureRow struct {
	Path  string  `parquet:"path,snappy"`
	Value float64 `parquet:"value,snappy"`
	Count int32   `parquet:"count,snappy"`
}

// WriteFunctionRows writes function metric rows as a Parquet stream to w.
func WriteFunctionRows(w io.Writer, rows []schema.FunctionMetricRow) error {
	data := make([]FunctionRow, len(rows))
	for i, r := range rows {
		data[i] = FunctionRow{
			File:       r.File,
			Function:   r.Function,
			Length:     int32(r.Length),
			Complexity: int32(r.Complexity),
			Line:       int32(r.Line),
		}
	}
	return writeRows(w, data)
}

// WriteFixtureRows writes fixture rows as a Parquet stream to w.
func WriteFixtureRows(w io.Writer, rows []schema.FixtureRow) error {
	data := make([]FixtureRow, len(rows))
	for i, r := range rows {
		data[i] = FixtureRow{Path: r.Path, Value: r.Value, Count: int32(r.Count)}
	}
	return writeRows(w, data)
}

// writeRows writes all records and closes the writer so the footer gets flushed.
// The schema is derived from the struct tags of T.
func writeRows[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet stream: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}
