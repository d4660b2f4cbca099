// Package outwriter has output and writer logic.
package outwriter

import (
	"io"

	"github.com/huangsam/cyclocsv/internal/parquet"
	"github.com/huangsam/cyclocsv/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteFunctionRows writes function rows to path in the given format.
// The file is created or truncated; rows are written without a header.
func (ow *OutWriter) WriteFunctionRows(path string, format schema.OutputMode, rows []schema.FunctionMetricRow) error {
	switch format {
	case schema.JSONOut:
		return WriteFunctionRowsJSON(path, rows)
	case schema.ParquetOut:
		return writeWithFile(path, func(w io.Writer) error {
			return parquet.WriteFunctionRows(w, rows)
		})
	default:
		return WriteFunctionRowsCSV(path, rows)
	}
}

// WriteFixtureRows writes fixture rows to path in the given format.
func (ow *OutWriter) WriteFixtureRows(path string, format schema.OutputMode, rows []schema.FixtureRow) error {
	switch format {
	case schema.ParquetOut:
		return writeWithFile(path, func(w io.Writer) error {
			return parquet.WriteFixtureRows(w, rows)
		})
	default:
		return WriteFixtureRowsCSV(path, rows)
	}
}

// WriteTopFunctions prints a table of the n most complex functions to w.
func (ow *OutWriter) WriteTopFunctions(w io.Writer, rows []schema.FunctionMetricRow, n int, width int) error {
	return writeTopFunctionsTable(w, rows, n, width)
}
