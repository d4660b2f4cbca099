package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/cyclocsv/internal/contract"
)

// writeWithFile handles the common pattern of creating a file, writing to it, and cleaning up.
// The file is truncated if it exists. Any failure is reported as a contract.IOError, and
// whatever was written before the failure stays on disk.
func writeWithFile(outputFile string, writer func(io.Writer) error) (err error) {
	file, err := os.Create(outputFile)
	if err != nil {
		return &contract.IOError{Op: "create", Path: outputFile, Err: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = &contract.IOError{Op: "close", Path: outputFile, Err: cerr}
		}
	}()

	if err := writer(file); err != nil {
		return &contract.IOError{Op: "write", Path: outputFile, Err: err}
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSV handles the common pattern of creating a CSV writer, writing data rows
// and surfacing the flush error. No header is written.
func writeCSV(w io.Writer, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	if err := writeRows(csvWriter); err != nil {
		return err
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
