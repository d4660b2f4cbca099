package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/huangsam/cyclocsv/schema"
)

// WriteFunctionRowsCSV writes file,function,length,complexity,line records to path.
func WriteFunctionRowsCSV(path string, rows []schema.FunctionMetricRow) error {
	return writeWithFile(path, func(w io.Writer) error {
		return EncodeFunctionRowsCSV(w, rows)
	})
}

// WriteFixtureRowsCSV writes path,value,count records to path.
func WriteFixtureRowsCSV(path string, rows []schema.FixtureRow) error {
	return writeWithFile(path, func(w io.Writer) error {
		return EncodeFixtureRowsCSV(w, rows)
	})
}

// WriteFunctionRowsJSON writes the rows to path as an indented JSON array.
func WriteFunctionRowsJSON(path string, rows []schema.FunctionMetricRow) error {
	if rows == nil {
		rows = []schema.FunctionMetricRow{}
	}
	return writeWithFile(path, func(w io.Writer) error {
		return writeJSON(w, rows)
	})
}

// EncodeFunctionRowsCSV streams headerless function rows to w.
func EncodeFunctionRowsCSV(w io.Writer, rows []schema.FunctionMetricRow) error {
	return writeCSV(w, func(cw *csv.Writer) error {
		for _, r := range rows {
			rec := []string{
				r.File,
				r.Function,
				strconv.Itoa(r.Length),
				strconv.Itoa(r.Complexity),
				strconv.Itoa(r.Line),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// EncodeFixtureRowsCSV streams headerless fixture rows to w.
// Values use the shortest decimal form that parses back to the same float.
func EncodeFixtureRowsCSV(w io.Writer, rows []schema.FixtureRow) error {
	return writeCSV(w, func(cw *csv.Writer) error {
		for _, r := range rows {
			rec := []string{
				r.Path,
				strconv.FormatFloat(r.Value, 'f', -1, 64),
				strconv.Itoa(r.Count),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
