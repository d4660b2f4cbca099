package outwriter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/cyclocsv/internal/contract"
	"github.com/huangsam/cyclocsv/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writeTopFunctionsTable generates and writes the human-readable table of the most complex functions.
func writeTopFunctionsTable(writer io.Writer, rows []schema.FunctionMetricRow, n int, width int) error {
	top := schema.TopFunctions(rows, n)
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	table.Header([]string{"Rank", "File", "Function", "Line", "Length", "CCN", "Label"})

	// 2. Configure alignment to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	maxPath := GetMaxTablePathWidth(width)
	data := make([][]string, 0, len(top))
	for i, r := range top {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			truncatePath(r.File, maxPath),
			r.Function,
			strconv.Itoa(r.Line),
			strconv.Itoa(r.Length),
			strconv.Itoa(r.Complexity),
			contract.GetColorLabel(r.Complexity),
		})
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	total := 0
	for _, r := range rows {
		total += r.Complexity
	}
	avg := 0.0
	if len(rows) > 0 {
		avg = float64(total) / float64(len(rows))
	}
	if _, err := fmt.Fprintf(writer, "Showing top %d of %d functions (average complexity: %.2f)\n", len(top), len(rows), avg); err != nil {
		return err
	}
	return nil
}
