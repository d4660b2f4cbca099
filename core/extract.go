package core

import (
	"path/filepath"

	"github.com/huangsam/cyclocsv/schema"
)

// ExtractRows flattens analyzer results into one row per function, keeping file
// order then function order. Absolute file paths are made relative to cwd.
func ExtractRows(results []schema.FileResult, cwd string) []schema.FunctionMetricRow {
	rows := make([]schema.FunctionMetricRow, 0, schema.CountFunctions(results))
	for _, fr := range results {
		file := relativize(fr.Path, cwd)
		for _, fn := range fr.Functions {
			rows = append(rows, schema.FunctionMetricRow{
				File:       file,
				Function:   fn.Name,
				Length:     fn.Length,
				Complexity: fn.Complexity,
				Line:       fn.StartLine,
			})
		}
	}
	return rows
}

// relativize returns path relative to cwd when it is absolute. Relative paths
// and paths that cannot be expressed relative to cwd are returned unchanged.
func relativize(path, cwd string) string {
	if !filepath.IsAbs(path) || cwd == "" {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}
	return rel
}
