// Package schema has the models, enums and constants shared by all parts of cyclocsv.
package schema

import "slices"

// AnalysisRequest describes a single complexity analysis invocation.
// It is built once from validated command-line input and never mutated afterwards.
type AnalysisRequest struct {
	TargetPath   string   // Path handed to the analyzer (file or directory)
	Languages    []string // Language filters in the order given; empty means all supported
	Threads      int      // Worker count requested from the analyzer
	Excludes     []string // Glob patterns to skip, in the order given
	ModifiedOnly bool     // Restrict analysis to files with uncommitted changes
	OutputPath   string   // Destination of the serialized rows
	Verbose      bool     // Print status lines to stdout
}

// Clone returns a deep copy of the request.
func (r AnalysisRequest) Clone() AnalysisRequest {
	clone := r
	clone.Languages = slices.Clone(r.Languages)
	clone.Excludes = slices.Clone(r.Excludes)
	return clone
}

// FunctionMetric is a single function as reported by an analyzer.
type FunctionMetric struct {
	Name       string `json:"name"`      // Short name, e.g. "Parse" or "(*Reader).Read"
	LongName   string `json:"long_name"` // Name including signature when the analyzer provides one
	Length     int    `json:"length"`    // Line count of the function body
	Complexity int    `json:"complexity"`
	StartLine  int    `json:"start_line"`
	EndLine    int    `json:"end_line"`
}

// FileResult groups the functions an analyzer reported for one source file.
type FileResult struct {
	Path      string           `json:"path"`
	Functions []FunctionMetric `json:"functions"`
}

// FunctionMetricRow is one flattened output record.
type FunctionMetricRow struct {
	File       string `json:"file"`
	Function   string `json:"function"`
	Length     int    `json:"length"`
	Complexity int    `json:"complexity"`
	Line       int    `json:"line"`
}

// FixtureRow is one randomly generated fixture record.
type FixtureRow struct {
	Path  string  `json:"path"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// CountFunctions returns the total number of functions across all file results.
func CountFunctions(results []FileResult) int {
	total := 0
	for _, r := range results {
		total += len(r.Functions)
	}
	return total
}
