package schema

import "slices"

// Complexity label constants.
const (
	CriticalValue = "Critical"
	HighValue     = "High"
	ModerateValue = "Moderate"
	LowValue      = "Low"
)

// ComplexityLabel buckets a cyclomatic complexity value using the usual
// 10/20/50 thresholds.
func ComplexityLabel(complexity int) string {
	switch {
	case complexity > 50:
		return CriticalValue
	case complexity > 20:
		return HighValue
	case complexity > 10:
		return ModerateValue
	default:
		return LowValue
	}
}

// TopFunctions returns up to n rows ordered by descending complexity.
// Ties keep their original relative order. The input slice is not modified.
func TopFunctions(rows []FunctionMetricRow, n int) []FunctionMetricRow {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b FunctionMetricRow) int {
		return b.Complexity - a.Complexity
	})
	if n > 0 && n < len(sorted) {
		return sorted[:n]
	}
	return sorted
}
