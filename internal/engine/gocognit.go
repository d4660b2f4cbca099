package engine

import (
	"context"
	"fmt"
	"go/parser"
	"go/token"

	"github.com/huangsam/cyclocsv/internal/contract"
	"github.com/huangsam/cyclocsv/schema"
	"github.com/uudashr/gocognit"
)

// GocognitAnalyzer reports cognitive complexity of Go functions with uudashr/gocognit.
// The value lands in the complexity column in place of the cyclomatic number.
type GocognitAnalyzer struct{}

var _ contract.Analyzer = &GocognitAnalyzer{} // Compile-time check

// NewGocognitAnalyzer creates a new gocognit analyzer.
func NewGocognitAnalyzer() *GocognitAnalyzer {
	return &GocognitAnalyzer{}
}

// Name implements the Analyzer interface.
func (a *GocognitAnalyzer) Name() schema.Engine {
	return schema.GocognitEngine
}

// Available implements the Analyzer interface. The library is linked in.
func (a *GocognitAnalyzer) Available() error {
	return nil
}

// Analyze implements the Analyzer interface.
func (a *GocognitAnalyzer) Analyze(ctx context.Context, req schema.AnalysisRequest, include []string) ([]schema.FileResult, error) {
	if err := checkGoLanguages(a.Name(), req.Languages); err != nil {
		return nil, err
	}
	files, err := collectGoFiles(req, include)
	if err != nil {
		return nil, err
	}
	return analyzeFiles(ctx, files, req.Threads, analyzeGocognitFile)
}

func analyzeGocognitFile(path string) (schema.FileResult, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return schema.FileResult{}, fmt.Errorf("failed to parse file: %w", err)
	}

	ends := funcEndLines(f, fset)
	stats := gocognit.ComplexityStats(f, fset, nil)
	functions := make([]schema.FunctionMetric, 0, len(stats))
	for _, stat := range stats {
		functions = append(functions, newFunctionMetric(stat.FuncName, stat.Complexity, stat.Pos, ends))
	}
	return schema.FileResult{Path: path, Functions: functions}, nil
}
