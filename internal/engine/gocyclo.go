package engine

import (
	"context"
	"fmt"
	"go/parser"
	"go/token"

	"github.com/fzipp/gocyclo"
	"github.com/huangsam/cyclocsv/internal/contract"
	"github.com/huangsam/cyclocsv/schema"
)

// GocycloAnalyzer computes cyclomatic complexity of Go functions with fzipp/gocyclo.
type GocycloAnalyzer struct{}

var _ contract.Analyzer = &GocycloAnalyzer{} // Compile-time check

// NewGocycloAnalyzer creates a new gocyclo analyzer.
func NewGocycloAnalyzer() *GocycloAnalyzer {
	return &GocycloAnalyzer{}
}

// Name implements the Analyzer interface.
func (a *GocycloAnalyzer) Name() schema.Engine {
	return schema.GocycloEngine
}

// Available implements the Analyzer interface. The library is linked in.
func (a *GocycloAnalyzer) Available() error {
	return nil
}

// Analyze implements the Analyzer interface.
func (a *GocycloAnalyzer) Analyze(ctx context.Context, req schema.AnalysisRequest, include []string) ([]schema.FileResult, error) {
	if err := checkGoLanguages(a.Name(), req.Languages); err != nil {
		return nil, err
	}
	files, err := collectGoFiles(req, include)
	if err != nil {
		return nil, err
	}
	return analyzeFiles(ctx, files, req.Threads, analyzeGocycloFile)
}

func analyzeGocycloFile(path string) (schema.FileResult, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return schema.FileResult{}, fmt.Errorf("failed to parse file: %w", err)
	}

	ends := funcEndLines(f, fset)
	stats := gocyclo.AnalyzeASTFile(f, fset, nil)
	functions := make([]schema.FunctionMetric, 0, len(stats))
	for _, stat := range stats {
		functions = append(functions, newFunctionMetric(stat.FuncName, stat.Complexity, stat.Pos, ends))
	}
	return schema.FileResult{Path: path, Functions: functions}, nil
}
