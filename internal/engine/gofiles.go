package engine

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/huangsam/cyclocsv/internal/contract"
	"github.com/huangsam/cyclocsv/schema"
)

// fileAnalyzeFunc computes the function metrics of a single Go file.
type fileAnalyzeFunc func(path string) (schema.FileResult, error)

// checkGoLanguages rejects language filters that exclude Go.
func checkGoLanguages(engine schema.Engine, languages []string) error {
	if len(languages) == 0 || slices.Contains(languages, "go") {
		return nil
	}
	return fmt.Errorf("%w %s: %s (only go is supported)", contract.ErrUnsupportedLanguage, engine, strings.Join(languages, ","))
}

// collectGoFiles lists the Go files to analyze in lexical walk order.
// When include is non-nil it is used instead of walking the target.
func collectGoFiles(req schema.AnalysisRequest, include []string) ([]string, error) {
	if include != nil {
		files := make([]string, 0, len(include))
		for _, f := range include {
			if strings.HasSuffix(f, ".go") && !contract.ShouldIgnore(relToTarget(req.TargetPath, f), req.Excludes) {
				files = append(files, f)
			}
		}
		return files, nil
	}

	var files []string
	err := filepath.WalkDir(req.TargetPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk path: %w", err)
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		if contract.ShouldIgnore(relToTarget(req.TargetPath, path), req.Excludes) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// relToTarget expresses path relative to the analysis target for exclude matching.
func relToTarget(target, path string) string {
	absTarget, err1 := filepath.Abs(target)
	absPath, err2 := filepath.Abs(path)
	if err1 != nil || err2 != nil {
		return path
	}
	rel, err := filepath.Rel(absTarget, absPath)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// analyzeFiles processes all files using a worker pool of the given size.
// Results keep the order of files regardless of scheduling.
func analyzeFiles(ctx context.Context, files []string, workers int, analyze fileAnalyzeFunc) ([]schema.FileResult, error) {
	type job struct {
		idx  int
		path string
	}

	results := make([]schema.FileResult, len(files))
	errs := make([]error, len(files))
	jobCh := make(chan job, len(files))
	var wg sync.WaitGroup

	// Start worker pool
	for range max(1, min(workers, len(files))) {
		wg.Go(func() {
			for j := range jobCh {
				if err := ctx.Err(); err != nil {
					errs[j.idx] = err
					continue
				}
				results[j.idx], errs[j.idx] = analyze(j.path)
			}
		})
	}

	// Send files to worker channel
	for i, f := range files {
		jobCh <- job{idx: i, path: f}
	}
	close(jobCh)

	// Wait for all workers to finish processing
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("failed to analyze %s: %w", files[i], err)
		}
	}
	return results, nil
}

// funcEndLines maps the byte offset of every function declaration and literal
// to the line its body ends on.
func funcEndLines(f *ast.File, fset *token.FileSet) map[int]int {
	ends := make(map[int]int)
	ast.Inspect(f, func(n ast.Node) bool {
		switch fn := n.(type) {
		case *ast.FuncDecl, *ast.FuncLit:
			ends[fset.Position(fn.Pos()).Offset] = fset.Position(fn.End()).Line
		}
		return true
	})
	return ends
}

// newFunctionMetric builds a metric from a start position and the end line lookup.
func newFunctionMetric(name string, complexity int, pos token.Position, ends map[int]int) schema.FunctionMetric {
	end, ok := ends[pos.Offset]
	if !ok || end < pos.Line {
		end = pos.Line
	}
	return schema.FunctionMetric{
		Name:       name,
		LongName:   name,
		Length:     end - pos.Line + 1,
		Complexity: complexity,
		StartLine:  pos.Line,
		EndLine:    end,
	}
}
