package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/huangsam/cyclocsv/internal/contract"
	"github.com/huangsam/cyclocsv/schema"
)

// AnalyzeRows runs the analyzer for the request and flattens its results into rows.
// With ModifiedOnly set, only files with uncommitted changes under the target are analyzed.
func AnalyzeRows(ctx context.Context, req schema.AnalysisRequest, analyzer contract.Analyzer, client contract.GitClient, cwd string) ([]schema.FunctionMetricRow, error) {
	var include []string
	if req.ModifiedOnly {
		files, err := resolveModifiedFiles(ctx, client, req.TargetPath)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return []schema.FunctionMetricRow{}, nil
		}
		include = files
	}

	results, err := analyzer.Analyze(ctx, req, include)
	if err != nil {
		return nil, fmt.Errorf("%s analysis failed: %w", analyzer.Name(), err)
	}
	return ExtractRows(results, cwd), nil
}

// resolveModifiedFiles lists files under target with uncommitted changes as absolute paths.
// Paths keep the target's spelling even when the repository root is reached through a symlink.
func resolveModifiedFiles(ctx context.Context, client contract.GitClient, target string) ([]string, error) {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve target path: %w", err)
	}
	realTarget := absTarget
	if resolved, err := filepath.EvalSymlinks(absTarget); err == nil {
		realTarget = resolved
	}

	contextDir := realTarget
	if info, err := os.Stat(realTarget); err == nil && !info.IsDir() {
		contextDir = filepath.Dir(realTarget)
	}
	repoRoot, err := client.GetRepoRoot(ctx, contextDir)
	if err != nil {
		return nil, fmt.Errorf("failed to find repository for %s: %w", target, err)
	}
	if resolved, err := filepath.EvalSymlinks(repoRoot); err == nil {
		repoRoot = resolved
	}

	modified, err := client.ListModifiedFiles(ctx, repoRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to list modified files: %w", err)
	}

	include := []string{}
	for _, f := range modified {
		abs := filepath.Join(repoRoot, filepath.FromSlash(f))
		if !contract.IsWithin(realTarget, abs) {
			continue
		}
		rel, err := filepath.Rel(realTarget, abs)
		if err != nil {
			continue
		}
		include = append(include, filepath.Join(absTarget, rel))
	}
	return include, nil
}
