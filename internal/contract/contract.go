// Package contract provides interfaces and shared utilities for cyclocsv's internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/cyclocsv/schema"
)

// Analyzer is the delegated complexity analysis capability.
// Implementations compute per-function metrics; callers only flatten and serialize them.
type Analyzer interface {
	// Name returns the engine identifier.
	Name() schema.Engine

	// Available reports whether the analyzer can run in this environment.
	Available() error

	// Analyze returns one FileResult per source file in the order the analyzer yields them.
	// When include is non-nil only those files are analyzed instead of walking req.TargetPath.
	Analyze(ctx context.Context, req schema.AnalysisRequest, include []string) ([]schema.FileResult, error)
}

// GitClient defines the Git operations needed to resolve the modified-only file set.
// This allows the filtering logic to be tested without a real git executable.
type GitClient interface {
	// Run executes a git command and returns its output.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// ListModifiedFiles returns repo-relative paths of files with uncommitted changes
	// (staged, unstaged or untracked). Deleted files are not included.
	ListModifiedFiles(ctx context.Context, repoPath string) ([]string, error)
}

// RunStore defines the interface for tracking analysis runs and the rows they produced.
type RunStore interface {
	// BeginRun creates a new run and returns its unique ID.
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// RecordFunctions stores the extracted rows of a run.
	RecordFunctions(runID int64, rows []schema.FunctionMetricRow) error

	// EndRun updates the run with completion data.
	EndRun(runID int64, endTime time.Time, totalFunctions int) error

	// Close closes the underlying connection.
	Close() error
}
