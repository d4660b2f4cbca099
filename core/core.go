// Package core has the report and fixture pipelines of cyclocsv.
package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/cyclocsv/internal/contract"
	"github.com/huangsam/cyclocsv/internal/outwriter"
	"github.com/huangsam/cyclocsv/schema"
)

// ExecuteReport runs the complexity report: analyze, flatten, write and optionally track.
// Status lines are printed to out when cfg.Verbose is set. The store may be nil.
func ExecuteReport(ctx context.Context, cfg *contract.Config, analyzer contract.Analyzer, client contract.GitClient, store contract.RunStore, out io.Writer) error {
	req := cfg.Request()
	if req.Verbose {
		_, _ = fmt.Fprintf(out, "Analyzing code in %s...\n", req.TargetPath)
	}

	tracker := beginTracking(store, cfg)

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	rows, err := AnalyzeRows(ctx, req, analyzer, client, cwd)
	if err != nil {
		return err
	}

	if err := outwriter.NewOutWriter().WriteFunctionRows(req.OutputPath, cfg.Output, rows); err != nil {
		return err
	}
	tracker.finish(rows)

	if req.Verbose {
		_, _ = fmt.Fprintf(out, "Wrote %d functions to %s\n", len(rows), req.OutputPath)
		if cfg.Top > 0 {
			if err := outwriter.NewOutWriter().WriteTopFunctions(out, rows, cfg.Top, cfg.Width); err != nil {
				return fmt.Errorf("failed to render summary table: %w", err)
			}
		}
	}
	return nil
}

// ExecuteFixtures generates cfg.Count random rows and writes them to cfg.OutputFile.
func ExecuteFixtures(cfg *contract.FixtureConfig) error {
	rows := GenerateFixtures(NewFixtureRand(cfg), cfg.Count)
	return outwriter.NewOutWriter().WriteFixtureRows(cfg.OutputFile, cfg.Output, rows)
}

// runTracker records a single run in the store. A zero value is a no-op.
type runTracker struct {
	store contract.RunStore
	runID int64
}

// beginTracking starts a tracked run. Failures only produce a warning.
func beginTracking(store contract.RunStore, cfg *contract.Config) *runTracker {
	if store == nil {
		return &runTracker{}
	}
	configParams := map[string]any{
		"target":    cfg.TargetPath,
		"engine":    string(cfg.Engine),
		"languages": cfg.Languages,
		"excludes":  cfg.Excludes,
		"threads":   cfg.Threads,
		"modified":  cfg.ModifiedOnly,
		"output":    cfg.OutputFile,
		"format":    string(cfg.Output),
	}
	runID, err := store.BeginRun(time.Now(), configParams)
	if err != nil {
		contract.LogWarn("Run tracking initialization failed", err)
		return &runTracker{}
	}
	return &runTracker{store: store, runID: runID}
}

// finish records the rows and closes the run.
func (t *runTracker) finish(rows []schema.FunctionMetricRow) {
	if t.store == nil || t.runID <= 0 {
		return
	}
	if err := t.store.RecordFunctions(t.runID, rows); err != nil {
		contract.LogWarn(fmt.Sprintf("Run tracking failed to record functions for run %d", t.runID), err)
	}
	if err := t.store.EndRun(t.runID, time.Now(), len(rows)); err != nil {
		contract.LogWarn(fmt.Sprintf("Run tracking failed to end run %d", t.runID), err)
	}
}
