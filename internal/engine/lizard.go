package engine

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/huangsam/cyclocsv/internal/contract"
	"github.com/huangsam/cyclocsv/schema"
)

const lizardBinary = "lizard"

// Column positions of lizard's --csv output.
const (
	lizardColNLOC = iota
	lizardColCCN
	lizardColToken
	lizardColParam
	lizardColLength
	lizardColLocation
	lizardColFile
	lizardColFunction
	lizardColLongName
	lizardColStart
	lizardColEnd
	lizardColumns
)

// commandRunner executes a program and returns its stdout.
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// LizardAnalyzer delegates analysis to the lizard command-line tool.
type LizardAnalyzer struct {
	binary   string
	lookPath func(string) (string, error)
	run      commandRunner
}

var _ contract.Analyzer = &LizardAnalyzer{} // Compile-time check

// NewLizardAnalyzer creates an analyzer that runs lizard from PATH.
func NewLizardAnalyzer() *LizardAnalyzer {
	return &LizardAnalyzer{
		binary:   lizardBinary,
		lookPath: exec.LookPath,
		run:      runCommand,
	}
}

// Name implements the Analyzer interface.
func (a *LizardAnalyzer) Name() schema.Engine {
	return schema.LizardEngine
}

// Available implements the Analyzer interface.
func (a *LizardAnalyzer) Available() error {
	if _, err := a.lookPath(a.binary); err != nil {
		return fmt.Errorf("%s executable not found in PATH (install with 'pip install lizard'): %w", a.binary, err)
	}
	return nil
}

// Analyze implements the Analyzer interface.
func (a *LizardAnalyzer) Analyze(ctx context.Context, req schema.AnalysisRequest, include []string) ([]schema.FileResult, error) {
	if include != nil && len(include) == 0 {
		return []schema.FileResult{}, nil
	}
	out, err := a.run(ctx, a.binary, lizardArgs(req, include)...)
	if err != nil {
		return nil, err
	}
	return parseLizardCSV(bytes.NewReader(out))
}

// lizardArgs translates a request into lizard command-line arguments.
func lizardArgs(req schema.AnalysisRequest, include []string) []string {
	args := []string{"--csv"}
	for _, lang := range req.Languages {
		args = append(args, "-l", lang)
	}
	for _, pattern := range req.Excludes {
		args = append(args, "-x", pattern)
	}
	if req.Threads > 1 {
		args = append(args, "-t", strconv.Itoa(req.Threads))
	}
	if include != nil {
		return append(args, include...)
	}
	return append(args, req.TargetPath)
}

// runCommand runs the program and returns stdout. Exit status 1 with output is
// lizard reporting threshold warnings, which still carries a full report.
func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 && len(out) > 0 {
			return out, nil
		}
		return nil, fmt.Errorf("%s %s failed: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

// parseLizardCSV groups lizard's per-function CSV rows by file, keeping the
// order in which lizard reported them.
func parseLizardCSV(r io.Reader) ([]schema.FileResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	results := []schema.FileResult{}
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read lizard output: %w", err)
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "NLOC") {
			continue
		}
		if len(record) < lizardColumns {
			return nil, fmt.Errorf("lizard output line %d has %d columns, expected %d", line, len(record), lizardColumns)
		}

		metric, err := parseLizardRecord(record)
		if err != nil {
			return nil, fmt.Errorf("lizard output line %d: %w", line, err)
		}
		file := record[lizardColFile]
		if n := len(results); n > 0 && results[n-1].Path == file {
			results[n-1].Functions = append(results[n-1].Functions, metric)
			continue
		}
		results = append(results, schema.FileResult{Path: file, Functions: []schema.FunctionMetric{metric}})
	}
	return results, nil
}

func parseLizardRecord(record []string) (schema.FunctionMetric, error) {
	ints := make(map[int]int, 4)
	for _, col := range []int{lizardColCCN, lizardColLength, lizardColStart, lizardColEnd} {
		v, err := strconv.Atoi(strings.TrimSpace(record[col]))
		if err != nil {
			return schema.FunctionMetric{}, fmt.Errorf("invalid integer %q: %w", record[col], err)
		}
		ints[col] = v
	}
	return schema.FunctionMetric{
		Name:       record[lizardColFunction],
		LongName:   record[lizardColLongName],
		Length:     ints[lizardColLength],
		Complexity: ints[lizardColCCN],
		StartLine:  ints[lizardColStart],
		EndLine:    ints[lizardColEnd],
	}, nil
}
