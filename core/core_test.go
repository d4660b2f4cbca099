package core

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"

	"github.com/huangsam/cyclocsv/internal/contract"
	"github.com/huangsam/cyclocsv/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeAnalyzer returns canned results and records what it was asked to analyze.
type fakeAnalyzer struct {
	results []schema.FileResult
	err     error
	calls   int
	include []string
}

func (f *fakeAnalyzer) Name() schema.Engine { return "fake" }

func (f *fakeAnalyzer) Available() error { return nil }

func (f *fakeAnalyzer) Analyze(_ context.Context, _ schema.AnalysisRequest, include []string) ([]schema.FileResult, error) {
	f.calls++
	f.include = include
	return f.results, f.err
}

func sampleResults(root string) []schema.FileResult {
	return []schema.FileResult{
		{Path: filepath.Join(root, "src", "a.c"), Functions: []schema.FunctionMetric{
			{Name: "main", Length: 3, Complexity: 1, StartLine: 3, EndLine: 5},
			{Name: "add", Length: 12, Complexity: 4, StartLine: 7, EndLine: 18},
		}},
		{Path: "lib/b.py", Functions: []schema.FunctionMetric{
			{Name: "foo, bar", Length: 6, Complexity: 2, StartLine: 1, EndLine: 6},
		}},
		{Path: "lib/empty.py"},
	}
}

func TestExtractRows(t *testing.T) {
	root := t.TempDir()
	results := sampleResults(root)

	rows := ExtractRows(results, root)
	require.Len(t, rows, schema.CountFunctions(results))
	assert.Equal(t, []schema.FunctionMetricRow{
		{File: filepath.Join("src", "a.c"), Function: "main", Length: 3, Complexity: 1, Line: 3},
		{File: filepath.Join("src", "a.c"), Function: "add", Length: 12, Complexity: 4, Line: 7},
		{File: "lib/b.py", Function: "foo, bar", Length: 6, Complexity: 2, Line: 1},
	}, rows)
}

func TestExtractRowsEmpty(t *testing.T) {
	rows := ExtractRows(nil, "/work")
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestRelativize(t *testing.T) {
	root := t.TempDir()
	abs := filepath.Join(root, "pkg", "x.go")

	once := relativize(abs, root)
	assert.Equal(t, filepath.Join("pkg", "x.go"), once)
	assert.Equal(t, once, relativize(once, root), "relativization is idempotent")
	assert.Equal(t, "rel/y.go", relativize("rel/y.go", root))
	assert.Equal(t, abs, relativize(abs, ""))
}

func TestAnalyzeRows(t *testing.T) {
	root := t.TempDir()
	analyzer := &fakeAnalyzer{results: sampleResults(root)}

	rows, err := AnalyzeRows(context.Background(), schema.AnalysisRequest{TargetPath: root, Threads: 1}, analyzer, nil, root)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Nil(t, analyzer.include, "full analysis passes a nil include list")
}

func TestAnalyzeRowsError(t *testing.T) {
	analyzer := &fakeAnalyzer{err: errors.New("scan failed")}
	_, err := AnalyzeRows(context.Background(), schema.AnalysisRequest{TargetPath: "."}, analyzer, nil, "")
	assert.ErrorContains(t, err, "scan failed")
}

func TestAnalyzeRowsModifiedOnly(t *testing.T) {
	repo := t.TempDir()
	target := filepath.Join(repo, "src")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "sub"), 0o755))

	client := &contract.MockGitClient{}
	client.On("GetRepoRoot", mock.Anything, mock.Anything).Return(repo, nil)
	client.On("ListModifiedFiles", mock.Anything, mock.Anything).
		Return([]string{"src/a.go", "docs/readme.md", "src/sub/b.go", "srcfoo/c.go"}, nil)

	analyzer := &fakeAnalyzer{results: []schema.FileResult{}}
	req := schema.AnalysisRequest{TargetPath: target, Threads: 1, ModifiedOnly: true}
	rows, err := AnalyzeRows(context.Background(), req, analyzer, client, repo)
	require.NoError(t, err)
	assert.Empty(t, rows)

	assert.Equal(t, []string{
		filepath.Join(target, "a.go"),
		filepath.Join(target, "sub", "b.go"),
	}, analyzer.include)
	client.AssertExpectations(t)
}

func TestAnalyzeRowsModifiedOnlyNothingChanged(t *testing.T) {
	repo := t.TempDir()
	client := &contract.MockGitClient{}
	client.On("GetRepoRoot", mock.Anything, mock.Anything).Return(repo, nil)
	client.On("ListModifiedFiles", mock.Anything, mock.Anything).Return([]string{}, nil)

	analyzer := &fakeAnalyzer{}
	req := schema.AnalysisRequest{TargetPath: repo, Threads: 1, ModifiedOnly: true}
	rows, err := AnalyzeRows(context.Background(), req, analyzer, client, repo)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
	assert.Zero(t, analyzer.calls)
}

func TestAnalyzeRowsModifiedOnlyGitFailure(t *testing.T) {
	client := &contract.MockGitClient{}
	client.On("GetRepoRoot", mock.Anything, mock.Anything).Return("", errors.New("not a git repository"))

	req := schema.AnalysisRequest{TargetPath: t.TempDir(), Threads: 1, ModifiedOnly: true}
	_, err := AnalyzeRows(context.Background(), req, &fakeAnalyzer{}, client, "")
	assert.ErrorContains(t, err, "not a git repository")
}

func testConfig(t *testing.T, target string) *contract.Config {
	t.Helper()
	return &contract.Config{
		TargetPath: target,
		Threads:    1,
		OutputFile: filepath.Join(t.TempDir(), "complexity.csv"),
		Output:     schema.CSVOut,
		Engine:     schema.LizardEngine,
	}
}

func TestExecuteReport(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(t, root)
	cfg.Verbose = true

	store := &contract.MockRunStore{}
	store.On("BeginRun", mock.Anything, mock.Anything).Return(int64(7), nil)
	store.On("RecordFunctions", int64(7), mock.Anything).Return(nil)
	store.On("EndRun", int64(7), mock.Anything, 3).Return(nil)

	var out bytes.Buffer
	err := ExecuteReport(context.Background(), cfg, &fakeAnalyzer{results: sampleResults(root)}, nil, store, &out)
	require.NoError(t, err)
	store.AssertExpectations(t)

	assert.Equal(t, "Analyzing code in "+root+"...\nWrote 3 functions to "+cfg.OutputFile+"\n", out.String())

	f, err := os.Open(cfg.OutputFile)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"main", "add", "foo, bar"}, []string{records[0][1], records[1][1], records[2][1]})
	assert.Equal(t, "lib/b.py", records[2][0])
}

func TestExecuteReportQuiet(t *testing.T) {
	cfg := testConfig(t, t.TempDir())

	var out bytes.Buffer
	require.NoError(t, ExecuteReport(context.Background(), cfg, &fakeAnalyzer{}, nil, nil, &out))
	assert.Empty(t, out.String())

	info, err := os.Stat(cfg.OutputFile)
	require.NoError(t, err)
	assert.Zero(t, info.Size(), "zero functions produce an empty file")
}

func TestExecuteReportTopTable(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(t, root)
	cfg.Verbose = true
	cfg.Top = 1
	cfg.Width = 120

	var out bytes.Buffer
	require.NoError(t, ExecuteReport(context.Background(), cfg, &fakeAnalyzer{results: sampleResults(root)}, nil, nil, &out))
	assert.Contains(t, out.String(), "Showing top 1 of 3 functions")
}

func TestExecuteReportAnalyzerErrorWritesNothing(t *testing.T) {
	cfg := testConfig(t, t.TempDir())

	err := ExecuteReport(context.Background(), cfg, &fakeAnalyzer{err: errors.New("boom")}, nil, nil, &bytes.Buffer{})
	require.Error(t, err)
	_, statErr := os.Stat(cfg.OutputFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestExecuteReportTrackingFailureIsNotFatal(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(t, root)

	store := &contract.MockRunStore{}
	store.On("BeginRun", mock.Anything, mock.Anything).Return(int64(0), errors.New("db locked"))

	require.NoError(t, ExecuteReport(context.Background(), cfg, &fakeAnalyzer{results: sampleResults(root)}, nil, store, &bytes.Buffer{}))
	store.AssertNotCalled(t, "RecordFunctions", mock.Anything, mock.Anything)
}

var fixturePathPattern = regexp.MustCompile(`^/path/to/file_([0-9]+)\.txt$`)

func TestGenerateFixtures(t *testing.T) {
	rows := GenerateFixtures(rand.New(rand.NewPCG(1, 2)), 1000)
	require.Len(t, rows, 1000)

	for _, r := range rows {
		m := fixturePathPattern.FindStringSubmatch(r.Path)
		require.NotNil(t, m, r.Path)
		n, err := strconv.Atoi(m[1])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, schema.FixtureMaxFileNumber)
		assert.GreaterOrEqual(t, r.Value, 0.0)
		assert.LessOrEqual(t, r.Value, schema.FixtureMaxValue)
		assert.GreaterOrEqual(t, r.Count, 0)
		assert.LessOrEqual(t, r.Count, schema.FixtureMaxCount)
	}
}

func TestGenerateFixturesSeeded(t *testing.T) {
	cfg := &contract.FixtureConfig{Seeded: true, Seed: 42}
	a := GenerateFixtures(NewFixtureRand(cfg), 50)
	b := GenerateFixtures(NewFixtureRand(cfg), 50)
	assert.Equal(t, a, b)

	assert.Empty(t, GenerateFixtures(NewFixtureRand(cfg), 0))
}

func TestExecuteFixtures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.csv")
	cfg := &contract.FixtureConfig{Count: 25, OutputFile: path, Output: schema.CSVOut, Seeded: true, Seed: 7}
	require.NoError(t, ExecuteFixtures(cfg))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 25)

	want := GenerateFixtures(NewFixtureRand(cfg), 25)
	for i, rec := range records {
		value, err := strconv.ParseFloat(rec[1], 64)
		require.NoError(t, err)
		assert.Equal(t, want[i].Path, rec[0])
		assert.Equal(t, want[i].Value, value)
		assert.Equal(t, strconv.Itoa(want[i].Count), rec[2])
	}
}
