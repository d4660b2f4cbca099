package engine

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/cyclocsv/internal/contract"
	"github.com/huangsam/cyclocsv/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var goTestdata = filepath.Join("testdata", "gocode")

type metricCase struct {
	name       string
	complexity int
	start      int
	length     int
}

func assertMetrics(t *testing.T, want []metricCase, got []schema.FunctionMetric) {
	t.Helper()
	require.Len(t, got, len(want))
	for i, w := range want {
		assert.Equal(t, w.name, got[i].Name)
		assert.Equal(t, w.complexity, got[i].Complexity, w.name)
		assert.Equal(t, w.start, got[i].StartLine, w.name)
		assert.Equal(t, w.length, got[i].Length, w.name)
		assert.Equal(t, got[i].StartLine+got[i].Length-1, got[i].EndLine, w.name)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		engine schema.Engine
		want   schema.Engine
	}{
		{schema.LizardEngine, schema.LizardEngine},
		{"", schema.LizardEngine},
		{schema.GocycloEngine, schema.GocycloEngine},
		{schema.GocognitEngine, schema.GocognitEngine},
	}
	for _, tt := range tests {
		a, err := New(tt.engine)
		require.NoError(t, err)
		assert.Equal(t, tt.want, a.Name())
	}

	_, err := New("radon")
	assert.ErrorIs(t, err, contract.ErrUnsupportedEngine)
}

func TestCheckAvailable(t *testing.T) {
	a := &LizardAnalyzer{
		binary:   "lizard",
		lookPath: func(string) (string, error) { return "", errors.New("not found") },
	}
	err := CheckAvailable(a)
	var envErr *contract.EnvironmentError
	require.ErrorAs(t, err, &envErr)
	assert.Equal(t, "lizard", envErr.Capability)
	assert.Contains(t, err.Error(), "pip install lizard")

	a.lookPath = func(string) (string, error) { return "/usr/bin/lizard", nil }
	assert.NoError(t, CheckAvailable(a))
	assert.NoError(t, CheckAvailable(NewGocycloAnalyzer()))
}

func TestGocycloAnalyze(t *testing.T) {
	req := schema.AnalysisRequest{TargetPath: goTestdata, Threads: 4}
	results, err := NewGocycloAnalyzer().Analyze(context.Background(), req, nil)
	require.NoError(t, err)
	require.Len(t, results, 5)

	paths := make([]string, 0, len(results))
	for _, r := range results {
		paths = append(paths, filepath.ToSlash(r.Path))
	}
	assert.Equal(t, []string{
		"testdata/gocode/level1/counter.go",
		"testdata/gocode/level1/file1.go",
		"testdata/gocode/level1/level2/file3.go",
		"testdata/gocode/main.go",
		"testdata/gocode/special/my main.go",
	}, paths)

	assertMetrics(t, []metricCase{{"(*Counter).Add", 2, 7, 5}}, results[0].Functions)
	assertMetrics(t, []metricCase{
		{"NestedIf", 3, 3, 9},
		{"LoopWithCondition", 4, 13, 11},
	}, results[1].Functions)
	assertMetrics(t, []metricCase{
		{"NestedLoopsWithConditions", 5, 3, 13},
		{"SwitchWithLoops", 6, 17, 18},
	}, results[2].Functions)
	assertMetrics(t, []metricCase{
		{"BaseFunction", 1, 3, 3},
		{"SimpleCondition", 2, 7, 6},
	}, results[3].Functions)
	assertMetrics(t, []metricCase{
		{"simpleFunction", 1, 3, 3},
		{"complexFunction", 7, 7, 27},
	}, results[4].Functions)
}

func TestGocycloAnalyzeThreadsKeepOrder(t *testing.T) {
	single, err := NewGocycloAnalyzer().Analyze(context.Background(), schema.AnalysisRequest{TargetPath: goTestdata, Threads: 1}, nil)
	require.NoError(t, err)
	multi, err := NewGocycloAnalyzer().Analyze(context.Background(), schema.AnalysisRequest{TargetPath: goTestdata, Threads: 8}, nil)
	require.NoError(t, err)
	assert.Equal(t, single, multi)
}

func TestGocycloAnalyzeExcludes(t *testing.T) {
	req := schema.AnalysisRequest{TargetPath: goTestdata, Threads: 1, Excludes: []string{"level1/"}}
	results, err := NewGocycloAnalyzer().Analyze(context.Background(), req, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "main.go", filepath.Base(results[0].Path))
	assert.Equal(t, "my main.go", filepath.Base(results[1].Path))
}

func TestGocycloAnalyzeInclude(t *testing.T) {
	file1 := filepath.Join(goTestdata, "level1", "file1.go")
	req := schema.AnalysisRequest{TargetPath: goTestdata, Threads: 1}

	results, err := NewGocycloAnalyzer().Analyze(context.Background(), req, []string{file1, filepath.Join(goTestdata, "README.md")})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, file1, results[0].Path)

	results, err = NewGocycloAnalyzer().Analyze(context.Background(), req, []string{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGocycloAnalyzeLanguages(t *testing.T) {
	req := schema.AnalysisRequest{TargetPath: goTestdata, Threads: 1, Languages: []string{"python"}}
	_, err := NewGocycloAnalyzer().Analyze(context.Background(), req, nil)
	assert.ErrorIs(t, err, contract.ErrUnsupportedLanguage)

	req.Languages = []string{"python", "go"}
	_, err = NewGocycloAnalyzer().Analyze(context.Background(), req, nil)
	assert.NoError(t, err)
}

func TestGocycloAnalyzeMissingTarget(t *testing.T) {
	req := schema.AnalysisRequest{TargetPath: filepath.Join(goTestdata, "missing"), Threads: 1}
	_, err := NewGocycloAnalyzer().Analyze(context.Background(), req, nil)
	assert.Error(t, err)
}

func TestGocognitAnalyze(t *testing.T) {
	req := schema.AnalysisRequest{TargetPath: goTestdata, Threads: 2}
	results, err := NewGocognitAnalyzer().Analyze(context.Background(), req, nil)
	require.NoError(t, err)
	require.Len(t, results, 5)

	assertMetrics(t, []metricCase{
		{"NestedIf", 3, 3, 9},
		{"LoopWithCondition", 4, 13, 11},
	}, results[1].Functions)
	assertMetrics(t, []metricCase{
		{"BaseFunction", 0, 3, 3},
		{"SimpleCondition", 1, 7, 6},
	}, results[3].Functions)
}

func TestLizardArgs(t *testing.T) {
	req := schema.AnalysisRequest{
		TargetPath: "src",
		Languages:  []string{"python", "cpp"},
		Excludes:   []string{"./vendor/*"},
		Threads:    4,
	}
	assert.Equal(t, []string{"--csv", "-l", "python", "-l", "cpp", "-x", "./vendor/*", "-t", "4", "src"}, lizardArgs(req, nil))

	req = schema.AnalysisRequest{TargetPath: "src", Threads: 1}
	assert.Equal(t, []string{"--csv", "/repo/src/a.py", "/repo/src/b.py"}, lizardArgs(req, []string{"/repo/src/a.py", "/repo/src/b.py"}))
}

const lizardSample = `3,1,10,0,3,"main@3-5@./src/a.c","./src/a.c","main","main( void)",3,5
10,4,60,2,12,"add@7-18@./src/a.c","./src/a.c","add","add( int a , int b)",7,18
5,2,30,1,6,"run@1-6@./src/b.py","./src/b.py","run","run( self, x)",1,6
`

func TestParseLizardCSV(t *testing.T) {
	results, err := parseLizardCSV(strings.NewReader(lizardSample))
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "./src/a.c", results[0].Path)
	assert.Equal(t, []schema.FunctionMetric{
		{Name: "main", LongName: "main( void)", Length: 3, Complexity: 1, StartLine: 3, EndLine: 5},
		{Name: "add", LongName: "add( int a , int b)", Length: 12, Complexity: 4, StartLine: 7, EndLine: 18},
	}, results[0].Functions)
	assert.Equal(t, "./src/b.py", results[1].Path)
	assert.Equal(t, "run( self, x)", results[1].Functions[0].LongName)
}

func TestParseLizardCSVHeaderAndEmpty(t *testing.T) {
	header := "NLOC,CCN,token,PARAM,length,location,file,function,long_name,start,end\n"
	results, err := parseLizardCSV(strings.NewReader(header + lizardSample))
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = parseLizardCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestParseLizardCSVMalformed(t *testing.T) {
	_, err := parseLizardCSV(strings.NewReader("1,2,3\n"))
	assert.Error(t, err)

	_, err = parseLizardCSV(strings.NewReader(`3,x,10,0,3,"l","f","m","m()",3,5` + "\n"))
	assert.Error(t, err)
}

func TestLizardAnalyze(t *testing.T) {
	var gotArgs []string
	a := &LizardAnalyzer{
		binary: "lizard",
		run: func(_ context.Context, name string, args ...string) ([]byte, error) {
			gotArgs = append([]string{name}, args...)
			return []byte(lizardSample), nil
		},
	}

	results, err := a.Analyze(context.Background(), schema.AnalysisRequest{TargetPath: "src", Threads: 1}, nil)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, []string{"lizard", "--csv", "src"}, gotArgs)

	gotArgs = nil
	results, err = a.Analyze(context.Background(), schema.AnalysisRequest{TargetPath: "src", Threads: 1}, []string{})
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Nil(t, gotArgs)
}

func TestLizardAnalyzeRunError(t *testing.T) {
	a := &LizardAnalyzer{
		binary: "lizard",
		run: func(context.Context, string, ...string) ([]byte, error) {
			return nil, errors.New("boom")
		},
	}
	_, err := a.Analyze(context.Background(), schema.AnalysisRequest{TargetPath: "src", Threads: 1}, nil)
	assert.ErrorContains(t, err, "boom")
}
