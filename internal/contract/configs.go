package contract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/huangsam/cyclocsv/schema"
)

// Config holds the final, validated configuration of the complexity reporter.
type Config struct {
	TargetPath   string
	Languages    []string
	Threads      int
	Excludes     []string
	ModifiedOnly bool
	OutputFile   string
	Verbose      bool

	Engine schema.Engine
	Output schema.OutputMode
	Top    int
	Width  int // Terminal width override (0 = auto-detect)

	AnalysisBackend   schema.DatabaseBackend
	AnalysisDBConnect string // Please use env var as this is plaintext

	UseColors bool
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	TargetPathStr string

	Language          []string `mapstructure:"language"`
	Threads           int      `mapstructure:"threads"`
	Modified          bool     `mapstructure:"modified"`
	Output            string   `mapstructure:"output"`
	Exclude           []string `mapstructure:"exclude"`
	Verbose           bool     `mapstructure:"verbose"`
	Engine            string   `mapstructure:"engine"`
	Format            string   `mapstructure:"format"`
	Top               int      `mapstructure:"top"`
	Width             int      `mapstructure:"width"`
	Color             string   `mapstructure:"color"`
	AnalysisBackend   string   `mapstructure:"analysis-backend"`
	AnalysisDBConnect string   `mapstructure:"analysis-db-connect"`
}

// Request builds the immutable analysis request from the config.
func (c *Config) Request() schema.AnalysisRequest {
	req := schema.AnalysisRequest{
		TargetPath:   c.TargetPath,
		Languages:    c.Languages,
		Threads:      c.Threads,
		Excludes:     c.Excludes,
		ModifiedOnly: c.ModifiedOnly,
		OutputPath:   c.OutputFile,
		Verbose:      c.Verbose,
	}
	return req.Clone()
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct. Every failure is a UsageError.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return &UsageError{Err: err}
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return &UsageError{Err: err}
	}
	return nil
}

// validateSimpleInputs processes and validates the request-shaping fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Target path (existence is left to the analyzer) ---
	if strings.TrimSpace(input.TargetPathStr) == "" {
		return ErrMissingTarget
	}
	cfg.TargetPath = input.TargetPathStr

	// --- 1. Ordered, repeatable options ---
	cfg.Languages = compactStrings(input.Language)
	cfg.Excludes = compactStrings(input.Exclude)
	cfg.ModifiedOnly = input.Modified
	cfg.Verbose = input.Verbose
	cfg.Width = input.Width

	// --- 2. Threads Validation ---
	if input.Threads <= 0 {
		return fmt.Errorf("threads must be greater than 0 (received %d)", input.Threads)
	}
	cfg.Threads = input.Threads

	// --- 3. Output Validation ---
	cfg.OutputFile = input.Output
	if cfg.OutputFile == "" {
		cfg.OutputFile = schema.DefaultOutputPath
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Format))
	if cfg.Output == "" {
		cfg.Output = schema.CSVOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be csv, json, parquet", input.Format)
	}

	// --- 4. Engine Validation ---
	cfg.Engine = schema.Engine(strings.ToLower(input.Engine))
	if cfg.Engine == "" {
		cfg.Engine = schema.LizardEngine
	}
	if _, ok := schema.ValidEngines[cfg.Engine]; !ok {
		return fmt.Errorf("%w '%s'. must be lizard, gocyclo, gocognit", ErrUnsupportedEngine, input.Engine)
	}

	// --- 5. Presentation ---
	if input.Top < 0 {
		return fmt.Errorf("top cannot be negative (received %d)", input.Top)
	}
	cfg.Top = input.Top

	colorStr := input.Color
	if colorStr == "" {
		colorStr = "yes"
	}
	colors, err := ParseBoolString(colorStr)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("analysis-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("analysis-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the optional run tracking backend.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.AnalysisBackend = schema.DatabaseBackend(strings.ToLower(input.AnalysisBackend))
	if cfg.AnalysisBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.AnalysisBackend]; !ok {
		return fmt.Errorf("invalid analysis backend '%s'. must be sqlite, mysql, postgresql, none", input.AnalysisBackend)
	}
	cfg.AnalysisDBConnect = input.AnalysisDBConnect
	return ValidateDatabaseConnectionString(cfg.AnalysisBackend, cfg.AnalysisDBConnect)
}

// compactStrings trims entries and drops empty ones while keeping order.
func compactStrings(values []string) []string {
	var out []string
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// FixtureConfig holds the validated configuration of the fixture generator.
type FixtureConfig struct {
	Count      int
	OutputFile string
	Output     schema.OutputMode
	Seeded     bool
	Seed       uint64
}

// FixtureRawInput holds the raw fixture generator inputs.
type FixtureRawInput struct {
	// These are set manually from positional args, so no tag
	CountStr   string
	OutputFile string

	Seed   string `mapstructure:"seed"`
	Format string `mapstructure:"format"`
}

// ProcessFixtureInput validates the fixture generator inputs. Every failure is a UsageError.
func ProcessFixtureInput(cfg *FixtureConfig, input *FixtureRawInput) error {
	count, err := strconv.Atoi(strings.TrimSpace(input.CountStr))
	if err != nil {
		return NewUsageError("invalid row count %q: %w", input.CountStr, err)
	}
	if count < 0 {
		return NewUsageError("row count cannot be negative (received %d)", count)
	}
	cfg.Count = count

	if strings.TrimSpace(input.OutputFile) == "" {
		return NewUsageError("output file is required")
	}
	cfg.OutputFile = input.OutputFile

	cfg.Output = schema.OutputMode(strings.ToLower(input.Format))
	if cfg.Output == "" {
		cfg.Output = schema.CSVOut
	}
	if _, ok := schema.ValidFixtureOutputModes[cfg.Output]; !ok {
		return NewUsageError("invalid output format '%s'. must be csv, parquet", input.Format)
	}

	if input.Seed != "" {
		seed, err := strconv.ParseUint(input.Seed, 10, 64)
		if err != nil {
			return NewUsageError("invalid seed %q: %w", input.Seed, err)
		}
		cfg.Seeded = true
		cfg.Seed = seed
	}

	return nil
}
