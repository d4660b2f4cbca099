package schema

// Custom string types for type safety.
type (
	// Engine names a delegated complexity analyzer.
	Engine string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string
)

// All engines supported.
const (
	LizardEngine   Engine = "lizard" // default
	GocycloEngine  Engine = "gocyclo"
	GocognitEngine Engine = "gocognit"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All run tracking backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Default values shared by the command line and the MCP server.
const (
	DefaultOutputPath = "complexity.csv"
	DefaultThreads    = 1
)

// Fixture sampling bounds.
const (
	FixtureMaxFileNumber = 1000
	FixtureMaxValue      = 40.0
	FixtureMaxCount      = 2000
	FixturePathFormat    = "/path/to/file_%d.txt"
)

// ValidEngines lists all valid engines.
var ValidEngines = map[Engine]struct{}{
	LizardEngine:   {},
	GocycloEngine:  {},
	GocognitEngine: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidFixtureOutputModes lists the output modes the fixture generator supports.
var ValidFixtureOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid run tracking backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
