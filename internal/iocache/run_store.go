package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/huangsam/cyclocsv/internal/contract"
	"github.com/huangsam/cyclocsv/schema"

	_ "github.com/go-sql-driver/mysql"  // mysql driver
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	_ "modernc.org/sqlite"             // sqlite driver
)

// Table names for run tracking.
const (
	runsTable            = "cyclocsv_runs"
	functionMetricsTable = "cyclocsv_function_metrics"
)

// RunStoreImpl implements the RunStore interface.
type RunStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend

	mu     sync.Mutex
	starts map[int64]time.Time // Start times of runs begun by this store
}

var _ contract.RunStore = &RunStoreImpl{} // Compile-time check

// NewRunStore creates a new RunStore with the specified backend and migrates its schema.
// An empty backend disables tracking and returns a nil store.
func NewRunStore(backend schema.DatabaseBackend, connStr string) (contract.RunStore, error) {
	if backend == "" {
		return nil, nil
	}
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &RunStoreImpl{backend: backend}, nil
	}

	db, err := openDatabase(backend, connStr)
	if err != nil {
		return nil, err
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connectionHint(backend))
	}

	if err := migrateUp(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create run tables: %w", err)
	}

	return &RunStoreImpl{
		db:      db,
		backend: backend,
		starts:  make(map[int64]time.Time),
	}, nil
}

// openDatabase opens the database/sql handle for a backend.
func openDatabase(backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetRunsDBFilePath()
		}
		db, err := sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
		return db, nil

	case schema.MySQLBackend:
		db, err := sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}
		return db, nil

	case schema.PostgreSQLBackend:
		db, err := sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=... dbname=...", err)
		}
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}
}

func connectionHint(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
	case schema.PostgreSQLBackend:
		return "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
	default:
		return "Verify the database file is accessible."
	}
}

// BeginRun creates a new run and returns its unique ID.
func (rs *RunStoreImpl) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	// Skip for NoneBackend
	if rs.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(runsTable, rs.backend)

	var runID int64
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES ($1, $2) RETURNING run_id`, quotedTableName)
		err = rs.db.QueryRow(query, startTime, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (?, ?)`, quotedTableName)
		var result sql.Result
		result, err = rs.db.Exec(query, formatTime(startTime, rs.backend), string(configJSON))
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	rs.mu.Lock()
	rs.starts[runID] = startTime
	rs.mu.Unlock()
	return runID, nil
}

// RecordFunctions stores the rows of a run in a single transaction.
func (rs *RunStoreImpl) RecordFunctions(runID int64, rows []schema.FunctionMetricRow) error {
	if rs.db == nil || len(rows) == 0 {
		return nil
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (run_id, row_index, file_path, function_name, length, complexity, start_line) VALUES (%s)`,
		quoteTableName(functionMetricsTable, rs.backend), placeholders(rs.backend, 7),
	)

	tx, err := rs.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	stmt, err := tx.Prepare(query)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, r := range rows {
		if _, err := stmt.Exec(runID, i, r.File, r.Function, r.Length, r.Complexity, r.Line); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert function metrics for %s: %w", r.File, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit function metrics: %w", err)
	}
	return nil
}

// EndRun updates the run with completion data.
func (rs *RunStoreImpl) EndRun(runID int64, endTime time.Time, totalFunctions int) error {
	if rs.db == nil {
		return nil
	}

	rs.mu.Lock()
	startTime, ok := rs.starts[runID]
	delete(rs.starts, runID)
	rs.mu.Unlock()
	if !ok {
		return fmt.Errorf("run %d was not started by this store", runID)
	}
	durationMs := endTime.Sub(startTime).Milliseconds()

	quotedTableName := quoteTableName(runsTable, rs.backend)
	var query string
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`UPDATE %s SET end_time = $1, run_duration_ms = $2, total_functions = $3 WHERE run_id = $4`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, total_functions = ? WHERE run_id = ?`, quotedTableName)
	}

	if _, err := rs.db.Exec(query, formatTime(endTime, rs.backend), durationMs, totalFunctions, runID); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (rs *RunStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}

// quoteTableName quotes a table name for the backend's SQL dialect.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("\"%s\"", name)
	}
}

// placeholders returns n bind parameters in the backend's syntax.
func placeholders(backend schema.DatabaseBackend, n int) string {
	params := make([]string, n)
	for i := range params {
		if backend == schema.PostgreSQLBackend {
			params[i] = fmt.Sprintf("$%d", i+1)
		} else {
			params[i] = "?"
		}
	}
	return strings.Join(params, ", ")
}

// formatTime stores SQLite times as RFC3339 text; other backends take native values.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.Format(time.RFC3339Nano)
	default:
		return t
	}
}
