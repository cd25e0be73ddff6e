// Package history provides SQLite-based storage for discovery run history.
package history

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/sha3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/prospectscan/prospectscan/internal/model"
)

// dbFileName is the name of the SQLite database file inside the history directory.
const dbFileName = "prospectscan.db"

// RunDB provides SQLite-based storage for rendered discovery runs.
//
// Runs are grouped by label. Rendering the same discovery target repeatedly
// under one label builds up a history that the compare command reads to show
// how signal volume and scores move between snapshots.
type RunDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures the database connection.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool
	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a SQLite database in the specified directory.
func Open(dbDir string, opts Options) (*RunDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if opts.CreateIfNotExists {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	} else {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		}
	}

	dsn := dbPath + "?mode=rwc"
	if !opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	runDB := &RunDB{
		db:     db,
		dbPath: dbPath,
	}

	if err := runDB.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return runDB, nil
}

// Close closes the database connection.
func (r *RunDB) Close() error {
	return r.db.Close()
}

// Path returns the filesystem path of the database file.
func (r *RunDB) Path() string {
	return r.dbPath
}

// createTables creates the necessary database tables.
func (r *RunDB) createTables() error {
	schema := `
	-- Discovery runs table stores one row per rendered snapshot
	CREATE TABLE IF NOT EXISTS discovery_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		label TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		company_count INTEGER NOT NULL DEFAULT 0,
		reported_signals INTEGER NOT NULL DEFAULT 0,
		detected_signals INTEGER NOT NULL DEFAULT 0,
		top_score REAL NOT NULL DEFAULT 0,
		result_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_label ON discovery_runs(label);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON discovery_runs(timestamp);
	CREATE INDEX IF NOT EXISTS idx_runs_fingerprint ON discovery_runs(fingerprint);
	`

	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// Run represents a stored discovery run.
type Run struct {
	// ID is the database row ID (zero until saved).
	ID int64
	// Label groups runs of the same discovery target.
	Label string
	// Fingerprint is the hex SHA3-256 digest of the raw input document.
	Fingerprint string
	// Timestamp is when the run was stored.
	Timestamp time.Time
	// CompanyCount is the number of companies in the result.
	CompanyCount int
	// ReportedSignals is the signal count reported by the enrichment API.
	ReportedSignals int
	// DetectedSignals is the number of signals attached to companies.
	DetectedSignals int
	// TopScore is the highest company score in the result.
	TopScore float64
	// Result is the decoded discovery result.
	Result *model.Result
}

// NewRun builds a Run from a raw input document and its decoded result.
// The counters are computed once here so that history queries can read them
// without touching the payload.
func NewRun(label string, raw []byte, result *model.Result) *Run {
	return &Run{
		Label:           label,
		Fingerprint:     Fingerprint(raw),
		CompanyCount:    result.CompanyCount(),
		ReportedSignals: result.ReportedSignalCount(),
		DetectedSignals: result.DetectedSignalCount(),
		TopScore:        result.TopScore(),
		Result:          result,
	}
}

// Fingerprint returns the hex-encoded SHA3-256 digest of a raw input
// document. Identical snapshots always map to the same fingerprint.
func Fingerprint(raw []byte) string {
	hash := sha3.Sum256(raw)
	return hex.EncodeToString(hash[:])
}

// RunMetadata contains summary information about a stored run without the
// full result payload.
type RunMetadata struct {
	// ID is the database row ID of the run.
	ID int64 `json:"id"`
	// Label groups runs of the same discovery target.
	Label string `json:"label"`
	// Fingerprint is the hex SHA3-256 digest of the raw input document.
	Fingerprint string `json:"fingerprint"`
	// Timestamp is when the run was stored.
	Timestamp time.Time `json:"timestamp"`
	// CompanyCount is the number of companies in the result.
	CompanyCount int `json:"company_count"`
	// ReportedSignals is the signal count reported by the enrichment API.
	ReportedSignals int `json:"reported_signals"`
	// DetectedSignals is the number of signals attached to companies.
	DetectedSignals int `json:"detected_signals"`
	// TopScore is the highest company score in the result.
	TopScore float64 `json:"top_score"`
}

// SaveRun stores a discovery run and returns its database row ID.
// The run's ID field is updated in place.
func (r *RunDB) SaveRun(ctx context.Context, run *Run) (int64, error) {
	if run.Result == nil {
		return 0, fmt.Errorf("run has no result to store")
	}

	resultJSON, err := json.Marshal(run.Result)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal result: %w", err)
	}

	query := `
	INSERT INTO discovery_runs (
		label, fingerprint, company_count, reported_signals,
		detected_signals, top_score, result_json
	) VALUES (?, ?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		run.Label,
		run.Fingerprint,
		run.CompanyCount,
		run.ReportedSignals,
		run.DetectedSignals,
		run.TopScore,
		string(resultJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	run.ID = id

	return id, nil
}

// GetRunByID retrieves a single run by its database row ID.
// Returns nil if no run with that ID exists.
func (r *RunDB) GetRunByID(ctx context.Context, id int64) (*Run, error) {
	query := `
	SELECT id, label, fingerprint, timestamp, company_count,
	       reported_signals, detected_signals, top_score, result_json
	FROM discovery_runs
	WHERE id = ?`

	var (
		run        Run
		timestamp  string
		resultJSON string
	)

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&run.ID,
		&run.Label,
		&run.Fingerprint,
		&timestamp,
		&run.CompanyCount,
		&run.ReportedSignals,
		&run.DetectedSignals,
		&run.TopScore,
		&resultJSON,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}

	run.Timestamp = parseTimestamp(timestamp)

	var result model.Result
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	run.Result = &result

	return &run, nil
}

// GetRunHistory retrieves all runs stored under the given label, newest
// first. Runs stored within the same second keep insertion order, newest
// first. Rows with a malformed payload are skipped.
func (r *RunDB) GetRunHistory(ctx context.Context, label string) ([]*Run, error) {
	query := `
	SELECT id, label, fingerprint, timestamp, company_count,
	       reported_signals, detected_signals, top_score, result_json
	FROM discovery_runs
	WHERE label = ?
	ORDER BY timestamp DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, label)
	if err != nil {
		return nil, fmt.Errorf("failed to query run history: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var (
			run        Run
			timestamp  string
			resultJSON string
		)

		if err := rows.Scan(
			&run.ID,
			&run.Label,
			&run.Fingerprint,
			&timestamp,
			&run.CompanyCount,
			&run.ReportedSignals,
			&run.DetectedSignals,
			&run.TopScore,
			&resultJSON,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}

		run.Timestamp = parseTimestamp(timestamp)

		var result model.Result
		if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
			// Skip runs whose stored payload no longer decodes
			continue
		}
		run.Result = &result

		runs = append(runs, &run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate run rows: %w", err)
	}

	return runs, nil
}

// GetRunHistoryWithMetadata retrieves metadata for all runs stored under the
// given label, newest first, without decoding any payloads.
func (r *RunDB) GetRunHistoryWithMetadata(ctx context.Context, label string) ([]RunMetadata, error) {
	query := `
	SELECT id, label, fingerprint, timestamp, company_count,
	       reported_signals, detected_signals, top_score
	FROM discovery_runs
	WHERE label = ?
	ORDER BY timestamp DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, label)
	if err != nil {
		return nil, fmt.Errorf("failed to query run metadata: %w", err)
	}
	defer rows.Close()

	var metadata []RunMetadata
	for rows.Next() {
		var (
			meta      RunMetadata
			timestamp string
		)

		if err := rows.Scan(
			&meta.ID,
			&meta.Label,
			&meta.Fingerprint,
			&timestamp,
			&meta.CompanyCount,
			&meta.ReportedSignals,
			&meta.DetectedSignals,
			&meta.TopScore,
		); err != nil {
			return nil, fmt.Errorf("failed to scan metadata row: %w", err)
		}

		meta.Timestamp = parseTimestamp(timestamp)
		metadata = append(metadata, meta)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate metadata rows: %w", err)
	}

	return metadata, nil
}

// ListLabels returns all distinct run labels in alphabetical order.
func (r *RunDB) ListLabels(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT label FROM discovery_runs ORDER BY label`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query labels: %w", err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		labels = append(labels, label)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate labels: %w", err)
	}

	return labels, nil
}

// PruneBefore deletes all runs stored before the given cutoff time, across
// every label. Returns the number of deleted runs.
func (r *RunDB) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM discovery_runs WHERE timestamp < datetime(?)`

	res, err := r.db.ExecContext(ctx, query, cutoff.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned runs: %w", err)
	}

	return deleted, nil
}

// timestampFormats lists the timestamp layouts SQLite may hand back.
var timestampFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	time.RFC3339,
}

// parseTimestamp parses a timestamp string from SQLite.
// Returns the zero time if the value matches none of the known layouts.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
