package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// dbFileName is the SQLite file created under the data directory.
const dbFileName = "dorkscan.db"

// SeenDB is the SQLite-backed dedup store.
//
// Design decision: A single database file holds all queries rather than
// one file per query. Queries share nothing but the file, and a single
// file keeps backup and out-of-band pruning trivial.
type SeenDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures SeenDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. Recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a SeenDB in the specified directory.
// If CreateIfNotExists is false and the database doesn't exist, an error
// is returned without creating anything.
func Open(dbDir string, opts Options) (*SeenDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating
	// new files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports only one writer; a single connection avoids
	// SQLITE_BUSY churn under concurrent Record calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	sdb := &SeenDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := sdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return sdb, nil
}

// Close closes the database connection.
func (sdb *SeenDB) Close() error {
	return sdb.db.Close()
}

// Path returns the SQLite file path.
func (sdb *SeenDB) Path() string {
	return sdb.dbPath
}

// createTables creates the schema if it doesn't exist.
func (sdb *SeenDB) createTables() error {
	schema := `
	-- Seen entries record which URLs were already surfaced per query.
	-- The composite primary key is the uniqueness constraint; rows are
	-- append-only and never updated.
	CREATE TABLE IF NOT EXISTS seen (
		query TEXT NOT NULL,
		url   TEXT NOT NULL,
		first_seen DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (query, url)
	);

	CREATE INDEX IF NOT EXISTS idx_seen_query ON seen(query);
	`

	_, err := sdb.db.ExecContext(context.Background(), schema)
	return err
}

// Seen returns every URL previously recorded for this exact query string.
// Query strings are matched verbatim: no case folding, no whitespace
// normalization.
func (sdb *SeenDB) Seen(ctx context.Context, query string) (map[string]struct{}, error) {
	rows, err := sdb.db.QueryContext(ctx, "SELECT url FROM seen WHERE query = ?", query)
	if err != nil {
		return nil, fmt.Errorf("failed to query seen URLs: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("failed to scan seen URL: %w", err)
		}
		seen[url] = struct{}{}
	}

	return seen, rows.Err()
}

// Record persists each (query, url) pair. Re-recording a pair that is
// already present is a no-op, not an error, so Record is idempotent.
// The write is committed in one transaction: when Record returns nil,
// every pair is durable.
func (sdb *SeenDB) Record(ctx context.Context, query string, urls []string) error {
	if len(urls) == 0 {
		return nil
	}

	tx, err := sdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after a successful commit

	stmt, err := tx.PrepareContext(ctx, "INSERT OR IGNORE INTO seen (query, url) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close() //nolint:errcheck // Statement lifetime ends with the transaction

	for _, url := range urls {
		if _, err := stmt.ExecContext(ctx, query, url); err != nil {
			return fmt.Errorf("failed to record seen URL %q: %w", url, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seen URLs: %w", err)
	}
	return nil
}

// Queries returns the distinct query strings present in the store,
// ordered lexicographically. Useful for operator inspection.
func (sdb *SeenDB) Queries(ctx context.Context) ([]string, error) {
	rows, err := sdb.db.QueryContext(ctx, "SELECT DISTINCT query FROM seen ORDER BY query")
	if err != nil {
		return nil, fmt.Errorf("failed to list queries: %w", err)
	}
	defer rows.Close()

	var queries []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, fmt.Errorf("failed to scan query: %w", err)
		}
		queries = append(queries, q)
	}

	return queries, rows.Err()
}

// Count returns the number of recorded URLs for a query.
func (sdb *SeenDB) Count(ctx context.Context, query string) (int, error) {
	var n int
	err := sdb.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM seen WHERE query = ?", query).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count seen URLs: %w", err)
	}
	return n, nil
}
