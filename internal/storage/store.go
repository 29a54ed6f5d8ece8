package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

// RunReport is one persisted backtest result row.
type RunReport struct {
	ID          int64
	RanAt       time.Time
	UpdateLog   string
	Processed   int
	Skipped     int
	Trades      int
	StartEquity float64
	FinalEquity float64
	NetPnL      float64
}

// RunStore keeps backtest reports and session metadata in SQLite so runs
// can be compared across invocations.
type RunStore struct {
	db *sql.DB
}

// NewRunStore opens (or creates) the store with WAL mode enabled.
func NewRunStore(dbPath string) (*RunStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ran_at INTEGER NOT NULL,
			update_log TEXT NOT NULL,
			processed INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			trades INTEGER NOT NULL,
			start_equity REAL NOT NULL,
			final_equity REAL NOT NULL,
			net_pnl REAL NOT NULL
		);
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create runs table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata table: %w", err)
	}

	return &RunStore{db: db}, nil
}

// SaveReport inserts one backtest result and returns its row id.
func (s *RunStore) SaveReport(ctx context.Context, r RunReport) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (ran_at, update_log, processed, skipped, trades, start_equity, final_equity, net_pnl)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RanAt.Unix(), r.UpdateLog, r.Processed, r.Skipped, r.Trades,
		r.StartEquity, r.FinalEquity, r.NetPnL,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return res.LastInsertId()
}

// ListReports returns the most recent runs, newest first.
func (s *RunStore) ListReports(ctx context.Context, limit int) ([]RunReport, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, ran_at, update_log, processed, skipped, trades, start_equity, final_equity, net_pnl
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var reports []RunReport
	for rows.Next() {
		var r RunReport
		var ranAt int64
		if err := rows.Scan(&r.ID, &ranAt, &r.UpdateLog, &r.Processed, &r.Skipped,
			&r.Trades, &r.StartEquity, &r.FinalEquity, &r.NetPnL); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.RanAt = time.Unix(ranAt, 0)
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// UpsertMetadata saves a key-value pair to the metadata table.
func (s *RunStore) UpsertMetadata(ctx context.Context, key, value string, ts int64) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO metadata (key, value, updated_at) VALUES (?, ?, ?) ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at",
		key, value, ts,
	)
	return err
}

// GetMetadata retrieves a value from the metadata table, empty if absent.
func (s *RunStore) GetMetadata(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// Close closes the database connection.
func (s *RunStore) Close() error {
	return s.db.Close()
}
