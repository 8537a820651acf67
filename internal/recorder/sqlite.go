package recorder

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder archives samples to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *slog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger *slog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets external readers query while the loop writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("sqlite_recorder_opened", "path", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS samples (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id       TEXT NOT NULL,
			tick         INTEGER NOT NULL,
			recorded_at  INTEGER NOT NULL,
			timestamp    TEXT NOT NULL,
			temperature  REAL NOT NULL,
			trend_slope  REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_samples_recorded ON samples(recorded_at)`,
		`CREATE INDEX IF NOT EXISTS idx_samples_run ON samples(run_id, tick)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSample(rec *SampleRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	recordedAt := rec.Sample.Time
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}
	var slope sql.NullFloat64
	if rec.Slope != nil {
		slope = sql.NullFloat64{Float64: *rec.Slope, Valid: true}
	}

	_, err := r.db.Exec(`INSERT INTO samples
		(run_id, tick, recorded_at, timestamp, temperature, trend_slope)
		VALUES (?,?,?,?,?,?)`,
		rec.RunID, int64(rec.Tick), recordedAt.Unix(),
		rec.Sample.Timestamp, rec.Sample.Value, slope,
	)
	return err
}

// Prune deletes samples recorded before olderThan and returns the number removed.
func (r *SQLiteRecorder) Prune(olderThan time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.Exec(`DELETE FROM samples WHERE recorded_at < ?`, olderThan.Unix())
	if err != nil {
		return 0, fmt.Errorf("prune samples: %w", err)
	}
	return res.RowsAffected()
}

// count returns the number of archived samples for runID. The archive is
// write-only at runtime; tests use this to inspect it.
func (r *SQLiteRecorder) count(runID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM samples WHERE run_id = ?`, runID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count samples: %w", err)
	}
	return n, nil
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info("sqlite_recorder_closing")
	return r.db.Close()
}
