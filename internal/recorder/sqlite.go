package recorder

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"StockPulse/internal/model"
)

// SQLiteRecorder persists dashboard snapshots and their candles to SQLite.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *zap.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger *zap.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets the HTTP history endpoint read while the scheduler writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS dashboard_snapshots (
			id             TEXT PRIMARY KEY,
			timestamp      INTEGER NOT NULL,
			symbol         TEXT NOT NULL,
			short_source   TEXT,
			long_source    TEXT,
			first_open     REAL,
			last_close     REAL,
			change_percent REAL,
			outlook        TEXT,
			headline_count INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_symbol_ts ON dashboard_snapshots(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS snapshot_candles (
			snapshot_id TEXT NOT NULL REFERENCES dashboard_snapshots(id),
			series      TEXT NOT NULL,
			time        INTEGER NOT NULL,
			open        REAL,
			high        REAL,
			low         REAL,
			close       REAL,
			PRIMARY KEY (snapshot_id, series, time)
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordDashboard stores the snapshot row and every candle of both windows in one transaction.
func (r *SQLiteRecorder) RecordDashboard(ctx context.Context, d *model.Dashboard) (*Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := newSnapshot(d)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT INTO dashboard_snapshots
		(id, timestamp, symbol, short_source, long_source, first_open, last_close,
		 change_percent, outlook, headline_count)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		snap.ID, snap.RecordedAt.UnixMilli(), snap.Symbol, snap.ShortSource, snap.LongSource,
		snap.FirstOpen, snap.LastClose, snap.ChangePercent, snap.Outlook, snap.HeadlineCount,
	); err != nil {
		return nil, fmt.Errorf("insert snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO snapshot_candles
		(snapshot_id, series, time, open, high, low, close) VALUES (?,?,?,?,?,?,?)`)
	if err != nil {
		return nil, fmt.Errorf("prepare candles: %w", err)
	}
	defer stmt.Close()

	for window, series := range map[string]*model.Series{"short": d.Short, "long": d.Long} {
		if series == nil {
			continue
		}
		for _, c := range series.Candles {
			if _, err := stmt.ExecContext(ctx, snap.ID, window, c.Time, c.Open, c.High, c.Low, c.Close); err != nil {
				return nil, fmt.Errorf("insert %s candle: %w", window, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return snap, nil
}

// ListSnapshots returns up to limit snapshots for symbol, newest first.
func (r *SQLiteRecorder) ListSnapshots(ctx context.Context, symbol string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id, timestamp, symbol, short_source, long_source,
		first_open, last_close, change_percent, outlook, headline_count
		FROM dashboard_snapshots WHERE symbol = ? ORDER BY timestamp DESC, id DESC LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var s Snapshot
		var ts int64
		if err := rows.Scan(&s.ID, &ts, &s.Symbol, &s.ShortSource, &s.LongSource,
			&s.FirstOpen, &s.LastClose, &s.ChangePercent, &s.Outlook, &s.HeadlineCount); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		s.RecordedAt = time.UnixMilli(ts).UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}

// CandleCount returns how many candles were stored for a snapshot window.
func (r *SQLiteRecorder) CandleCount(ctx context.Context, snapshotID, window string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM snapshot_candles WHERE snapshot_id = ? AND series = ?`,
		snapshotID, window).Scan(&n)
	return n, err
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info("closing sqlite recorder")
	return r.db.Close()
}
