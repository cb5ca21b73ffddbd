package storage

// sqlite.go — session persistence for the exit report and offline review.
//
// Layout:
//   - `cycles`: one lightweight summary row per scan cycle.
//   - `opportunities`: one row per detected opportunity.
//   - `trades`: one row per simulated trade (filled and rejected).
//   - Prune on start: anything older than the retention window goes.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alejandrodnm/updown/internal/domain"
	"github.com/alejandrodnm/updown/internal/ports"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS cycles (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    scanned_at    DATETIME NOT NULL,
    period_start  INTEGER  NOT NULL,
    time_left     REAL     NOT NULL DEFAULT 0,
    rotated       INTEGER  NOT NULL DEFAULT 0,
    opportunities INTEGER  NOT NULL DEFAULT 0,
    trades        INTEGER  NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS opportunities (
    id           TEXT PRIMARY KEY,
    kind         TEXT NOT NULL,
    symbol       TEXT NOT NULL,
    question     TEXT,
    detected_at  DATETIME NOT NULL,
    time_left    REAL NOT NULL DEFAULT 0,
    side         TEXT,
    price        REAL NOT NULL DEFAULT 0,
    edge         REAL NOT NULL DEFAULT 0,
    net_edge     REAL NOT NULL DEFAULT 0,
    size         REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS trades (
    id          TEXT PRIMARY KEY,
    status      TEXT NOT NULL,
    reason      TEXT,
    kind        TEXT NOT NULL,
    symbol      TEXT NOT NULL,
    side        TEXT,
    size_usd    REAL NOT NULL DEFAULT 0,
    shares      REAL NOT NULL DEFAULT 0,
    cost_basis  REAL NOT NULL DEFAULT 0,
    gross_pnl   REAL NOT NULL DEFAULT 0,
    net_pnl     REAL NOT NULL DEFAULT 0,
    edge_pct    REAL NOT NULL DEFAULT 0,
    executed_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cycles_at   ON cycles(scanned_at DESC);
CREATE INDEX IF NOT EXISTS idx_opp_kind    ON opportunities(kind);
CREATE INDEX IF NOT EXISTS idx_opp_at      ON opportunities(detected_at DESC);
CREATE INDEX IF NOT EXISTS idx_trades_kind ON trades(kind);
CREATE INDEX IF NOT EXISTS idx_trades_at   ON trades(executed_at DESC);
`

// retention keeps the DB small; a 5-minute market older than a week has
// no analytical value.
const retention = 7 * 24 * time.Hour

// SQLiteStorage implements ports.Storage on SQLite (pure Go, no CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens (or creates) the database at the given path,
// applies the schema and prunes old rows.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	s := &SQLiteStorage{db: db}
	s.pruneOld(context.Background())
	return s, nil
}

// SaveCycle persists the cycle summary row plus every opportunity and
// simulated trade of the cycle in a single transaction.
func (s *SQLiteStorage) SaveCycle(ctx context.Context, report ports.CycleReport) error {
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SaveCycle: begin tx: %w", err)
	}
	defer tx.Rollback()

	rotated := 0
	if report.Rotated {
		rotated = 1
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO cycles (scanned_at, period_start, time_left, rotated, opportunities, trades)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		now, report.PeriodStart, report.TimeLeft, rotated,
		len(report.Opportunities), len(report.Trades),
	); err != nil {
		return fmt.Errorf("storage.SaveCycle: insert cycle: %w", err)
	}

	for _, opp := range report.Opportunities {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO opportunities
				(id, kind, symbol, question, detected_at, time_left, side, price, edge, net_edge, size)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			opp.ID, string(opp.Kind), opp.Symbol, opp.Question,
			opp.DetectedAt.UTC(), opp.TimeLeft, string(opp.Side),
			opp.Price, opp.Edge, opp.NetEdge, opp.Size,
		); err != nil {
			return fmt.Errorf("storage.SaveCycle: insert opportunity %s: %w", opp.ID, err)
		}
	}

	for _, t := range report.Trades {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO trades
				(id, status, reason, kind, symbol, side, size_usd, shares,
				 cost_basis, gross_pnl, net_pnl, edge_pct, executed_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, string(t.Status), t.Reason, string(t.Kind), t.Symbol,
			string(t.Side), t.SizeUSD, t.Shares, t.CostBasis,
			t.GrossPnL, t.NetPnL, t.EdgePct, t.ExecutedAt.UTC(),
		); err != nil {
			return fmt.Errorf("storage.SaveCycle: insert trade %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.SaveCycle: commit: %w", err)
	}
	return nil
}

// GetSessionSummary rebuilds aggregate stats from everything persisted.
// Only filled trades count towards totals, matching the in-memory rule.
func (s *SQLiteStorage) GetSessionSummary(ctx context.Context) (domain.SessionStats, error) {
	stats := domain.NewSessionStats(time.Now().UTC())

	var transitions sql.NullInt64
	if err := s.db.QueryRowContext(ctx,
		`SELECT SUM(rotated) FROM cycles`,
	).Scan(&transitions); err != nil {
		return domain.SessionStats{}, fmt.Errorf("storage.GetSessionSummary: cycles: %w", err)
	}
	stats.PeriodTransitions = int(transitions.Int64)

	var earliest sql.NullString
	if err := s.db.QueryRowContext(ctx,
		`SELECT MIN(scanned_at) FROM cycles`,
	).Scan(&earliest); err != nil {
		return domain.SessionStats{}, fmt.Errorf("storage.GetSessionSummary: earliest cycle: %w", err)
	}
	if earliest.Valid {
		if t, err := time.Parse(time.RFC3339, earliest.String); err == nil {
			stats.StartedAt = t
		}
	}

	oppRows, err := s.db.QueryContext(ctx,
		`SELECT kind, COUNT(*) FROM opportunities GROUP BY kind`,
	)
	if err != nil {
		return domain.SessionStats{}, fmt.Errorf("storage.GetSessionSummary: opportunities: %w", err)
	}
	defer oppRows.Close()
	for oppRows.Next() {
		var kind string
		var n int
		if err := oppRows.Scan(&kind, &n); err != nil {
			return domain.SessionStats{}, fmt.Errorf("storage.GetSessionSummary: scan opportunity row: %w", err)
		}
		stats.TotalOpportunities += n
		if b, ok := stats.ByStrategy[domain.StrategyKind(kind)]; ok {
			b.Opportunities = n
		}
	}
	if err := oppRows.Err(); err != nil {
		return domain.SessionStats{}, err
	}

	tradeRows, err := s.db.QueryContext(ctx,
		`SELECT kind, COUNT(*), COALESCE(SUM(net_pnl), 0)
		 FROM trades WHERE status = ? GROUP BY kind`,
		string(domain.TradeFilled),
	)
	if err != nil {
		return domain.SessionStats{}, fmt.Errorf("storage.GetSessionSummary: trades: %w", err)
	}
	defer tradeRows.Close()
	for tradeRows.Next() {
		var kind string
		var n int
		var pnl float64
		if err := tradeRows.Scan(&kind, &n, &pnl); err != nil {
			return domain.SessionStats{}, fmt.Errorf("storage.GetSessionSummary: scan trade row: %w", err)
		}
		stats.TotalTrades += n
		stats.TotalPnL += pnl
		if b, ok := stats.ByStrategy[domain.StrategyKind(kind)]; ok {
			b.Trades = n
			b.PnL = pnl
		}
	}
	if err := tradeRows.Err(); err != nil {
		return domain.SessionStats{}, err
	}

	return *stats, nil
}

// Close releases the database handle.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// pruneOld removes rows past the retention window. Failures are ignored,
// a stale row is harmless.
func (s *SQLiteStorage) pruneOld(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-retention)
	s.db.ExecContext(ctx, `DELETE FROM cycles WHERE scanned_at < ?`, cutoff)
	s.db.ExecContext(ctx, `DELETE FROM opportunities WHERE detected_at < ?`, cutoff)
	s.db.ExecContext(ctx, `DELETE FROM trades WHERE executed_at < ?`, cutoff)
}
