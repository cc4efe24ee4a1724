package source

// sqlite.go — source alternativo que lee los dos datasets desde un
// journal SQLite en vez de los CSVs sueltos. El journal es el mismo par
// lógico (trades + curva de equity) en un solo archivo:
//
//   trades(entry_time, exit_time, entry_price, exit_price,
//          position_size, pnl, pnl_pct, exit_reason, equity_after)
//   equity_curve(timestamp, equity)
//
// El orden de inserción (rowid) es el eje temporal y se respeta.

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/alejandrodnm/tradedash/internal/domain"
	_ "modernc.org/sqlite"
)

// SQLite implementa ports.DatasetSource sobre un journal de backtest
// (driver pure Go, sin CGo).
type SQLite struct {
	dsn string
}

// NewSQLite crea un source sobre la ruta dada. No abre la base de datos
// todavía: un journal ausente es una condición idle, no un error de
// construcción.
func NewSQLite(dsn string) *SQLite {
	return &SQLite{dsn: dsn}
}

// Load abre el journal y lee ambas tablas. Si el archivo o cualquiera de
// las dos tablas no existe devuelve Found=false sin error.
func (s *SQLite) Load(ctx context.Context) (domain.LoadResult, error) {
	if s.dsn != ":memory:" {
		if _, err := os.Stat(s.dsn); errors.Is(err, os.ErrNotExist) {
			slog.Info("journal not found, staying idle", "dsn", s.dsn)
			return domain.LoadResult{}, nil
		}
	}

	db, err := sql.Open("sqlite", s.dsn)
	if err != nil {
		return domain.LoadResult{}, fmt.Errorf("source.SQLite: open %q: %w", s.dsn, err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1) // SQLite es single-writer

	for _, table := range []string{"trades", "equity_curve"} {
		ok, err := tableExists(ctx, db, table)
		if err != nil {
			return domain.LoadResult{}, err
		}
		if !ok {
			slog.Info("journal table missing, staying idle", "dsn", s.dsn, "table", table)
			return domain.LoadResult{}, nil
		}
	}

	trades, err := s.loadTrades(ctx, db)
	if err != nil {
		return domain.LoadResult{}, err
	}
	equity, err := s.loadEquity(ctx, db)
	if err != nil {
		return domain.LoadResult{}, err
	}

	slog.Info("datasets loaded", "dsn", s.dsn, "trades", len(trades), "equity_points", len(equity))
	return domain.LoadResult{Found: true, Session: domain.NewSession(trades, equity)}, nil
}

func (s *SQLite) loadTrades(ctx context.Context, db *sql.DB) ([]domain.TradeRecord, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT entry_time, exit_time, entry_price, exit_price,
		       position_size, pnl, pnl_pct, exit_reason, equity_after
		FROM trades ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("source.SQLite: query trades: %w", err)
	}
	defer rows.Close()

	var trades []domain.TradeRecord
	for rows.Next() {
		var t domain.TradeRecord
		var entry, exit string
		if err := rows.Scan(&entry, &exit, &t.EntryPrice, &t.ExitPrice,
			&t.PositionSize, &t.PnL, &t.PnLPct, &t.ExitReason, &t.EquityAfter); err != nil {
			return nil, fmt.Errorf("source.SQLite: scan trade: %w", err)
		}
		if t.EntryTime, err = parseTimestamp(entry); err != nil {
			return nil, fmt.Errorf("source.SQLite: trade entry_time: %w", err)
		}
		if t.ExitTime, err = parseTimestamp(exit); err != nil {
			return nil, fmt.Errorf("source.SQLite: trade exit_time: %w", err)
		}
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("source.SQLite: iterate trades: %w", err)
	}
	return trades, nil
}

func (s *SQLite) loadEquity(ctx context.Context, db *sql.DB) ([]domain.EquityPoint, error) {
	rows, err := db.QueryContext(ctx, `SELECT timestamp, equity FROM equity_curve ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("source.SQLite: query equity_curve: %w", err)
	}
	defer rows.Close()

	var points []domain.EquityPoint
	for rows.Next() {
		var p domain.EquityPoint
		var ts sql.NullString
		if err := rows.Scan(&ts, &p.Equity); err != nil {
			return nil, fmt.Errorf("source.SQLite: scan equity point: %w", err)
		}
		if ts.Valid {
			// timestamp es display-only, un formato raro no aborta la carga
			if parsed, err := parseTimestamp(ts.String); err == nil {
				p.Timestamp = parsed
			}
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("source.SQLite: iterate equity_curve: %w", err)
	}
	return points, nil
}

func tableExists(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("source.tableExists: %q: %w", name, err)
	}
	return n > 0, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}
