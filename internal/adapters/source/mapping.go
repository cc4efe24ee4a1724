package source

// mapping.go — conversión tipada de filas crudas a tipos de dominio.
//
// El parser deja todos los valores como strings; aquí se parsean una sola
// vez a número/timestamp, justo después del parse crudo. Centralizar la
// conversión evita re-parsear en cada uso y concentra el manejo de errores
// de formato numérico en un solo sitio.

import (
	"fmt"
	"strconv"
	"time"

	"github.com/alejandrodnm/tradedash/internal/domain"
	"github.com/alejandrodnm/tradedash/internal/tabular"
)

// timeLayouts son los formatos que emite el motor de backtest, en orden
// de probabilidad. Los timestamps de pandas salen como "2006-01-02 15:04:05".
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

// mapTrades convierte las filas del log de trades a domain.TradeRecord,
// preservando el orden. Falla en el primer campo requerido inválido.
func mapTrades(tbl tabular.Table) ([]domain.TradeRecord, error) {
	trades := make([]domain.TradeRecord, 0, len(tbl.Rows))
	for i, row := range tbl.Rows {
		t, err := mapTrade(row)
		if err != nil {
			return nil, fmt.Errorf("source.mapTrades: row %d: %w", i+1, err)
		}
		trades = append(trades, t)
	}
	return trades, nil
}

// mapTrade convierte una fila a TradeRecord.
func mapTrade(row tabular.Row) (domain.TradeRecord, error) {
	var t domain.TradeRecord
	var err error

	if t.EntryTime, err = parseTime(row, "entry_time"); err != nil {
		return t, err
	}
	if t.ExitTime, err = parseTime(row, "exit_time"); err != nil {
		return t, err
	}
	if t.EntryPrice, err = parseFloat(row, "entry_price"); err != nil {
		return t, err
	}
	if t.ExitPrice, err = parseFloat(row, "exit_price"); err != nil {
		return t, err
	}
	if t.PnL, err = parseFloat(row, "pnl"); err != nil {
		return t, err
	}
	if t.PnLPct, err = parseFloat(row, "pnl_pct"); err != nil {
		return t, err
	}
	if t.EquityAfter, err = parseFloat(row, "equity_after"); err != nil {
		return t, err
	}
	t.ExitReason = row["exit_reason"]

	// position_size no es parte del contrato mínimo; si está, se parsea
	if row.Has("position_size") && row["position_size"] != "" {
		if t.PositionSize, err = parseFloat(row, "position_size"); err != nil {
			return t, err
		}
	}

	if t.ExitTime.Before(t.EntryTime) {
		return t, fmt.Errorf("exit_time %s before entry_time %s", t.ExitTime, t.EntryTime)
	}

	return t, nil
}

// mapEquity convierte las filas de la curva de equity, preservando el
// orden — la posición en la serie es el eje temporal implícito.
func mapEquity(tbl tabular.Table) ([]domain.EquityPoint, error) {
	points := make([]domain.EquityPoint, 0, len(tbl.Rows))
	for i, row := range tbl.Rows {
		eq, err := parseFloat(row, "equity")
		if err != nil {
			return nil, fmt.Errorf("source.mapEquity: row %d: %w", i+1, err)
		}
		p := domain.EquityPoint{Equity: eq}
		// timestamp es opcional y solo para display: un valor que no
		// parsea se ignora en vez de abortar la carga
		if ts, err := parseTime(row, "timestamp"); err == nil {
			p.Timestamp = ts
		}
		points = append(points, p)
	}
	return points, nil
}

func parseFloat(row tabular.Row, key string) (float64, error) {
	raw, ok := row[key]
	if !ok || raw == "" {
		return 0, fmt.Errorf("missing field %q", key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("field %q: %w", key, err)
	}
	return v, nil
}

func parseTime(row tabular.Row, key string) (time.Time, error) {
	raw, ok := row[key]
	if !ok || raw == "" {
		return time.Time{}, fmt.Errorf("missing field %q", key)
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("field %q: unrecognized timestamp %q", key, raw)
}
