package domain

import (
	"time"

	"github.com/google/uuid"
)

// TradeRecord representa un trade cerrado del log de backtest.
// Los registros son inmutables una vez construidos y mantienen el orden
// cronológico del archivo de origen — nunca se reordenan.
type TradeRecord struct {
	EntryTime    time.Time
	ExitTime     time.Time
	EntryPrice   float64
	ExitPrice    float64
	PositionSize float64
	PnL          float64 // en unidades de moneda, con signo
	PnLPct       float64
	EquityAfter  float64 // equity de la cuenta justo después de cerrar
	ExitReason   string  // stop_loss | take_profit | end_of_data | ...
}

// EquityPoint es una muestra de la curva de equity. La coordenada x
// implícita es la posición de la muestra en la serie.
type EquityPoint struct {
	Timestamp time.Time // opcional, solo para display
	Equity    float64
}

// Session es el estado inmutable de una carga: se construye una sola vez
// cuando ambos datasets están disponibles y se pasa explícitamente a los
// renderers. Sustituye a los handles globales mutables del diseño original.
type Session struct {
	ID       string
	LoadedAt time.Time
	Trades   []TradeRecord
	Equity   []EquityPoint
}

// NewSession construye una sesión con un run id nuevo.
func NewSession(trades []TradeRecord, equity []EquityPoint) *Session {
	return &Session{
		ID:       uuid.New().String(),
		LoadedAt: time.Now().UTC(),
		Trades:   trades,
		Equity:   equity,
	}
}

// RecentTrades devuelve los últimos n trades en orden cronológico inverso
// (el más reciente primero). Con menos de n trades devuelve todos.
func (s *Session) RecentTrades(n int) []TradeRecord {
	if n <= 0 || len(s.Trades) == 0 {
		return nil
	}
	if n > len(s.Trades) {
		n = len(s.Trades)
	}
	out := make([]TradeRecord, n)
	for i := 0; i < n; i++ {
		out[i] = s.Trades[len(s.Trades)-1-i]
	}
	return out
}

// LoadResult es el resultado explícito del loader: o bien ambos datasets
// cargaron (Found + Session), o el sistema queda idle. La ausencia de un
// dataset no es un error — es una política deliberada del diseño.
type LoadResult struct {
	Found   bool
	Session *Session
}
