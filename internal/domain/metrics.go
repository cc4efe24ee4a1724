package domain

import "math"

// Summary son las métricas agregadas de un backtest. Se recalculan
// completas en cada carga; son función pura de la secuencia de trades.
type Summary struct {
	// Empty indica que no había trades: el resto de campos queda en cero
	// y los renderers muestran un estado "no data" explícito en lugar de
	// dividir por cero.
	Empty bool

	TotalTrades int
	Winners     int
	Losers      int

	TotalPnL   float64
	WinRatePct float64

	AvgWin       float64 // media de PnL de los ganadores, 0 si no hay
	AvgLoss      float64 // media de PnL de los perdedores (con signo), 0 si no hay
	ProfitFactor float64 // |ganancias / pérdidas|, 0 si no hay pérdidas
	WinLossRatio float64 // |AvgWin / AvgLoss|, 0 si no hay pérdidas

	LargestWin  float64
	LargestLoss float64

	MaxDrawdownPct float64 // magnitud positiva del peor retroceso peak-to-trough

	MaxWinStreak  int
	MaxLossStreak int

	InitialCapital float64
	FinalCapital   float64
	TotalReturnPct float64
}

// ComputeMetrics calcula el Summary de una secuencia de trades en el orden
// del log. Un trade gana solo con PnL estrictamente positivo: PnL == 0
// cuenta como pérdida. Con cero trades devuelve el sentinel Empty sin
// tocar ninguna división.
func ComputeMetrics(trades []TradeRecord) Summary {
	if len(trades) == 0 {
		return Summary{Empty: true}
	}

	s := Summary{TotalTrades: len(trades)}

	var winSum, lossSum float64
	for _, t := range trades {
		s.TotalPnL += t.PnL
		if t.PnL > 0 {
			s.Winners++
			winSum += t.PnL
			if t.PnL > s.LargestWin {
				s.LargestWin = t.PnL
			}
		} else {
			s.Losers++
			lossSum += t.PnL
			if t.PnL < s.LargestLoss {
				s.LargestLoss = t.PnL
			}
		}
	}

	s.WinRatePct = 100 * float64(s.Winners) / float64(s.TotalTrades)

	if s.Winners > 0 {
		s.AvgWin = winSum / float64(s.Winners)
	}
	if s.Losers > 0 {
		s.AvgLoss = lossSum / float64(s.Losers)
	}

	// Equivale a |winSum / lossSum|; el guard evita la división con cero
	// pérdidas (AvgLoss == 0 implica lossSum == 0).
	if s.AvgLoss != 0 {
		s.ProfitFactor = math.Abs(s.AvgWin * float64(s.Winners) / (s.AvgLoss * float64(s.Losers)))
		s.WinLossRatio = math.Abs(s.AvgWin / s.AvgLoss)
	}

	s.MaxDrawdownPct = MaxDrawdown(trades)
	s.MaxWinStreak, s.MaxLossStreak = streaks(trades)

	// El capital inicial se recupera del primer trade: su equity_after
	// menos su PnL es el equity con el que arrancó la cuenta.
	first := trades[0]
	s.InitialCapital = first.EquityAfter - first.PnL
	s.FinalCapital = trades[len(trades)-1].EquityAfter
	if s.InitialCapital != 0 {
		s.TotalReturnPct = 100 * (s.FinalCapital - s.InitialCapital) / s.InitialCapital
	}

	return s
}

// MaxDrawdown calcula el peor retroceso en porcentaje con el algoritmo de
// peak corrido sobre equity_after, en orden de secuencia del log de trades
// (no sobre la curva de equity separada). Devuelve magnitud positiva.
func MaxDrawdown(trades []TradeRecord) float64 {
	if len(trades) == 0 {
		return 0
	}

	peak := trades[0].EquityAfter
	var maxDD float64
	for _, t := range trades {
		if t.EquityAfter > peak {
			peak = t.EquityAfter
		}
		if peak <= 0 {
			continue
		}
		dd := 100 * (peak - t.EquityAfter) / peak
		if dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// streaks devuelve las rachas más largas de ganadores y perdedores
// consecutivos, en orden de secuencia.
func streaks(trades []TradeRecord) (maxWin, maxLoss int) {
	var curWin, curLoss int
	for _, t := range trades {
		if t.PnL > 0 {
			curWin++
			curLoss = 0
			if curWin > maxWin {
				maxWin = curWin
			}
		} else {
			curLoss++
			curWin = 0
			if curLoss > maxLoss {
				maxLoss = curLoss
			}
		}
	}
	return maxWin, maxLoss
}
