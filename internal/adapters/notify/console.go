package notify

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alejandrodnm/tradedash/internal/domain"
	"github.com/olekukonko/tablewriter"
)

// Console implementa ports.Renderer escribiendo el resumen y la tabla de
// trades recientes a stdout.
type Console struct {
	out    io.Writer
	recent int
	table  bool
}

// NewConsole crea un renderer que escribe a stdout. Con table=false
// imprime solo el resumen compacto de una línea.
func NewConsole(recent int, table bool) *Console {
	return &Console{out: os.Stdout, recent: recent, table: table}
}

// NewConsoleWriter crea un renderer para tests.
func NewConsoleWriter(w io.Writer, recent int, table bool) *Console {
	return &Console{out: w, recent: recent, table: table}
}

// Render imprime el dashboard en el modo configurado.
func (c *Console) Render(_ context.Context, s *domain.Session, sum domain.Summary) error {
	if sum.Empty {
		fmt.Fprintln(c.out, "No trades in dataset — nothing to report")
		return nil
	}

	if !c.table {
		c.printCompact(sum)
		return nil
	}

	c.printSummary(sum)
	c.printRecent(s)
	return nil
}

// printCompact imprime lo esencial en una línea.
func (c *Console) printCompact(sum domain.Summary) {
	fmt.Fprintf(c.out, "%d trades | pnl $%.0f | wr %.1f%% | pf %.2f | dd %.2f%% | ret %+.2f%%\n",
		sum.TotalTrades, sum.TotalPnL, sum.WinRatePct,
		sum.ProfitFactor, sum.MaxDrawdownPct, sum.TotalReturnPct)
}

// printSummary imprime el bloque de resultados completo, con el mismo
// layout que el reporte del motor de backtest.
func (c *Console) printSummary(sum domain.Summary) {
	fmt.Fprintln(c.out, "============================================================")
	fmt.Fprintln(c.out, "BACKTEST RESULTS")
	fmt.Fprintln(c.out, "============================================================")

	fmt.Fprintf(c.out, "\nInitial Capital:    $%.0f\n", sum.InitialCapital)
	fmt.Fprintf(c.out, "Final Capital:      $%.0f\n", sum.FinalCapital)
	fmt.Fprintf(c.out, "Total P&L:          $%.0f\n", sum.TotalPnL)
	fmt.Fprintf(c.out, "Total Return:       %+.2f%%\n", sum.TotalReturnPct)

	fmt.Fprintf(c.out, "\nTotal Trades:       %d\n", sum.TotalTrades)
	fmt.Fprintf(c.out, "Winning Trades:     %d\n", sum.Winners)
	fmt.Fprintf(c.out, "Losing Trades:      %d\n", sum.Losers)
	fmt.Fprintf(c.out, "Win Rate:           %.2f%%\n", sum.WinRatePct)

	fmt.Fprintf(c.out, "\nAverage Win:        $%.0f\n", sum.AvgWin)
	fmt.Fprintf(c.out, "Average Loss:       $%.0f\n", sum.AvgLoss)
	fmt.Fprintf(c.out, "Largest Win:        $%.0f\n", sum.LargestWin)
	fmt.Fprintf(c.out, "Largest Loss:       $%.0f\n", sum.LargestLoss)
	fmt.Fprintf(c.out, "Profit Factor:      %.2f\n", sum.ProfitFactor)
	fmt.Fprintf(c.out, "Win/Loss Ratio:     %.2f\n", sum.WinLossRatio)
	fmt.Fprintf(c.out, "Max Drawdown:       %.2f%%\n", sum.MaxDrawdownPct)
	fmt.Fprintf(c.out, "Longest Win Streak: %d\n", sum.MaxWinStreak)
	fmt.Fprintf(c.out, "Longest Loss Streak: %d\n", sum.MaxLossStreak)
}

// printRecent imprime los últimos trades, el más reciente primero.
// Formatos de display: moneda entera, porcentajes a 2 decimales, precios
// a 5 decimales.
func (c *Console) printRecent(s *domain.Session) {
	recent := s.RecentTrades(c.recent)
	if len(recent) == 0 {
		return
	}

	fmt.Fprintf(c.out, "\n=== RECENT TRADES (last %d) ===\n", len(recent))

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Entry", "Exit", "Entry$", "Exit$", "P&L", "P&L%", "Equity", "Reason")

	for i, t := range recent {
		table.Append(
			fmt.Sprintf("%d", i+1),
			t.EntryTime.Format("2006-01-02 15:04"),
			t.ExitTime.Format("2006-01-02 15:04"),
			fmt.Sprintf("%.5f", t.EntryPrice),
			fmt.Sprintf("%.5f", t.ExitPrice),
			fmt.Sprintf("$%.0f", t.PnL),
			fmt.Sprintf("%+.2f%%", t.PnLPct),
			fmt.Sprintf("$%.0f", t.EquityAfter),
			t.ExitReason,
		)
	}

	table.Render()
}
