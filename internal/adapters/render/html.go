package render

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alejandrodnm/tradedash/internal/domain"
)

// HTML implementa ports.Renderer escribiendo dashboard.html: stats,
// curva de equity, barras de P&L y tabla de trades recientes, todo
// inline — sin assets externos ni JavaScript.
type HTML struct {
	outDir string
	title  string
	recent int
}

// NewHTML crea un renderer que escribe en el directorio dado.
func NewHTML(outDir, title string, recent int) *HTML {
	return &HTML{outDir: outDir, title: title, recent: recent}
}

// OutputPath es la ruta del artefacto generado.
func (h *HTML) OutputPath() string {
	return filepath.Join(h.outDir, "dashboard.html")
}

type statCard struct {
	Label string
	Value string
	Bad   bool
}

type tradeRow struct {
	Entry  string
	Exit   string
	EntryP string
	ExitP  string
	PnL    string
	PnLPct string
	Equity string
	Reason string
	Loss   bool
}

type pageData struct {
	Title       string
	RunID       string
	GeneratedAt string
	Empty       bool
	Stats       []statCard
	EquitySVG   template.HTML
	PnLSVG      template.HTML
	Recent      []tradeRow
}

// Render escribe el dashboard completo. Con Summary.Empty emite la página
// con un estado "no data" explícito.
func (h *HTML) Render(_ context.Context, s *domain.Session, sum domain.Summary) error {
	data := pageData{
		Title:       h.title,
		RunID:       s.ID,
		GeneratedAt: s.LoadedAt.Format("2006-01-02 15:04"),
		Empty:       sum.Empty,
	}

	if !sum.Empty {
		data.Stats = statCards(sum)
		data.EquitySVG = template.HTML(equityChartSVG(s.Equity, 900, 300))
		data.PnLSVG = template.HTML(pnlBarsSVG(s.Trades, 900, 240))
		for _, t := range s.RecentTrades(h.recent) {
			data.Recent = append(data.Recent, tradeRow{
				Entry:  t.EntryTime.Format("2006-01-02 15:04"),
				Exit:   t.ExitTime.Format("2006-01-02 15:04"),
				EntryP: fmt.Sprintf("%.5f", t.EntryPrice),
				ExitP:  fmt.Sprintf("%.5f", t.ExitPrice),
				PnL:    fmt.Sprintf("$%.0f", t.PnL),
				PnLPct: fmt.Sprintf("%+.2f%%", t.PnLPct),
				Equity: fmt.Sprintf("$%.0f", t.EquityAfter),
				Reason: t.ExitReason,
				Loss:   t.PnL <= 0,
			})
		}
	}

	path := h.OutputPath()
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render.HTML: create %q: %w", path, err)
	}
	defer f.Close()

	if err := page.Execute(f, data); err != nil {
		return fmt.Errorf("render.HTML: execute template: %w", err)
	}

	slog.Info("dashboard written", "path", path, "empty", sum.Empty)
	return nil
}

// statCards prepara las tarjetas del resumen con los formatos de display:
// moneda entera, porcentajes a 2 decimales.
func statCards(sum domain.Summary) []statCard {
	return []statCard{
		{Label: "Total P&L", Value: fmt.Sprintf("$%.0f", sum.TotalPnL), Bad: sum.TotalPnL < 0},
		{Label: "Total Return", Value: fmt.Sprintf("%+.2f%%", sum.TotalReturnPct), Bad: sum.TotalReturnPct < 0},
		{Label: "Win Rate", Value: fmt.Sprintf("%.2f%%", sum.WinRatePct)},
		{Label: "Trades", Value: fmt.Sprintf("%d (%dW / %dL)", sum.TotalTrades, sum.Winners, sum.Losers)},
		{Label: "Profit Factor", Value: fmt.Sprintf("%.2f", sum.ProfitFactor)},
		{Label: "Max Drawdown", Value: fmt.Sprintf("%.2f%%", sum.MaxDrawdownPct), Bad: true},
		{Label: "Avg Win / Loss", Value: fmt.Sprintf("$%.0f / $%.0f", sum.AvgWin, sum.AvgLoss)},
		{Label: "Best Streak W/L", Value: fmt.Sprintf("%d / %d", sum.MaxWinStreak, sum.MaxLossStreak)},
	}
}

var page = template.Must(template.New("dashboard").Parse(`<!doctype html>
<html><head><meta charset="utf-8"><title>{{.Title}}</title>
<style>
body{font-family:Inter,system-ui,sans-serif;background:#0b0f17;color:#e6edf3;padding:24px}
h1{font-size:20px;margin:0 0 4px}
.meta{color:#7d8590;font-size:12px;margin-bottom:20px}
.cards{display:flex;flex-wrap:wrap;gap:12px;margin-bottom:24px}
.card{background:#121826;border:1px solid #1f2837;border-radius:8px;padding:12px 16px;min-width:140px}
.card .label{color:#7d8590;font-size:11px;text-transform:uppercase}
.card .value{font-size:18px;margin-top:4px}
.card.bad .value{color:#ff7a7a}
.chart{margin-bottom:24px}
table{border-collapse:collapse;font-size:13px}
td,th{border:1px solid #1f2837;padding:6px 10px;text-align:right}
th{color:#7d8590}
td.reason,th.reason{text-align:left}
tr.loss td{color:#ff7a7a}
.nodata{color:#7d8590;font-size:16px;padding:48px;text-align:center;border:1px dashed #1f2837;border-radius:8px}
</style></head><body>
<h1>{{.Title}}</h1>
<div class="meta">run {{.RunID}} · generated {{.GeneratedAt}}</div>
{{if .Empty}}
<div class="nodata">No trades in dataset</div>
{{else}}
<div class="cards">
{{range .Stats}}<div class="card{{if .Bad}} bad{{end}}"><div class="label">{{.Label}}</div><div class="value">{{.Value}}</div></div>
{{end}}</div>
<div class="chart">{{.EquitySVG}}</div>
<div class="chart">{{.PnLSVG}}</div>
<h1>Recent Trades</h1>
<table>
<tr><th>Entry</th><th>Exit</th><th>Entry$</th><th>Exit$</th><th>P&amp;L</th><th>P&amp;L%</th><th>Equity</th><th class="reason">Reason</th></tr>
{{range .Recent}}<tr{{if .Loss}} class="loss"{{end}}><td>{{.Entry}}</td><td>{{.Exit}}</td><td>{{.EntryP}}</td><td>{{.ExitP}}</td><td>{{.PnL}}</td><td>{{.PnLPct}}</td><td>{{.Equity}}</td><td class="reason">{{.Reason}}</td></tr>
{{end}}</table>
{{end}}
</body></html>
`))
