package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alejandrodnm/tradedash/internal/domain"
	"github.com/alejandrodnm/tradedash/internal/ports"
)

// Result es el producto de una carga completa: la sesión inmutable y sus
// métricas. Los consumidores (renderers, servidor) solo leen.
type Result struct {
	Session *domain.Session
	Summary domain.Summary
}

// Dashboard es el orquestador del pipeline: source → métricas → renderers.
type Dashboard struct {
	source    ports.DatasetSource
	renderers []ports.Renderer
}

// New crea un Dashboard con las dependencias inyectadas.
func New(source ports.DatasetSource, renderers ...ports.Renderer) *Dashboard {
	return &Dashboard{source: source, renderers: renderers}
}

// Run ejecuta una carga completa. Si los datasets no están disponibles
// devuelve (nil, nil): el sistema queda idle sin error visible — la
// ausencia de dashboard es el único efecto observable. Un error de un
// renderer individual se loguea y no corta a los demás.
func (d *Dashboard) Run(ctx context.Context) (*Result, error) {
	res, err := d.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard.Run: load datasets: %w", err)
	}
	if !res.Found {
		return nil, nil
	}

	sum := domain.ComputeMetrics(res.Session.Trades)
	if sum.Empty {
		slog.Warn("dataset loaded but contains zero trades", "run_id", res.Session.ID)
	} else {
		slog.Info("metrics computed",
			"run_id", res.Session.ID,
			"trades", sum.TotalTrades,
			"total_pnl", fmt.Sprintf("%.2f", sum.TotalPnL),
			"win_rate_pct", fmt.Sprintf("%.2f", sum.WinRatePct),
			"profit_factor", fmt.Sprintf("%.2f", sum.ProfitFactor),
			"max_drawdown_pct", fmt.Sprintf("%.2f", sum.MaxDrawdownPct),
		)
	}

	for _, r := range d.renderers {
		if err := r.Render(ctx, res.Session, sum); err != nil {
			slog.Warn("renderer failed", "err", err)
		}
	}

	return &Result{Session: res.Session, Summary: sum}, nil
}
