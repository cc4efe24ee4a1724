package render

// svg.go — generador mínimo de SVG para los dos charts del dashboard:
// la curva de equity (polyline, x = índice de muestra) y las barras de
// P&L por trade coloreadas por signo. Sin dependencias de charting: el
// artefacto es un HTML estático autocontenido.

import (
	"bytes"
	"fmt"

	"github.com/alejandrodnm/tradedash/internal/domain"
)

const (
	marginLeft   = 40
	marginTop    = 20
	marginRight  = 40
	marginBottom = 40

	colorBG   = "#0b0f17"
	colorAxis = "#1f2837"
	colorLine = "#59a6ff"
	colorWin  = "#8bff9b"
	colorLoss = "#ff7a7a"
	colorText = "#e6edf3"
)

// equityChartSVG dibuja la curva de equity como polyline. El eje x es la
// posición de cada muestra en la serie.
func equityChartSVG(points []domain.EquityPoint, w, h int) string {
	var b bytes.Buffer
	svgOpen(&b, w, h, "Equity Curve")

	if len(points) < 2 {
		svgNoData(&b, w, h)
		b.WriteString("</svg>")
		return b.String()
	}

	minY, maxY := points[0].Equity, points[0].Equity
	for _, p := range points {
		if p.Equity < minY {
			minY = p.Equity
		}
		if p.Equity > maxY {
			maxY = p.Equity
		}
	}

	plotW := float64(w - marginLeft - marginRight)
	plotH := float64(h - marginTop - marginBottom)
	sx := plotW / float64(len(points)-1)
	sy := plotH / (maxY - minY + 1e-9)

	fmt.Fprintf(&b, "<polyline fill='none' stroke='%s' stroke-width='1.5' points='", colorLine)
	for i, p := range points {
		x := float64(marginLeft) + float64(i)*sx
		y := float64(marginTop) + plotH - (p.Equity-minY)*sy
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.2f,%.2f", x, y)
	}
	b.WriteString("'/>")

	// etiquetas min/max del eje y
	fmt.Fprintf(&b, "<text x='4' y='%d' fill='%s' font-size='10'>%.0f</text>", marginTop+8, colorText, maxY)
	fmt.Fprintf(&b, "<text x='4' y='%d' fill='%s' font-size='10'>%.0f</text>", h-marginBottom, colorText, minY)

	b.WriteString("</svg>")
	return b.String()
}

// pnlBarsSVG dibuja una barra por trade, verde para ganadores y rojo para
// perdedores (la clasificación es solo estilo de presentación).
func pnlBarsSVG(trades []domain.TradeRecord, w, h int) string {
	var b bytes.Buffer
	svgOpen(&b, w, h, "Trade P&L")

	if len(trades) == 0 {
		svgNoData(&b, w, h)
		b.WriteString("</svg>")
		return b.String()
	}

	var minY, maxY float64
	for _, t := range trades {
		if t.PnL < minY {
			minY = t.PnL
		}
		if t.PnL > maxY {
			maxY = t.PnL
		}
	}

	plotW := float64(w - marginLeft - marginRight)
	plotH := float64(h - marginTop - marginBottom)
	sy := plotH / (maxY - minY + 1e-9)
	zeroY := float64(marginTop) + plotH - (0-minY)*sy

	barW := plotW / float64(len(trades))
	if barW > 18 {
		barW = 18
	}

	// línea de cero
	fmt.Fprintf(&b, "<line x1='%d' y1='%.2f' x2='%d' y2='%.2f' stroke='%s'/>",
		marginLeft, zeroY, w-marginRight, zeroY, colorAxis)

	for i, t := range trades {
		x := float64(marginLeft) + (float64(i)+0.1)*plotW/float64(len(trades))
		color := colorWin
		y := float64(marginTop) + plotH - (t.PnL-minY)*sy
		height := zeroY - y
		if t.PnL <= 0 {
			color = colorLoss
			y = zeroY
			height = (float64(marginTop) + plotH - (t.PnL-minY)*sy) - zeroY
		}
		if height < 0.5 {
			height = 0.5
		}
		fmt.Fprintf(&b, "<rect x='%.2f' y='%.2f' width='%.2f' height='%.2f' fill='%s'/>",
			x, y, barW*0.8, height, color)
	}

	b.WriteString("</svg>")
	return b.String()
}

func svgOpen(b *bytes.Buffer, w, h int, title string) {
	fmt.Fprintf(b, "<svg xmlns='http://www.w3.org/2000/svg' width='%d' height='%d' viewBox='0 0 %d %d'>", w, h, w, h)
	fmt.Fprintf(b, "<rect width='100%%' height='100%%' fill='%s'/>", colorBG)
	fmt.Fprintf(b, "<line x1='%d' y1='%d' x2='%d' y2='%d' stroke='%s'/>",
		marginLeft, h-marginBottom, w-marginRight, h-marginBottom, colorAxis)
	fmt.Fprintf(b, "<line x1='%d' y1='%d' x2='%d' y2='%d' stroke='%s'/>",
		marginLeft, marginTop, marginLeft, h-marginBottom, colorAxis)
	fmt.Fprintf(b, "<text x='16' y='14' fill='%s' font-size='13'>%s</text>", colorText, title)
}

func svgNoData(b *bytes.Buffer, w, h int) {
	fmt.Fprintf(b, "<text x='%d' y='%d' fill='%s' font-size='14'>no data</text>", w/2-30, h/2, colorText)
}
