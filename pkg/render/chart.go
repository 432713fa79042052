package render

import (
	"bytes"
	"fmt"

	"github.com/vizforge/vizforge/pkg/layout"
	"github.com/vizforge/vizforge/pkg/model"
)

// Chart renders a bar chart: two axes, one rounded bar per series point, the
// label underneath and the value above each bar. An empty series yields an
// empty fragment.
func Chart(points []model.SeriesPoint, bars layout.Bars) []byte {
	if len(points) == 0 || len(bars.Bars) == 0 {
		return nil
	}

	var buf bytes.Buffer
	openSVG(&buf, bars.Width, bars.Height)

	baseline := bars.Height - layout.ChartPadding
	fmt.Fprintf(&buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke=%q stroke-width="3"/>`+"\n",
		layout.ChartPadding, baseline, bars.Width-layout.ChartPadding, baseline, colorInk)
	fmt.Fprintf(&buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke=%q stroke-width="3"/>`+"\n",
		layout.ChartPadding, layout.ChartPadding, layout.ChartPadding, baseline, colorInk)

	for i, p := range points {
		if i >= len(bars.Bars) {
			break
		}
		b := bars.Bars[i]
		fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill=%q stroke=%q stroke-width="2" rx="6" class="bar"/>`+"\n",
			b.X, b.Y, b.Width, b.Height, colorPrimary, colorPrimaryStroke)
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-size="14" font-weight="600" fill=%q>%s</text>`+"\n",
			b.X+b.Width/2, baseline+30, colorInk, escape(p.Label))
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-size="14" font-weight="bold" fill=%q>%s</text>`+"\n",
			b.X+b.Width/2, b.Y-10, colorInk, formatValue(p.Value))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// formatValue renders a bar's value without a trailing ".0" for whole numbers.
func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}
