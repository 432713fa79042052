package layout

import (
	"github.com/vizforge/vizforge/pkg/model"
)

// Bar canvas constants for charts.
const (
	ChartWidth   = 1000.0
	ChartHeight  = 700.0
	ChartPadding = 100.0
)

// Bar is one chart bar in pixel coordinates. Y is the top of the bar; the
// baseline sits at ChartHeight-ChartPadding.
type Bar struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bars is the computed chart layout: one bar per series point, in series
// order, plus the fixed canvas size.
type Bars struct {
	Bars   []Bar   `json:"bars"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Chart spaces bars evenly across the canvas, each bar's height proportional
// to value/max(value). A series whose maximum is zero (or negative) renders
// as zero-height bars; the guard keeps the degenerate all-zero case from
// dividing by zero.
func Chart(points []model.SeriesPoint) Bars {
	out := Bars{Width: ChartWidth, Height: ChartHeight}
	n := len(points)
	if n == 0 {
		return out
	}

	plotWidth := ChartWidth - 2*ChartPadding
	plotHeight := ChartHeight - 2*ChartPadding

	maxValue := 0.0
	for _, p := range points {
		if p.Value > maxValue {
			maxValue = p.Value
		}
	}

	barWidth := plotWidth / float64(n) * 0.7
	spacing := plotWidth / float64(n) * 0.3

	out.Bars = make([]Bar, n)
	for i, p := range points {
		height := 0.0
		if maxValue > 0 {
			height = p.Value / maxValue * plotHeight
		}
		x := ChartPadding + float64(i)*(barWidth+spacing) + spacing/2
		out.Bars[i] = Bar{
			X:      x,
			Y:      ChartHeight - ChartPadding - height,
			Width:  barWidth,
			Height: height,
		}
	}
	return out
}
