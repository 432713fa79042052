package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/vizforge/vizforge/pkg/layout"
	"github.com/vizforge/vizforge/pkg/model"
)

const diagramMarker = "arrowhead-diagram"

// Diagram renders a relation diagram at its radial positions: rounded filled
// rectangles connected by straight lines clipped to each box's border, with
// arrowheads at the target end. An empty graph yields an empty fragment.
func Diagram(g *model.Graph, r layout.Radial) []byte {
	if g.NodeCount() == 0 {
		return nil
	}

	var buf bytes.Buffer
	openSVG(&buf, r.Width, r.Height)
	writeArrowDefs(&buf, diagramMarker)

	for _, e := range g.Edges() {
		from, okF := r.Centers[e.From]
		to, okT := r.Centers[e.To]
		if !okF || !okT {
			continue
		}
		start := borderPoint(from, layout.EntityWidth, layout.EntityHeight, to)
		end := borderPoint(to, layout.EntityWidth, layout.EntityHeight, from)
		fmt.Fprintf(&buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke=%q stroke-width="2.5" marker-end="url(#%s)"/>`+"\n",
			start.X, start.Y, end.X, end.Y, colorPrimary, diagramMarker)
	}

	for _, n := range g.Nodes() {
		c, ok := r.Centers[n.ID]
		if !ok {
			continue
		}
		x := c.X - layout.EntityWidth/2
		y := c.Y - layout.EntityHeight/2
		buf.WriteString("  <g class=\"node\">\n")
		fmt.Fprintf(&buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="12" fill=%q stroke=%q stroke-width="2.5"/>`+"\n",
			x, y, layout.EntityWidth, layout.EntityHeight, colorPrimary, colorPrimaryStroke)
		writeCenteredText(&buf, c.X, c.Y, 14, "white", n.Label)
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// borderPoint returns the point where the ray from a box's center toward the
// target crosses the box border. The offset vector is scaled by whichever
// axis ratio (|dx|/halfwidth vs |dy|/halfheight) is larger, so the returned
// point lies on the rectangle's edge instead of inside or beyond it.
func borderPoint(center layout.Point, w, h float64, target layout.Point) layout.Point {
	dx := target.X - center.X
	dy := target.Y - center.Y
	if dx == 0 && dy == 0 {
		return center
	}

	var scale float64
	if math.Abs(dx)/(w/2) > math.Abs(dy)/(h/2) {
		scale = (w / 2) / math.Abs(dx)
	} else {
		scale = (h / 2) / math.Abs(dy)
	}
	return layout.Point{X: center.X + dx*scale, Y: center.Y + dy*scale}
}
