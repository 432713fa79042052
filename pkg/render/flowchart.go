package render

import (
	"bytes"
	"fmt"

	"github.com/vizforge/vizforge/pkg/layout"
	"github.com/vizforge/vizforge/pkg/model"
)

const flowMarker = "arrowhead-flow"

// Flowchart renders a flowchart graph at its grid positions.
// Edges are drawn first so nodes paint over them part-way; connectors are
// elbow-routed (vertical-horizontal-vertical) and Yes/No edges carry a small
// label badge at the connector midpoint. An empty graph yields an empty
// fragment.
func Flowchart(g *model.Graph, grid layout.Grid) []byte {
	if g.NodeCount() == 0 {
		return nil
	}

	var buf bytes.Buffer
	openSVG(&buf, grid.Width, grid.Height)
	writeArrowDefs(&buf, flowMarker)

	for _, e := range g.Edges() {
		from, okF := grid.Cells[e.From]
		to, okT := grid.Cells[e.To]
		if !okF || !okT {
			continue
		}
		fromNode, _ := g.Node(e.From)
		writeFlowEdge(&buf, fromNode, e, from, to, grid)
	}

	for _, n := range g.Nodes() {
		cell, ok := grid.Cells[n.ID]
		if !ok {
			continue
		}
		writeFlowNode(&buf, n, cell, grid)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// writeFlowNode emits the shape for one node: a diamond for decisions, a pill
// for terminals, a rounded rectangle for process steps.
func writeFlowNode(buf *bytes.Buffer, n model.Node, cell layout.Cell, grid layout.Grid) {
	x, y := grid.NodeOrigin(cell)
	w, h := layout.NodeWidth, layout.NodeHeight

	buf.WriteString("  <g class=\"node\">\n")
	switch n.Role {
	case model.RoleDecision:
		fmt.Fprintf(buf, `    <polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f" fill=%q stroke=%q stroke-width="2.5"/>`+"\n",
			x+w/2, y, x+w, y+h/2, x+w/2, y+h, x, y+h/2,
			colorDecision, colorDecisionEdge)
	case model.RoleTerminal:
		fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="35" fill=%q stroke=%q stroke-width="2.5"/>`+"\n",
			x, y, w, h, colorTerminal, colorTerminalEdge)
	default:
		fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="10" fill=%q stroke=%q stroke-width="2.5"/>`+"\n",
			x, y, w, h, colorPrimary, colorPrimaryStroke)
	}
	writeCenteredText(buf, x+w/2, y+h/2, 14, "white", n.Label)
	buf.WriteString("  </g>\n")
}

// writeFlowEdge emits an elbow connector from one cell to another.
// Decision sources exit sideways (Yes right, No left); everything else exits
// from the bottom center. Targets are always entered at the top center.
func writeFlowEdge(buf *bytes.Buffer, fromNode model.Node, e model.Edge, from, to layout.Cell, grid layout.Grid) {
	fx, fy := grid.NodeOrigin(from)
	tx, ty := grid.NodeOrigin(to)
	w, h := layout.NodeWidth, layout.NodeHeight

	if fromNode.Role == model.RoleDecision {
		switch e.Label {
		case model.EdgeNo:
			fy += h / 2 // left vertex of the diamond
		case model.EdgeYes:
			fx += w
			fy += h / 2 // right vertex
		default:
			fx += w / 2
			fy += h // bottom vertex
		}
	} else {
		fx += w / 2
		fy += h // bottom center
	}
	tx += w / 2

	midY := (fy + ty) / 2
	fmt.Fprintf(buf, `  <path d="M %.1f %.1f L %.1f %.1f L %.1f %.1f L %.1f %.1f" stroke=%q stroke-width="2.5" fill="none" marker-end="url(#%s)" class="connection"/>`+"\n",
		fx, fy, fx, midY, tx, midY, tx, ty, colorPrimary, flowMarker)

	if e.Label != "" {
		lx := (fx+tx)/2 + 15
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="40" height="24" fill="white" stroke=%q stroke-width="1.5" rx="4"/>`+"\n",
			lx-20, midY-12, colorPrimary)
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-size="12" font-weight="bold" fill=%q>%s</text>`+"\n",
			lx, midY+4, colorPrimary, escape(e.Label))
	}
}
