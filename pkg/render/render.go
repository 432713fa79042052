// Package render turns laid-out models into self-contained SVG fragments.
//
// Each artifact kind has its own walker over nodes, edges (or bars) and their
// layout coordinates, emitting shape elements, elbow or straight connector
// paths with arrowhead markers, and centered text labels. The returned
// fragment is a complete <svg> element that composes inside the document
// shell produced by package compose; an empty model renders to an empty
// fragment, never an error.
package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Palette shared by the three renderers.
const (
	colorPrimary       = "#667eea" // process fill, connectors, bars
	colorPrimaryStroke = "#5568d3"
	colorDecision      = "#e74c3c"
	colorDecisionEdge  = "#c0392b"
	colorTerminal      = "#27ae60"
	colorTerminalEdge  = "#229954"
	colorInk           = "#2c3e50" // axes and chart text
)

// escape returns s with XML-special characters escaped for use in attribute
// values and text content.
func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// openSVG writes the opening <svg> tag for a canvas of the given size.
func openSVG(buf *bytes.Buffer, width, height float64) {
	fmt.Fprintf(buf, `<svg width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" xmlns="http://www.w3.org/2000/svg">`+"\n",
		width, height, width, height)
}

// writeArrowDefs writes the <defs> block with an arrowhead marker.
// The marker id must be unique per fragment so documents embedding several
// fragments do not cross-reference markers.
func writeArrowDefs(buf *bytes.Buffer, markerID string) {
	fmt.Fprintf(buf, `  <defs>
    <marker id=%q markerWidth="10" markerHeight="10" refX="9" refY="3" orient="auto">
      <polygon points="0 0, 10 3, 0 6" fill=%q/>
    </marker>
  </defs>
`, markerID, colorPrimary)
}

// writeCenteredText writes a text label centered at (x, y).
func writeCenteredText(buf *bytes.Buffer, x, y float64, size int, fill, text string) {
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle" fill=%q font-size="%d" font-weight="600">%s</text>`+"\n",
		x, y, fill, size, escape(text))
}
