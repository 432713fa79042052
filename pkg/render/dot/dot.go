// Package dot exports parsed graphs as Graphviz DOT source and renders that
// source in-process with go-graphviz.
//
// This is the alternative output path for relation diagrams and flowcharts:
// the built-in SVG renderer owns the deterministic house layout, while DOT
// output hands layout to Graphviz for consumers that want to post-process the
// graph with external tooling or need a raster (PNG) artifact.
package dot

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/vizforge/vizforge/pkg/model"
)

// ToDOT converts a graph to Graphviz DOT source.
// Flowchart roles map to Graphviz shapes: diamonds for decisions, rounded
// boxes for terminals, plain boxes for process steps and entities. Yes/No
// branch labels are carried onto the edges.
func ToDOT(g *model.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  n%d [label=%q%s];\n", n.ID, n.Label, shapeAttrs(n.Role))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if e.Label != "" {
			fmt.Fprintf(&buf, "  n%d -> n%d [label=%q];\n", e.From, e.To, e.Label)
			continue
		}
		fmt.Fprintf(&buf, "  n%d -> n%d;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func shapeAttrs(r model.Role) string {
	switch r {
	case model.RoleDecision:
		return `, shape=diamond, style=filled, fillcolor="#fdecea"`
	case model.RoleTerminal:
		return `, shape=box, style="rounded,filled", fillcolor="#e9f7ef"`
	default:
		return `, shape=box, style="rounded,filled", fillcolor=white`
	}
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders DOT source to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
