package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/vizforge/vizforge/pkg/classify"
	"github.com/vizforge/vizforge/pkg/compose"
	vferrors "github.com/vizforge/vizforge/pkg/errors"
	"github.com/vizforge/vizforge/pkg/layout"
	"github.com/vizforge/vizforge/pkg/model"
	"github.com/vizforge/vizforge/pkg/observability"
	"github.com/vizforge/vizforge/pkg/parse"
	"github.com/vizforge/vizforge/pkg/render"
	"github.com/vizforge/vizforge/pkg/render/dot"
)

// Model is the parsed intermediate representation of one compilation.
// Flowcharts and diagrams populate Nodes/Edges; charts populate Series.
// The JSON encoding of this struct is both the "json" output format and
// the model cache payload.
type Model struct {
	Kind   model.Kind          `json:"kind"`
	Nodes  []model.Node        `json:"nodes,omitempty"`
	Edges  []model.Edge        `json:"edges,omitempty"`
	Series []model.SeriesPoint `json:"series,omitempty"`
}

// Graph reconstructs the node/edge graph. Returns nil for charts.
func (m *Model) Graph() *model.Graph {
	if m.Kind == model.KindChart {
		return nil
	}
	return model.RebuildGraph(m.Kind, m.Nodes, m.Edges)
}

// Empty reports whether the model has nothing to draw.
func (m *Model) Empty() bool {
	if m.Kind == model.KindChart {
		return len(m.Series) == 0
	}
	return len(m.Nodes) == 0
}

// MarshalModel produces the canonical JSON encoding of a model.
func MarshalModel(m *Model) ([]byte, error) {
	return json.Marshal(m)
}

// UnmarshalModel decodes a model from its canonical encoding.
func UnmarshalModel(data []byte) (*Model, error) {
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// BuildModel parses text into a model of the given concrete kind.
// The text must already be classified (and redacted, if requested).
func BuildModel(kind model.Kind, text string) (*Model, error) {
	m := &Model{Kind: kind}
	switch kind {
	case model.KindFlowchart:
		g := parse.Flowchart(text)
		m.Nodes, m.Edges = g.Nodes(), g.Edges()
	case model.KindDiagram:
		g := parse.Diagram(text)
		m.Nodes, m.Edges = g.Nodes(), g.Edges()
	case model.KindChart:
		m.Series = parse.Chart(text)
	default:
		return nil, vferrors.New(vferrors.ErrCodeInvalidKind, "cannot build model for kind %q", kind)
	}
	return m, nil
}

// Classify resolves the concrete kind for the text, honoring the hint.
func Classify(text string, hint model.Kind) model.Kind {
	return classify.Classify(text, hint)
}

// Render generates output artifacts in the requested formats.
// The layout is computed once per call and shared by all formats.
func Render(ctx context.Context, m *Model, opts Options) (map[string][]byte, error) {
	if err := ValidateFormatsFor(m.Kind, opts.Formats); err != nil {
		return nil, err
	}

	layoutStart := time.Now()
	observability.Compile().OnLayoutStart(ctx, m.Kind.String(), len(m.Nodes))
	fragment := renderFragment(m, opts)
	observability.Compile().OnLayoutComplete(ctx, m.Kind.String(), time.Since(layoutStart), nil)

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = fragment
		case FormatHTML:
			data, err = compose.Document(m.Kind, fragment)
		case FormatJSON:
			data, err = MarshalModel(m)
		case FormatDOT:
			data = []byte(dot.ToDOT(m.Graph()))
		case FormatPNG:
			data, err = dot.RenderPNG(ctx, dot.ToDOT(m.Graph()))
		default:
			return nil, vferrors.New(vferrors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, vferrors.Wrap(vferrors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderFragment computes the layout and renders the SVG fragment.
func renderFragment(m *Model, opts Options) []byte {
	switch m.Kind {
	case model.KindFlowchart:
		g := m.Graph()
		grid := layout.Flowchart(g)
		applyCanvas(&grid.Width, &grid.Height, opts)
		return render.Flowchart(g, grid)
	case model.KindDiagram:
		g := m.Graph()
		radial := layout.Diagram(g)
		applyCanvas(&radial.Width, &radial.Height, opts)
		return render.Diagram(g, radial)
	case model.KindChart:
		bars := layout.Chart(m.Series)
		applyCanvas(&bars.Width, &bars.Height, opts)
		return render.Chart(m.Series, bars)
	}
	return nil
}

// applyCanvas overrides the layout's canvas size when the caller asked for
// explicit dimensions.
func applyCanvas(width, height *float64, opts Options) {
	if opts.Width > 0 {
		*width = float64(opts.Width)
	}
	if opts.Height > 0 {
		*height = float64(opts.Height)
	}
}
