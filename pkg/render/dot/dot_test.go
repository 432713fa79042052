package dot

import (
	"strings"
	"testing"

	"github.com/vizforge/vizforge/pkg/parse"
)

func TestToDOTShapesAndEdges(t *testing.T) {
	g := parse.Flowchart("Start\nCheck valid?\nYes: Accept\nNo: Reject\nEnd")
	out := ToDOT(g)

	if !strings.HasPrefix(out, "digraph G {") || !strings.HasSuffix(strings.TrimSpace(out), "}") {
		t.Fatalf("not a digraph: %q", out)
	}
	if !strings.Contains(out, "shape=diamond") {
		t.Error("decision nodes should render as diamonds")
	}
	if !strings.Contains(out, `label="Yes"`) || !strings.Contains(out, `label="No"`) {
		t.Error("branch labels should be carried onto edges")
	}
	if !strings.Contains(out, "rankdir=TB") {
		t.Error("layout direction must be top-to-bottom")
	}
}

func TestToDOTQuotesLabels(t *testing.T) {
	g := parse.Diagram(`Service "A" connects to Service "B"`)
	out := ToDOT(g)
	if strings.Contains(out, `label=Service`) {
		t.Error("labels must be quoted")
	}
	if !strings.Contains(out, `\"A\"`) {
		t.Errorf("embedded quotes must be escaped: %q", out)
	}
}

func TestToDOTEmptyGraph(t *testing.T) {
	g := parse.Diagram("")
	out := ToDOT(g)
	if !strings.Contains(out, "digraph G {") {
		t.Error("empty graph still yields a valid digraph shell")
	}
	if strings.Contains(out, "->") {
		t.Error("no edges expected")
	}
}
