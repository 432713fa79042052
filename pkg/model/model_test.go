package model

import "testing"

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"", KindAuto, false},
		{"auto", KindAuto, false},
		{"flowchart", KindFlowchart, false},
		{"diagram", KindDiagram, false},
		{"chart", KindChart, false},
		{"FLOWCHART", "", true},
		{"graph", "", true},
		{"pie", "", true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseKind(%q) expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseKind(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRoleString(t *testing.T) {
	if RoleProcess.String() != "process" || RoleDecision.String() != "decision" || RoleTerminal.String() != "terminal" {
		t.Error("role names must be stable, they are serialized")
	}
}

func TestGraphDedupByLabel(t *testing.T) {
	g := NewGraph()
	a := g.AddNode("Start", RoleTerminal)
	b := g.AddNode("  Start  ", RoleProcess) // whitespace collapses to same key
	if a != b {
		t.Errorf("same normalized label should map to same ID: %d vs %d", a, b)
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount = %d, want 1", g.NodeCount())
	}
	// First occurrence wins for role and display label.
	n, _ := g.Node(a)
	if n.Role != RoleTerminal || n.Label != "Start" {
		t.Errorf("first occurrence should win: %+v", n)
	}
}

func TestEntityGraphNormalization(t *testing.T) {
	g := NewEntityGraph()
	a := g.AddNode("The API Gateway", RoleProcess)
	b := g.AddNode("api gateway", RoleProcess)
	if a != b {
		t.Errorf("article-stripped case-folded labels should collide: %d vs %d", a, b)
	}
	n, _ := g.Node(a)
	if n.Label != "API Gateway" {
		t.Errorf("display label should keep first-seen casing minus article, got %q", n.Label)
	}
}

func TestEntityGraphEdgeDedup(t *testing.T) {
	g := NewEntityGraph()
	a := g.AddNode("A", RoleProcess)
	b := g.AddNode("B", RoleProcess)
	g.AddEdge(a, b, "")
	g.AddEdge(a, b, "")
	g.AddEdge(b, a, "")
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount = %d, want 2 (duplicate suppressed, reverse kept)", g.EdgeCount())
	}
}

func TestFlowGraphKeepsDuplicateEdges(t *testing.T) {
	g := NewGraph()
	a := g.AddNode("A", RoleProcess)
	b := g.AddNode("B", RoleProcess)
	g.AddEdge(a, b, EdgeYes)
	g.AddEdge(a, b, "")
	if g.EdgeCount() != 2 {
		t.Errorf("flowchart edges are not deduplicated, got %d", g.EdgeCount())
	}
}

func TestAddEdgeIgnoresMissingEndpoints(t *testing.T) {
	g := NewGraph()
	a := g.AddNode("A", RoleProcess)
	g.AddEdge(a, -1, "")
	g.AddEdge(-1, a, "")
	if g.EdgeCount() != 0 {
		t.Errorf("edges with invalid endpoints must be dropped, got %d", g.EdgeCount())
	}
}

func TestAddNodeEmptyLabel(t *testing.T) {
	g := NewEntityGraph()
	if id := g.AddNode("   ", RoleProcess); id != -1 {
		t.Errorf("blank label should not create a node, got id %d", id)
	}
}
