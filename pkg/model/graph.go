package model

import (
	"regexp"
	"strings"
)

var (
	spaceRun       = regexp.MustCompile(`\s+`)
	leadingArticle = regexp.MustCompile(`(?i)^(the|a|an)\s+`)
)

// NormalizeLabel collapses runs of whitespace and trims the label.
// This is the identity key used to deduplicate flowchart nodes.
func NormalizeLabel(s string) string {
	return spaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

// NormalizeEntity strips a leading article ("the", "a", "an") after collapsing
// whitespace. Relation diagrams additionally compare entities case-insensitively,
// so "The API Gateway" and "api gateway" name the same node.
func NormalizeEntity(s string) string {
	return leadingArticle.ReplaceAllString(NormalizeLabel(s), "")
}

// Graph is an insertion-ordered node/edge collection for one compilation.
//
// Nodes are deduplicated by normalized label: the first AddNode call for a
// label creates the node and fixes its ID and display label; later calls with
// the same normalized label return the existing ID. The label→ID mapping is a
// bijection for the lifetime of the graph.
//
// The zero value is not usable - use NewGraph or NewEntityGraph.
// Graph is not safe for concurrent use, but compilations never share one.
type Graph struct {
	nodes   []Node
	edges   []Edge
	index   map[string]int // normalized label -> node ID
	nextID  int
	normal  func(string) string
	edgeSet map[Edge]bool // nil unless edge dedup is enabled
}

// NewGraph creates a flowchart graph: nodes dedup by whitespace-collapsed
// label, edges keep duplicates (same-pair edges with different labels are
// legitimate).
func NewGraph() *Graph {
	return &Graph{
		index:  make(map[string]int),
		normal: NormalizeLabel,
	}
}

// NewEntityGraph creates a relation-diagram graph: nodes dedup by
// article-stripped, case-folded label, and edges dedup by (from, to, label).
func NewEntityGraph() *Graph {
	return &Graph{
		index:   make(map[string]int),
		normal:  func(s string) string { return strings.ToLower(NormalizeEntity(s)) },
		edgeSet: make(map[Edge]bool),
	}
}

// AddNode returns the ID for the node with the given label, creating it with
// the given role on first sight. The display label of the first occurrence
// wins; later occurrences only resolve to the existing ID. Returns -1 for a
// label that normalizes to the empty string.
func (g *Graph) AddNode(label string, role Role) int {
	display := NormalizeLabel(label)
	if g.edgeSet != nil {
		// Entity graphs display the article-stripped form but keep the
		// original casing of the first occurrence.
		display = NormalizeEntity(label)
	}
	key := g.normal(label)
	if key == "" {
		return -1
	}
	if id, ok := g.index[key]; ok {
		return id
	}
	id := g.nextID
	g.nextID++
	g.index[key] = id
	g.nodes = append(g.nodes, Node{ID: id, Label: display, Role: role})
	return id
}

// RebuildGraph reconstructs a Graph from a serialized node/edge listing,
// such as a cached model. Kind selects the dedup discipline so nodes added
// afterwards behave the same as in the original compilation.
func RebuildGraph(kind Kind, nodes []Node, edges []Edge) *Graph {
	g := NewGraph()
	if kind == KindDiagram {
		g = NewEntityGraph()
	}
	for _, n := range nodes {
		g.nodes = append(g.nodes, n)
		g.index[g.normal(n.Label)] = n.ID
		if n.ID >= g.nextID {
			g.nextID = n.ID + 1
		}
	}
	for _, e := range edges {
		if g.edgeSet != nil {
			g.edgeSet[e] = true
		}
		g.edges = append(g.edges, e)
	}
	return g
}

// Lookup returns the ID for a previously added label, or -1 if unknown.
func (g *Graph) Lookup(label string) int {
	if id, ok := g.index[g.normal(label)]; ok {
		return id
	}
	return -1
}

// AddEdge appends a directed edge. Entity graphs suppress duplicates by the
// (from, to, label) triple; flowchart graphs append unconditionally.
// Edges with a negative endpoint are ignored.
func (g *Graph) AddEdge(from, to int, label string) {
	if from < 0 || to < 0 {
		return
	}
	e := Edge{From: from, To: to, Label: label}
	if g.edgeSet != nil {
		if g.edgeSet[e] {
			return
		}
		g.edgeSet[e] = true
	}
	g.edges = append(g.edges, e)
}

// HasEdge reports whether an edge from→to exists with any label.
func (g *Graph) HasEdge(from, to int) bool {
	for _, e := range g.edges {
		if e.From == from && e.To == to {
			return true
		}
	}
	return false
}

// Node returns the node with the given ID and true, or a zero Node and false.
func (g *Graph) Node(id int) (Node, bool) {
	if id < 0 || id >= len(g.nodes) {
		return Node{}, false
	}
	return g.nodes[id], true
}

// SetRole overwrites the role of an existing node.
// Used when a later line reveals a node is a decision rather than a process.
func (g *Graph) SetRole(id int, role Role) {
	if id >= 0 && id < len(g.nodes) {
		g.nodes[id].Role = role
	}
}

// Nodes returns the nodes in insertion order.
// The returned slice is the graph's backing store; callers must not modify it.
func (g *Graph) Nodes() []Node { return g.nodes }

// Edges returns the edges in insertion order.
// The returned slice is the graph's backing store; callers must not modify it.
func (g *Graph) Edges() []Edge { return g.edges }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Children returns, in edge insertion order, the outgoing edges of a node.
func (g *Graph) Children(id int) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.From == id {
			out = append(out, e)
		}
	}
	return out
}

// Targets returns the set of node IDs that appear as an edge target.
func (g *Graph) Targets() map[int]bool {
	t := make(map[int]bool, len(g.edges))
	for _, e := range g.edges {
		t[e.To] = true
	}
	return t
}
