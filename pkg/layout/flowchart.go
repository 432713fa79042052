// Package layout assigns deterministic coordinates to parsed models.
//
// Layout is a pure function of the model: flowcharts get integer grid cells
// via breadth-first traversal with branch-aware column offsets, relation
// diagrams get radial positions, charts get evenly spaced bars. No layout
// owns state beyond its own compilation, and every degenerate input (empty
// graph, all-zero series) produces a well-formed empty result rather than an
// arithmetic fault.
package layout

import (
	"github.com/vizforge/vizforge/pkg/model"
)

// Grid cell pitch and canvas constants for flowcharts.
const (
	CellWidth  = 220.0 // horizontal pitch between grid columns
	CellHeight = 140.0 // vertical pitch between grid rows
	GridMargin = 100.0 // outer margin around the grid

	NodeWidth  = 180.0 // drawn width of a flowchart node
	NodeHeight = 70.0  // drawn height of a flowchart node

	minGridWidth  = 1200.0
	minGridHeight = 800.0
)

// Cell is one flowchart grid position. Columns grow rightward, rows downward.
type Cell struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Grid is the computed flowchart layout: one cell per node, plus the canvas
// size in pixels. Cells is keyed by node ID and covers every node exactly
// once, including nodes unreachable from the start.
type Grid struct {
	Cells  map[int]Cell `json:"cells"`
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
}

// NodeOrigin returns the top-left pixel corner of a node's cell.
func (g Grid) NodeOrigin(c Cell) (x, y float64) {
	return GridMargin + float64(c.Col)*CellWidth, GridMargin + float64(c.Row)*CellHeight
}

// Flowchart assigns grid cells to every node of a flowchart graph.
//
// The traversal starts at the first node that is never an edge target (or the
// first node overall when every node is targeted) and walks breadth-first. A
// decision with both a Yes and a No child diverges them side by side at
// (col+1, row+1) and (col-1, row+1); single children stay in their parent's
// column; a non-decision with several children alternates ±1 column offsets.
// Nodes the traversal never reaches are stacked below the deepest row so that
// every node ends up with exactly one cell. Columns are then shifted so the
// minimum is zero.
//
// Runs in O(N+E); each node is visited at most once.
func Flowchart(g *model.Graph) Grid {
	grid := Grid{Cells: make(map[int]Cell, g.NodeCount())}
	if g.NodeCount() == 0 {
		grid.Width, grid.Height = minGridWidth, minGridHeight
		return grid
	}

	start := startNode(g)

	type visit struct {
		id       int
		col, row int
	}
	queue := []visit{{id: start, col: 0, row: 0}}
	maxRow := 0

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if _, seen := grid.Cells[cur.id]; seen {
			continue
		}
		grid.Cells[cur.id] = Cell{Col: cur.col, Row: cur.row}
		if cur.row > maxRow {
			maxRow = cur.row
		}

		node, _ := g.Node(cur.id)
		children := g.Children(cur.id)

		if node.Role == model.RoleDecision && len(children) > 0 {
			yes, no := branchTargets(children)
			if yes >= 0 && no >= 0 {
				queue = append(queue,
					visit{id: yes, col: cur.col + 1, row: cur.row + 1},
					visit{id: no, col: cur.col - 1, row: cur.row + 1},
				)
				continue
			}
			if len(children) == 1 {
				queue = append(queue, visit{id: children[0].To, col: cur.col, row: cur.row + 1})
				continue
			}
			for i, e := range children {
				off := 1
				if i%2 == 1 {
					off = -1
				}
				queue = append(queue, visit{id: e.To, col: cur.col + off, row: cur.row + 1})
			}
			continue
		}

		if len(children) == 1 {
			queue = append(queue, visit{id: children[0].To, col: cur.col, row: cur.row + 1})
			continue
		}
		for i, e := range children {
			off := 1
			if i%2 == 1 {
				off = -1
			}
			queue = append(queue, visit{id: e.To, col: cur.col + off, row: cur.row + 1})
		}
	}

	// Disconnected nodes stack below the traversed rows, one per row.
	for _, n := range g.Nodes() {
		if _, ok := grid.Cells[n.ID]; !ok {
			maxRow++
			grid.Cells[n.ID] = Cell{Col: 0, Row: maxRow}
		}
	}

	normalizeColumns(grid.Cells)

	maxCol := 0
	for _, c := range grid.Cells {
		if c.Col > maxCol {
			maxCol = c.Col
		}
		if c.Row > maxRow {
			maxRow = c.Row
		}
	}
	grid.Width = max(minGridWidth, float64(maxCol+1)*CellWidth+2*GridMargin)
	grid.Height = max(minGridHeight, float64(maxRow+1)*CellHeight+2*GridMargin)
	return grid
}

// startNode picks the traversal root: the first node that never appears as an
// edge target, falling back to the first node of a fully cyclic graph.
func startNode(g *model.Graph) int {
	targets := g.Targets()
	for _, n := range g.Nodes() {
		if !targets[n.ID] {
			return n.ID
		}
	}
	return g.Nodes()[0].ID
}

// branchTargets returns the Yes and No edge targets among a decision's
// children, -1 for a missing branch.
func branchTargets(children []model.Edge) (yes, no int) {
	yes, no = -1, -1
	for _, e := range children {
		switch e.Label {
		case model.EdgeYes:
			yes = e.To
		case model.EdgeNo:
			no = e.To
		}
	}
	return yes, no
}

// normalizeColumns shifts all cells so the minimum column is zero.
func normalizeColumns(cells map[int]Cell) {
	minCol := 0
	for _, c := range cells {
		if c.Col < minCol {
			minCol = c.Col
		}
	}
	if minCol == 0 {
		return
	}
	for id, c := range cells {
		c.Col -= minCol
		cells[id] = c
	}
}
