package layout

import (
	"math"

	"github.com/vizforge/vizforge/pkg/model"
)

// Radial canvas constants for relation diagrams.
const (
	DiagramWidth  = 1000.0
	DiagramHeight = 800.0

	EntityWidth  = 160.0 // drawn width of an entity box
	EntityHeight = 80.0  // drawn height of an entity box
)

// Point is a continuous position, the center of an entity box.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Radial is the computed relation-diagram layout: entity centers on a circle,
// keyed by node ID, plus the fixed canvas size.
type Radial struct {
	Centers map[int]Point `json:"centers"`
	Width   float64       `json:"width"`
	Height  float64       `json:"height"`
}

// Diagram places entities evenly around a circle, starting at the top and
// proceeding clockwise in insertion order. The layout depends only on node
// count and order, never on edge structure, so adding a relation between
// existing entities does not move anything.
func Diagram(g *model.Graph) Radial {
	r := Radial{
		Centers: make(map[int]Point, g.NodeCount()),
		Width:   DiagramWidth,
		Height:  DiagramHeight,
	}
	n := g.NodeCount()
	if n == 0 {
		return r
	}

	cx, cy := DiagramWidth/2, DiagramHeight/2
	radius := math.Min(DiagramWidth, DiagramHeight) / 2.5

	for i, node := range g.Nodes() {
		angle := 2*math.Pi*float64(i)/float64(n) - math.Pi/2
		r.Centers[node.ID] = Point{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		}
	}
	return r
}
