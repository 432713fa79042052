package parse_test

import (
	"fmt"

	"github.com/vizforge/vizforge/pkg/parse"
)

func ExampleFlowchart() {
	// Sequential lines chain into a single path
	g := parse.Flowchart("Start\nProcess data\nEnd")

	fmt.Println("nodes:", g.NodeCount())
	fmt.Println("edges:", g.EdgeCount())
	// Output:
	// nodes: 3
	// edges: 2
}

func ExampleChart() {
	// Malformed lines are skipped, order is preserved
	points := parse.Chart("Q1: 1000\nQ2: 2000\nnot a number\nQ3: 3000")

	for _, p := range points {
		fmt.Printf("%s=%.0f\n", p.Label, p.Value)
	}
	// Output:
	// Q1=1000
	// Q2=2000
	// Q3=3000
}

func ExampleDiagram() {
	// Reversed repeats do not duplicate nodes
	g := parse.Diagram("A connects to B\nB connects to A")

	fmt.Println("nodes:", g.NodeCount())
	fmt.Println("edges:", g.EdgeCount())
	// Output:
	// nodes: 2
	// edges: 2
}
