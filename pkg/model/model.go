// Package model defines the data model shared by the VizForge pipeline.
//
// A compilation produces one of three artifact kinds (flowchart, relation
// diagram, bar chart). Flowcharts and relation diagrams are represented as a
// [Graph] of typed nodes and labeled edges; charts are an ordered slice of
// [SeriesPoint] values.
//
// All model values are created fresh per compilation and are never shared or
// mutated across compilations. Node identifiers come from a counter owned by
// the Graph, so concurrent compilations are fully isolated.
package model

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is returned by [ParseKind] when the input is not one of the
// three kind literals or "auto". An explicit kind outside the known set is a
// caller contract violation, never silently defaulted.
var ErrUnknownKind = errors.New("unknown diagram kind")

// Kind identifies the top-level output variant of a compilation.
// The string values are part of the public contract: they are returned to
// callers as a tag and must remain stable.
type Kind string

const (
	// KindAuto asks the classifier to pick a kind from the text.
	KindAuto Kind = "auto"
	// KindFlowchart is a directed flow of process/decision/terminal steps.
	KindFlowchart Kind = "flowchart"
	// KindDiagram is a relation diagram of plain entities.
	KindDiagram Kind = "diagram"
	// KindChart is a bar chart of labeled numeric values.
	KindChart Kind = "chart"
)

// IsConcrete reports whether the kind names an actual artifact variant
// (anything but KindAuto).
func (k Kind) IsConcrete() bool {
	return k == KindFlowchart || k == KindDiagram || k == KindChart
}

// String returns the stable string literal for the kind.
func (k Kind) String() string { return string(k) }

// ParseKind validates a kind literal received from a caller.
// An empty string maps to KindAuto. Returns ErrUnknownKind for anything
// outside the four known literals.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case "", KindAuto:
		return KindAuto, nil
	case KindFlowchart, KindDiagram, KindChart:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Role classifies a flowchart node's shape and meaning.
// Relation-diagram nodes ignore the role (all entities are plain).
type Role int

const (
	// RoleProcess is a regular step, drawn as a rectangle.
	RoleProcess Role = iota
	// RoleDecision is a branching condition, drawn as a diamond.
	RoleDecision
	// RoleTerminal is a start/end step, drawn as a pill.
	RoleTerminal
)

// String returns the lowercase role name.
func (r Role) String() string {
	switch r {
	case RoleDecision:
		return "decision"
	case RoleTerminal:
		return "terminal"
	default:
		return "process"
	}
}

// MarshalText implements encoding.TextMarshaler for JSON output.
func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(b []byte) error {
	switch string(b) {
	case "process", "":
		*r = RoleProcess
	case "decision":
		*r = RoleDecision
	case "terminal":
		*r = RoleTerminal
	default:
		return fmt.Errorf("unknown node role %q", b)
	}
	return nil
}

// Edge labels carried by flowchart decision branches.
const (
	EdgeYes = "Yes"
	EdgeNo  = "No"
)

// Node is a vertex in a flowchart or relation diagram.
// The ID is a compilation-local synthetic identifier; it is assigned once by
// [Graph.AddNode] and never reused or mutated.
type Node struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
	Role  Role   `json:"role"`
}

// Edge is a directed connection between two nodes, identified by node IDs.
// Label is empty for plain edges, or EdgeYes/EdgeNo for decision branches.
type Edge struct {
	From  int    `json:"from"`
	To    int    `json:"to"`
	Label string `json:"label,omitempty"`
}

// SeriesPoint is a single bar in a chart: a label and its numeric value.
// Points keep the order they were encountered in and are never deduplicated.
type SeriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}
