// Package pkg provides the core libraries for Vizforge text-to-visual compilation.
//
// # Overview
//
// Vizforge turns short plain-text descriptions into rendered visuals. The
// pkg directory is organized along the compilation pipeline:
//
//  1. [classify] - Decide which visual kind a text should become
//  2. [parse] - Turn text into the intermediate model (graphs and series)
//  3. [layout] - Assign geometry to the model
//  4. [render] - Emit SVG fragments (plus DOT/PNG via [render/dot])
//  5. [compose] - Wrap fragments into standalone HTML documents
//  6. [pipeline] - Orchestration, caching, and the Runner API
//
// # Architecture
//
// The typical data flow through Vizforge:
//
//	Plain text
//	     ↓
//	[classify] (flowchart, diagram, or chart)
//	     ↓
//	[parse] (model.Graph / series points)
//	     ↓
//	[layout] (grid, radial, or bar geometry)
//	     ↓
//	[render] + [compose]
//	     ↓
//	SVG/HTML/JSON/DOT/PNG output
//
// # Quick Start
//
// Compile a text into SVG with caching:
//
//	import (
//	    "context"
//	    "github.com/vizforge/vizforge/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.Execute(context.Background(), pipeline.Options{
//	    Text:    "Start\nCheck input\nValid?\nYes: Accept\nNo: Reject\nEnd",
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatHTML},
//	})
//	if err != nil {
//	    // handle error
//	}
//	svg := res.Artifacts[pipeline.FormatSVG]
//
// # Main Packages
//
// [model] - The intermediate representation: kinds, roles, nodes, edges,
// series points, and the Graph container shared by every stage.
//
// [classify] - Ordered heuristic rules mapping raw text to a visual kind.
//
// [parse] - One parser per kind: sequential flowcharts with decision
// branches, arrow-notation relation diagrams, and label/value chart series.
//
// [layout] - Pure geometry: two-column grids for flowcharts, hub-and-spoke
// radial placement for diagrams, scaled bars for charts.
//
// [render] - SVG fragment emission, with [render/dot] providing Graphviz
// DOT export and PNG rasterization for graph kinds.
//
// [compose] - Standalone HTML documents around rendered fragments.
//
// [pipeline] - The Runner ties the stages together and adds two-level
// caching (parsed models and rendered artifacts) over [cache].
//
// [cache] - Pluggable cache backends: file, redis, mongo, or none.
//
// [redact] - Scrubbing of emails, card numbers, and credentials before
// text enters the pipeline or its cache keys.
//
// [errors] - Structured error codes shared by the CLI and HTTP server.
//
// [observability] - Hook registry for classify/parse/layout/render and
// cache events.
package pkg
