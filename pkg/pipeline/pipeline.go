// Package pipeline provides the core compilation pipeline for VizForge.
//
// This package implements the complete classify → parse → layout → render
// pipeline that can be used by CLI, API, and worker components. By
// centralizing this logic, we ensure consistent behavior across all entry
// points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Classify: Detect the visual kind (flowchart, diagram, chart) from text
//  2. Parse: Extract a typed model (graph or series) from the text
//  3. Layout: Compute positions for the model's elements
//  4. Render: Generate output in various formats (SVG, HTML, JSON, DOT, PNG)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Text:    "Start -> Validate input -> End",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vizforge/vizforge/pkg/cache"
	vferrors "github.com/vizforge/vizforge/pkg/errors"
	"github.com/vizforge/vizforge/pkg/model"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatHTML = "html"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatHTML: true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatPNG:  true,
}

// graphFormats are the formats that require a node/edge model and are
// therefore unavailable for charts.
var graphFormats = map[string]bool{
	FormatDOT: true,
	FormatPNG: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the compilation pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Text is the source text to compile.
	Text string `json:"text"`

	// Kind forces a visual kind; empty or "auto" lets the classifier decide.
	Kind string `json:"kind,omitempty"`

	// Formats selects the output formats. Defaults to SVG.
	Formats []string `json:"formats,omitempty"`

	// Width and Height override the layout's canvas size. Zero keeps the
	// layout default.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// Redact scrubs secrets from the text before compilation.
	Redact bool `json:"redact,omitempty"`

	// Refresh bypasses the model cache and recompiles from scratch.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// kind is the parsed Kind, set by ValidateAndSetDefaults.
	kind model.Kind `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Kind is the concrete visual kind after classification.
	Kind model.Kind

	// Model is the parsed intermediate representation.
	Model *Model

	// ModelHash is the content hash of the model's canonical encoding.
	ModelHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	EdgeCount   int
	SeriesCount int
	ParseTime   time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ModelHit  bool // Whether the parsed model came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return vferrors.New(vferrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, html, json, dot, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateFormatsFor checks that all formats are available for the kind.
// Charts have no graph, so DOT and PNG are rejected for them.
func ValidateFormatsFor(kind model.Kind, formats []string) error {
	if err := ValidateFormats(formats); err != nil {
		return err
	}
	if kind != model.KindChart {
		return nil
	}
	for _, f := range formats {
		if graphFormats[f] {
			return vferrors.New(vferrors.ErrCodeUnsupported,
				"format %q is not available for charts", f)
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if err := vferrors.ValidateInputText(o.Text); err != nil {
		return err
	}

	kind, err := model.ParseKind(o.Kind)
	if err != nil {
		return vferrors.Wrap(vferrors.ErrCodeInvalidKind, err, "invalid kind %q", o.Kind)
	}
	o.kind = kind

	if err := vferrors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// KindHint returns the parsed kind hint. Only valid after
// ValidateAndSetDefaults.
func (o *Options) KindHint() model.Kind {
	return o.kind
}

// ModelKeyOpts returns cache key options for the parsed model.
// kind is the concrete kind after classification, not the hint.
func (o *Options) ModelKeyOpts(kind model.Kind) cache.ModelKeyOpts {
	return cache.ModelKeyOpts{
		Kind:     kind.String(),
		Redacted: o.Redact,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Width:  o.Width,
		Height: o.Height,
	}
}
