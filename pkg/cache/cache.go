// Package cache provides pluggable caching for compiled visuals.
//
// The pipeline caches at two levels: parsed models (keyed by source text and
// kind) and rendered artifacts (keyed by model hash and output options).
// Backends share one interface so the CLI can use a file cache while the
// server uses Redis or MongoDB.
package cache

import (
	"context"
	"time"
)

// Default TTLs per payload type. Models are cheap to recompute, artifacts
// less so, but both are pure functions of their inputs so long TTLs are safe.
const (
	TTLModel    = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
//
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a miss.
// Errors are reserved for backend failures, not misses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ModelKeyOpts carries the inputs that make a parsed model unique.
type ModelKeyOpts struct {
	Kind     string // concrete visual kind after classification
	Redacted bool   // whether secret scrubbing ran before parsing
}

// ArtifactKeyOpts carries the options that make a rendered artifact unique.
type ArtifactKeyOpts struct {
	Format string // output format (svg, html, json, dot, png)
	Width  int    // canvas width override, 0 for layout default
	Height int    // canvas height override, 0 for layout default
}

// Keyer generates cache keys for the pipeline stages.
// Implementations must be deterministic: the same inputs always produce
// the same key.
type Keyer interface {
	// ModelKey generates a key for a parsed model.
	// textHash is the Hash of the (possibly redacted) source text.
	ModelKey(textHash string, opts ModelKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	// modelHash is the Hash of the model's canonical encoding.
	ArtifactKey(modelHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ModelKey generates a key for a parsed model.
func (k *DefaultKeyer) ModelKey(textHash string, opts ModelKeyOpts) string {
	return hashKey("model", textHash, opts.Kind, opts.Redacted)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(modelHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", modelHash, opts.Format, opts.Width, opts.Height)
}
