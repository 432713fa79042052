package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vizforge/vizforge/pkg/cache"
	vferrors "github.com/vizforge/vizforge/pkg/errors"
	"github.com/vizforge/vizforge/pkg/model"
	"github.com/vizforge/vizforge/pkg/observability"
	"github.com/vizforge/vizforge/pkg/redact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete classify → parse → layout → render pipeline
// with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	text := opts.Text
	if opts.Redact {
		text = redact.Scrub(text)
	}

	// Stage 1: Classify
	kind := Classify(text, opts.KindHint())
	observability.Compile().OnClassify(ctx, opts.KindHint().String(), kind.String())

	result := &Result{Kind: kind}

	// Stage 2: Parse (with model cache)
	parseStart := time.Now()
	m, modelHit, err := r.BuildModelWithCacheInfo(ctx, kind, text, opts)
	if err != nil {
		return nil, err
	}
	result.Model = m
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.NodeCount = len(m.Nodes)
	result.Stats.EdgeCount = len(m.Edges)
	result.Stats.SeriesCount = len(m.Series)
	result.CacheInfo.ModelHit = modelHit

	if m.Empty() {
		return nil, vferrors.New(vferrors.ErrCodeEmptyResult,
			"no %s content found in input", kind)
	}

	// Compute model hash for cache keys and API responses
	if modelData, err := MarshalModel(m); err == nil {
		result.ModelHash = cache.Hash(modelData)
	}

	r.Logger.Info("parsed model",
		"kind", kind,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"series", result.Stats.SeriesCount,
		"duration", result.Stats.ParseTime)

	// Stages 3+4: Layout and render (with artifact cache)
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, m, result.ModelHash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// BuildModelWithCacheInfo parses text with caching and returns cache hit info.
// kind must be concrete and text already redacted when requested.
func (r *Runner) BuildModelWithCacheInfo(ctx context.Context, kind model.Kind, text string, opts Options) (*Model, bool, error) {
	textHash := cache.Hash([]byte(text))
	cacheKey := r.Keyer.ModelKey(textHash, opts.ModelKeyOpts(kind))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.cacheGet(ctx, cacheKey); err == nil && hit {
			if m, err := UnmarshalModel(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "model")
				return m, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "model")
	}

	// Parse
	start := time.Now()
	observability.Compile().OnParseStart(ctx, kind.String())
	m, err := BuildModel(kind, text)
	observability.Compile().OnParseComplete(ctx, kind.String(), nodeOrSeriesCount(m), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := MarshalModel(m); err == nil {
		if r.cacheSet(ctx, cacheKey, data, cache.TTLModel) == nil {
			observability.Cache().OnCacheSet(ctx, "model", len(data))
		}
	}

	return m, false, nil
}

// RenderWithCacheInfo renders artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, m *Model, modelHash string, opts Options) (map[string][]byte, bool, error) {
	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(modelHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.cacheGet(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	start := time.Now()
	observability.Compile().OnRenderStart(ctx, opts.Formats)
	rendered, err := Render(ctx, m, opts)
	observability.Compile().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(modelHash, opts.ArtifactKeyOpts(format))
		if r.cacheSet(ctx, cacheKey, data, cache.TTLArtifact) == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// cacheGet reads from the cache, retrying transient backend failures.
// Only errors the backend marked retryable (network failures in the redis
// and mongo backends) trigger another attempt.
func (r *Runner) cacheGet(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		data []byte
		hit  bool
	)
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		data, hit, err = r.Cache.Get(ctx, key)
		return err
	})
	return data, hit, err
}

// cacheSet writes to the cache, retrying transient backend failures.
func (r *Runner) cacheSet(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return cache.RetryWithBackoff(ctx, func() error {
		return r.Cache.Set(ctx, key, data, ttl)
	})
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// nodeOrSeriesCount returns the element count reported to hooks.
func nodeOrSeriesCount(m *Model) int {
	if m == nil {
		return 0
	}
	if m.Kind == model.KindChart {
		return len(m.Series)
	}
	return len(m.Nodes)
}
