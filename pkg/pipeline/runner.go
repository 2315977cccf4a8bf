package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/classkit/wordcloud/pkg/cache"
	"github.com/classkit/wordcloud/pkg/cloud"
	"github.com/classkit/wordcloud/pkg/errors"
	"github.com/classkit/wordcloud/pkg/observability"
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

// Execute runs the complete aggregate → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}
	result.Stats.SubmissionCount = len(opts.Submissions)

	// Stage 1: Aggregate
	observability.Pipeline().OnAggregateStart(ctx, len(opts.Submissions))
	aggregateStart := time.Now()
	words, aggregateHit, err := r.AggregateWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "aggregate")
	}
	result.Words = words
	result.Stats.AggregateTime = time.Since(aggregateStart)
	result.Stats.WordCount = len(words)
	result.CacheInfo.AggregateHit = aggregateHit
	observability.Pipeline().OnAggregateComplete(ctx, len(opts.Submissions), len(words), result.Stats.AggregateTime)

	// Aggregate hash keys the layout stage and shows up in API responses.
	if aggData, err := json.Marshal(words); err == nil {
		result.AggregateHash = cache.Hash(aggData)
	}

	r.Logger.Info("aggregated submissions",
		"submissions", len(opts.Submissions),
		"words", len(words),
		"duration", result.Stats.AggregateTime)

	// Stage 2: Layout (spiral cloud only; nodelink builds its graph at render time)
	if opts.IsCloud() {
		observability.Pipeline().OnLayoutStart(ctx, len(words))
		layoutStart := time.Now()
		placed, layoutHit, err := r.LayoutWithCacheInfo(ctx, words, opts)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "layout")
		}
		result.Placed = placed
		result.Stats.LayoutTime = time.Since(layoutStart)
		result.CacheInfo.LayoutHit = layoutHit
		observability.Pipeline().OnLayoutComplete(ctx, len(words), result.Stats.LayoutTime)

		r.Logger.Info("computed layout",
			"placed", len(placed),
			"duration", result.Stats.LayoutTime)
	}

	// Stage 3: Render
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.Placed, words, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "render")
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// AggregateWithCacheInfo aggregates submissions with caching and returns cache hit info.
func (r *Runner) AggregateWithCacheInfo(ctx context.Context, opts Options) ([]cloud.AggregatedWord, bool, error) {
	r.applyLogger(&opts)

	subsData, err := json.Marshal(opts.Submissions)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize submissions for cache key")
	}
	cacheKey := r.Keyer.AggregateKey(cache.Hash(subsData))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var words []cloud.AggregatedWord
			if err := json.Unmarshal(data, &words); err == nil {
				observability.Cache().OnCacheHit(ctx, "aggregate")
				return words, true, nil
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, "aggregate")

	words := cloud.Aggregate(opts.Submissions)

	if data, err := json.Marshal(words); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLAggregate)
		observability.Cache().OnCacheSet(ctx, "aggregate", len(data))
	}

	return words, false, nil
}

// Aggregate is a convenience wrapper that discards the cache hit info.
func (r *Runner) Aggregate(ctx context.Context, opts Options) ([]cloud.AggregatedWord, error) {
	words, _, err := r.AggregateWithCacheInfo(ctx, opts)
	return words, err
}

// LayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, words []cloud.AggregatedWord, opts Options) ([]cloud.PlacedWord, bool, error) {
	opts.SetLayoutDefaults()
	r.applyLogger(&opts)

	aggData, err := json.Marshal(words)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize words for cache key")
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(aggData), opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var placed []cloud.PlacedWord
			if err := json.Unmarshal(data, &placed); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return placed, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	placed := cloud.Layout(words, opts.CloudConfig())

	if data, err := json.Marshal(placed); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return placed, false, nil
}

// Layout is a convenience wrapper that discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, words []cloud.AggregatedWord, opts Options) ([]cloud.PlacedWord, error) {
	placed, _, err := r.LayoutWithCacheInfo(ctx, words, opts)
	return placed, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, placed []cloud.PlacedWord, words []cloud.AggregatedWord, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Nodelink renders straight from the aggregate, so its artifacts are
	// keyed by the aggregate content rather than a placement.
	source := any(placed)
	if opts.IsNodelink() {
		source = words
	}
	sourceData, err := json.Marshal(source)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	sourceHash := cache.Hash(sourceData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(sourceHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
	} else {
		allCached = false
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	rendered, err := Render(placed, words, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(sourceHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
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
