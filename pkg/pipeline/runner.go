package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/svgreveal/pkg/buildinfo"
	"github.com/matzehuels/svgreveal/pkg/cache"
	"github.com/matzehuels/svgreveal/pkg/dom"
	"github.com/matzehuels/svgreveal/pkg/errors"
	"github.com/matzehuels/svgreveal/pkg/observability"
	"github.com/matzehuels/svgreveal/pkg/reveal"
	"github.com/matzehuels/svgreveal/pkg/timeline"
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

// artifact is the cached form of a Result.
type artifact struct {
	SVG     []byte                  `json:"svg"`
	Records []reveal.KeyframeRecord `json:"records"`
	Stats   Stats                   `json:"stats"`
}

// Animate runs the complete parse → animate → encode pipeline with caching.
func (r *Runner) Animate(ctx context.Context, svg []byte, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := errors.ValidateSVGInput(svg); err != nil {
		return nil, err
	}

	cacheKey := ""
	if opts.Cacheable() {
		cacheKey = r.CacheKey(svg, opts)
		if res, ok := r.lookup(ctx, cacheKey, opts); ok {
			return res, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTimeout, err, "animation cancelled")
	}

	result := &Result{}
	hooks := observability.Pipeline()

	// Stage 1: Parse
	parseStart := time.Now()
	hooks.OnParseStart(ctx, len(svg))
	doc, err := dom.Parse(bytes.NewReader(svg))
	if err != nil {
		hooks.OnParseComplete(ctx, 0, time.Since(parseStart), err)
		return nil, errors.Wrap(errors.ErrCodeInvalidSVG, err, "parse document")
	}
	result.Stats.Elements = len(doc.Root.QueryAll(dom.ShapeTags...))
	result.Stats.ParseTime = time.Since(parseStart)
	hooks.OnParseComplete(ctx, result.Stats.Elements, result.Stats.ParseTime, nil)

	r.Logger.Info("parsed document",
		"shapes", result.Stats.Elements,
		"duration", result.Stats.ParseTime)

	// Stage 2: Animate
	animateStart := time.Now()
	hooks.OnAnimateStart(ctx, result.Stats.Elements)
	clock := timeline.NewClock(doc.Root)
	animator := r.newAnimator(opts, clock)
	result.Records = animator.Animate(doc.Root, opts.Reveal)
	if opts.Playback != "" {
		animator.Control(doc.Root, opts.Playback)
		// Let a reset restore the shorthand before the document is frozen.
		clock.Advance(reveal.ResetDelay)
	}
	result.Stats.Rules = animator.Registry().Len()
	result.Stats.AnimateTime = time.Since(animateStart)
	hooks.OnAnimateComplete(ctx, len(result.Records), result.Stats.AnimateTime, nil)

	r.Logger.Info("animated shapes",
		"animated", len(result.Records),
		"rules", result.Stats.Rules,
		"duration", result.Stats.AnimateTime)

	// Stage 3: Encode
	encodeStart := time.Now()
	var buf bytes.Buffer
	if err := doc.Encode(&buf); err != nil {
		hooks.OnEncodeComplete(ctx, 0, time.Since(encodeStart), err)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode document")
	}
	result.SVG = buf.Bytes()
	result.Stats.EncodeTime = time.Since(encodeStart)
	hooks.OnEncodeComplete(ctx, len(result.SVG), result.Stats.EncodeTime, nil)

	r.Logger.Info("encoded document",
		"bytes", len(result.SVG),
		"duration", result.Stats.EncodeTime)

	if cacheKey != "" {
		r.store(ctx, cacheKey, result)
	}
	return result, nil
}

// CacheKey returns the artifact key for svg animated with opts.
func (r *Runner) CacheKey(svg []byte, opts Options) string {
	return r.Keyer.ArtifactKey(cache.Hash(svg), cache.ArtifactKeyOpts{
		Options:  opts.Reveal,
		Playback: string(opts.Playback),
		Version:  buildinfo.Current().Version,
	})
}

func (r *Runner) newAnimator(opts Options, sched reveal.Scheduler) *reveal.Animator {
	ro := []reveal.Option{
		reveal.WithLogger(r.Logger),
		reveal.WithScheduler(sched),
	}
	if opts.SequentialIDs {
		ro = append(ro, reveal.WithIDs(&reveal.SequentialIDs{}))
	}
	return reveal.New(ro...)
}

func (r *Runner) lookup(ctx context.Context, key string, opts Options) (*Result, bool) {
	if opts.Refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache lookup failed", "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "artifact")
		return nil, false
	}
	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		// Corrupt entries are recomputed and overwritten.
		r.Logger.Debug("discarding corrupt cache entry", "key", key, "error", err)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "artifact")
	r.Logger.Debug("cache hit", "key", key)
	return &Result{SVG: a.SVG, Records: a.Records, Stats: a.Stats, CacheHit: true}, true
}

func (r *Runner) store(ctx context.Context, key string, res *Result) {
	data, err := json.Marshal(artifact{SVG: res.SVG, Records: res.Records, Stats: res.Stats})
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		r.Logger.Warn("cache store failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "artifact", len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
