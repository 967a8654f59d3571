// Package pipeline provides the parse → animate → encode pipeline for svgreveal.
//
// This package is shared by the CLI and the HTTP server so that both entry
// points produce byte-identical documents for the same input and options.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Decode the SVG document into the in-memory model
//  2. Animate: Synthesize and register keyframes for every shape
//  3. Encode: Serialize the animated document back to SVG
//
// Each run uses a fresh [reveal.Animator], so keyframe registries never leak
// between documents.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Animate(ctx, svg, pipeline.Options{
//	    Reveal:        &reveal.Options{Layer: reveal.Layer{Duration: reveal.Ptr(2.0)}},
//	    SequentialIDs: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.SVG)
//
// # Caching
//
// Artifacts are cached only when SequentialIDs is set. Random keyframe
// identifiers make the output differ between runs, so caching it would
// return a stale document that still looks valid.
package pipeline

import (
	"time"

	"github.com/matzehuels/svgreveal/pkg/errors"
	"github.com/matzehuels/svgreveal/pkg/reveal"
)

// Options configures a single pipeline run.
type Options struct {
	// Reveal holds the animation options. Nil means all defaults.
	Reveal *reveal.Options

	// SequentialIDs numbers keyframes 1, 2, 3, ... instead of using random
	// identifiers. Required for deterministic output and caching.
	SequentialIDs bool

	// Playback is applied to every shape after animating. Empty leaves the
	// animations running.
	Playback reveal.Action

	// Refresh skips the cache lookup but still stores the result.
	Refresh bool
}

// Validate checks options that cannot be repaired by falling back to defaults.
func (o Options) Validate() error {
	if o.Playback != "" {
		if _, err := reveal.ParseAction(string(o.Playback)); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid playback")
		}
	}
	return nil
}

// Cacheable reports whether the run's output is deterministic.
func (o Options) Cacheable() bool {
	return o.SequentialIDs
}

// Result contains the output of a pipeline run.
type Result struct {
	SVG      []byte                  // Animated document
	Records  []reveal.KeyframeRecord // One record per animated element
	Stats    Stats                   // Counts and stage timings
	CacheHit bool                    // Whether the document came from the cache
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Elements    int `json:"elements"` // Shape elements found in the input
	Rules       int `json:"rules"`    // Keyframe rules registered
	ParseTime   time.Duration
	AnimateTime time.Duration
	EncodeTime  time.Duration
}

// Total returns the time spent across all stages.
func (s Stats) Total() time.Duration {
	return s.ParseTime + s.AnimateTime + s.EncodeTime
}
