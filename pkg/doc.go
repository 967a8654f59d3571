// Package pkg provides the core libraries for svgreveal.
//
// # Overview
//
// svgreveal turns static SVG documents into self-drawing ones. Every shape
// gets a CSS @keyframes rule and an inline style that starts it hidden; the
// browser then strokes, fills, grows or fades each shape in, one after the
// other. The pkg directory is organized into these areas:
//
//  1. [dom] and [geom] - Document model and shape geometry
//  2. [reveal] - Keyframe synthesis, style application, playback control
//  3. [timeline] - Virtual animation clock used for previews and playback
//  4. [pipeline] - Orchestration (parse → animate → encode) with caching
//  5. [cache], [config], [source] - Infrastructure for the CLI and server
//  6. [server] - HTTP API and live preview
//
// # Architecture
//
// The typical data flow:
//
//	SVG file, stdin or URL
//	         ↓
//	    [source] package (load input)
//	         ↓
//	    [dom] package (parse markup, stylesheets, inline styles)
//	         ↓
//	    [reveal] package (per-shape keyframes + initial styles)
//	         ↓
//	    [dom] package (encode)
//	         ↓
//	    animated SVG
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/svgreveal/pkg/cache"
//	    "github.com/matzehuels/svgreveal/pkg/pipeline"
//	    "github.com/matzehuels/svgreveal/pkg/reveal"
//	)
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	res, err := runner.Animate(context.Background(), svg, pipeline.Options{
//	    Reveal: &reveal.Options{Layer: reveal.Layer{Duration: reveal.Ptr(2.0)}},
//	})
//
// # Observability
//
// [observability] exposes hook interfaces for metrics and tracing. All hooks
// default to no-ops.
package pkg
