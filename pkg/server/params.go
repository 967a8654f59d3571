package server

import (
	"net/url"
	"strconv"

	"github.com/matzehuels/svgreveal/pkg/errors"
	"github.com/matzehuels/svgreveal/pkg/pipeline"
	"github.com/matzehuels/svgreveal/pkg/reveal"
)

// parseOptions maps query parameters onto pipeline options. Parameters that
// are absent stay nil so the resolver falls back to its defaults. Values that
// do not parse at all are rejected; values that parse but are out of range
// are left to the resolver.
func parseOptions(q url.Values) (pipeline.Options, error) {
	var p paramParser
	opts := &reveal.Options{Layer: p.layer(q)}
	if m := p.mode(q, "rect_mode"); m != nil {
		opts.Rect = &reveal.Layer{RenderMode: m}
	}
	if m := p.mode(q, "path_mode"); m != nil {
		opts.Path = &reveal.Layer{RenderMode: m}
	}

	out := pipeline.Options{
		Reveal:        opts,
		SequentialIDs: p.flag(q, "sequential"),
		Refresh:       p.flag(q, "refresh"),
	}
	if v := q.Get("playback"); v != "" {
		a, err := reveal.ParseAction(v)
		if err != nil {
			p.fail("playback", v)
		}
		out.Playback = a
	}
	if p.err != nil {
		return pipeline.Options{}, p.err
	}
	return out, nil
}

// paramParser records the first malformed parameter.
type paramParser struct {
	err error
}

func (p *paramParser) fail(key, value string) {
	if p.err == nil {
		p.err = errors.New(errors.ErrCodeInvalidInput, "invalid value %q for %s", value, key)
	}
}

func (p *paramParser) layer(q url.Values) reveal.Layer {
	l := reveal.Layer{
		Duration:    p.float(q, "duration"),
		Delay:       p.float(q, "delay"),
		StrokeWidth: p.float(q, "stroke_width"),
		Reverse:     p.boolean(q, "reverse"),
		Fill:        p.str(q, "fill"),
		FillBase:    p.str(q, "fill_base"),
		Stroke:      p.str(q, "stroke"),
		RenderMode:  p.mode(q, "mode"),
	}
	if v := q.Get("count"); v != "" {
		c, err := reveal.ParseCount(v)
		if err != nil {
			p.fail("count", v)
		} else {
			l.Count = &c
		}
	}
	if v := q.Get("easing"); v != "" {
		l.Easing = reveal.Ptr(reveal.Easing(v))
	}
	return l
}

func (p *paramParser) float(q url.Values, key string) *float64 {
	v := q.Get(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, v)
		return nil
	}
	return &f
}

func (p *paramParser) boolean(q url.Values, key string) *bool {
	v := q.Get(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, v)
		return nil
	}
	return &b
}

func (p *paramParser) flag(q url.Values, key string) bool {
	b := p.boolean(q, key)
	return b != nil && *b
}

func (p *paramParser) str(q url.Values, key string) *string {
	if !q.Has(key) {
		return nil
	}
	return reveal.Ptr(q.Get(key))
}

func (p *paramParser) mode(q url.Values, key string) *reveal.RenderMode {
	v := q.Get(key)
	if v == "" {
		return nil
	}
	return reveal.Ptr(reveal.RenderMode(v))
}
