package reveal

import (
	"fmt"
	"sync"

	"github.com/matzehuels/svgreveal/pkg/dom"
	"github.com/matzehuels/svgreveal/pkg/observability"
)

// Colors are the base paint values resolved for an element.
type Colors struct {
	Fill   string
	Stroke string
}

// Shorthand returns the animation shorthand for the keyframes name under cfg.
func Shorthand(name string, cfg Config) string {
	return fmt.Sprintf("%s %ss %s %ss %s %s forwards",
		name, formatNumber(cfg.Duration), cfg.Easing, formatNumber(cfg.Delay), cfg.Count, cfg.Direction())
}

// InitialStyle returns the ordered style assignments that put an element in
// the starting state of cfg.RenderMode and attach the named animation.
func InitialStyle(class ShapeClass, cfg Config, length float64, colors Colors, name string) []StyleValue {
	l := formatNumber(length)
	width := formatNumber(cfg.StrokeWidth)
	anim := StyleValue{PropAnimation, Shorthand(name, cfg)}

	if class == ClassRect {
		switch cfg.RenderMode {
		case ModeGrow:
			return []StyleValue{
				{PropFill, cfg.Fill},
				{PropStroke, cfg.Stroke},
				{PropStrokeWidth, width},
				{PropTransform, "scale(0)"},
				{PropTransformOrigin, "center"},
				{PropTransformBox, "fill-box"},
				anim,
			}
		case ModeFadeIn:
			return []StyleValue{
				{PropFill, cfg.Fill},
				{PropStroke, cfg.Stroke},
				{PropStrokeWidth, width},
				{PropOpacity, "0"},
				anim,
			}
		case ModeOutline:
			return []StyleValue{
				{PropFill, "none"},
				{PropStroke, cfg.Stroke},
				{PropStrokeWidth, width},
				{PropStrokeDasharray, l},
				{PropStrokeDashoffset, l},
				anim,
			}
		}
		return []StyleValue{
			{PropFill, cfg.Fill},
			{PropStroke, cfg.Stroke},
			{PropStrokeWidth, width},
		}
	}

	switch cfg.RenderMode {
	case ModeOutline:
		return []StyleValue{
			{PropFill, "none"},
			{PropStroke, colors.Stroke},
			{PropStrokeWidth, width},
			{PropStrokeDasharray, l},
			{PropStrokeDashoffset, l},
			anim,
		}
	case ModeFill:
		fill := cfg.Fill
		if fill == "" {
			fill = colors.Fill
		}
		stroke := cfg.Stroke
		if stroke == "" {
			stroke = colors.Fill
			if colors.Fill == "none" {
				stroke = colors.Stroke
			}
		}
		return []StyleValue{
			{PropFill, fill},
			{PropFillOpacity, "0"},
			{PropStroke, stroke},
			{PropStrokeWidth, width},
			{PropStrokeDasharray, l},
			{PropStrokeDashoffset, l},
			anim,
		}
	case ModeMixed:
		return []StyleValue{
			{PropFill, colors.Fill},
			{PropFillOpacity, "0"},
			{PropStroke, colors.Stroke},
			{PropStrokeWidth, width},
			{PropStrokeDasharray, l},
			{PropStrokeDashoffset, l},
			anim,
		}
	}
	return nil
}

// AnimateElement resolves opts for el, registers fresh keyframes and puts el
// in its starting state. A nil element is ignored and yields a zero record.
func (a *Animator) AnimateElement(el *dom.Element, opts *Options) KeyframeRecord {
	if el == nil {
		return KeyframeRecord{}
	}
	class := ClassOf(el.Tag())
	return a.apply(el, class, Resolve(opts, class))
}

func (a *Animator) apply(el *dom.Element, class ShapeClass, cfg Config) KeyframeRecord {
	length := ResolveLength(a.measurer, el, class)

	colors := Colors{Fill: cfg.Fill, Stroke: cfg.Stroke}
	if class == ClassGeneric {
		colors = Colors{
			Fill:   ResolveFill(el, DefaultFillBase, cfg.FillBase),
			Stroke: ResolveStroke(el, cfg.Stroke),
		}
	}

	id := a.ids.NextID()
	rec := KeyframeRecord{
		ID:   id,
		Name: AnimationName(class, id),
		Mode: cfg.RenderMode,
		Rule: Synthesize(class, cfg.RenderMode, length, id),
	}

	a.registry.Register(el.Document(), rec)
	applyStyle(el, InitialStyle(class, cfg, length, colors, rec.Name))
	onAnimationEnd(el, rec.Name, cfg.OnComplete)

	a.logger.Debug("animated element", "tag", el.Tag(), "id", el.ID(), "mode", cfg.RenderMode, "length", length, "name", rec.Name)
	observability.Reveal().OnElementAnimated(el.Tag(), string(cfg.RenderMode))
	return rec
}

// onAnimationEnd runs fn once, on the first animationend for name, and then
// detaches itself. Events without an animation name also match.
func onAnimationEnd(el *dom.Element, name string, fn func()) {
	if fn == nil {
		return
	}
	var (
		once sync.Once
		mu   sync.Mutex
		id   dom.ListenerID
	)
	mu.Lock()
	defer mu.Unlock()
	id = el.AddEventListener(dom.EventAnimationEnd, func(ev dom.Event) {
		if ev.AnimationName != "" && ev.AnimationName != name {
			return
		}
		once.Do(func() {
			mu.Lock()
			el.RemoveEventListener(dom.EventAnimationEnd, id)
			mu.Unlock()
			fn()
		})
	})
}
