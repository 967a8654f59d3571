package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/svgreveal/pkg/config"
	"github.com/matzehuels/svgreveal/pkg/errors"
	"github.com/matzehuels/svgreveal/pkg/reveal"
)

// animationFlags are the options shared by every command that animates a
// document. Only flags the user actually set end up in the options, so the
// config file and the built-in defaults still apply to everything else.
type animationFlags struct {
	configPath string

	mode     string
	rectMode string
	pathMode string

	duration    float64
	count       string
	delay       float64
	easing      string
	reverse     bool
	fill        string
	fillBase    string
	stroke      string
	strokeWidth float64
}

func (f *animationFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.configPath, "config", "", "animation options file (.toml, .yaml, .json)")
	fs.StringVar(&f.mode, "mode", "", "render mode for all shapes (outline, fill, mixed, grow, fade-in)")
	fs.StringVar(&f.rectMode, "rect-mode", "", "render mode for rects (grow, fade-in, outline)")
	fs.StringVar(&f.pathMode, "path-mode", "", "render mode for other shapes (outline, fill, mixed)")
	fs.Float64Var(&f.duration, "duration", reveal.DefaultDuration, "animation duration in seconds")
	fs.StringVar(&f.count, "count", "infinite", "iteration count (positive integer or \"infinite\")")
	fs.Float64Var(&f.delay, "delay", 0, "delay before the first shape starts, in seconds")
	fs.StringVar(&f.easing, "easing", string(reveal.DefaultEasing), "timing function (linear, ease, ease-in, ease-out, ease-in-out)")
	fs.BoolVar(&f.reverse, "reverse", false, "play animations in reverse")
	fs.StringVar(&f.fill, "fill", "", "fill color for rects")
	fs.StringVar(&f.fillBase, "fill-base", reveal.DefaultFillBase, "fill color when a shape has none of its own")
	fs.StringVar(&f.stroke, "stroke", reveal.DefaultStroke, "stroke color")
	fs.Float64Var(&f.strokeWidth, "stroke-width", reveal.DefaultStrokeWidth, "stroke width")

	_ = cmd.RegisterFlagCompletionFunc("mode", completeWords(allModes...))
	_ = cmd.RegisterFlagCompletionFunc("rect-mode", completeWords(reveal.ClassRect.Modes()...))
	_ = cmd.RegisterFlagCompletionFunc("path-mode", completeWords(reveal.ClassGeneric.Modes()...))
	_ = cmd.RegisterFlagCompletionFunc("easing", completeWords(easings...))
	_ = cmd.RegisterFlagCompletionFunc("config", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"toml", "yaml", "yml", "json"}, cobra.ShellCompDirectiveFilterFileExt
	})
}

// options builds the animation options: the config file first, then every
// flag the user changed on top of it.
func (f *animationFlags) options(cmd *cobra.Command) (*reveal.Options, error) {
	opts := &reveal.Options{}
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return nil, err
		}
		opts = loaded
	}

	changed := cmd.Flags().Changed
	if changed("duration") {
		opts.Duration = reveal.Ptr(f.duration)
	}
	if changed("count") {
		c, err := reveal.ParseCount(f.count)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid --count")
		}
		opts.Count = &c
	}
	if changed("delay") {
		opts.Delay = reveal.Ptr(f.delay)
	}
	if changed("easing") {
		e := reveal.Easing(f.easing)
		if !e.Valid() {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid --easing %q", f.easing)
		}
		opts.Easing = &e
	}
	if changed("reverse") {
		opts.Reverse = reveal.Ptr(f.reverse)
	}
	if changed("fill") {
		opts.Fill = reveal.Ptr(f.fill)
	}
	if changed("fill-base") {
		opts.FillBase = reveal.Ptr(f.fillBase)
	}
	if changed("stroke") {
		opts.Stroke = reveal.Ptr(f.stroke)
	}
	if changed("stroke-width") {
		opts.StrokeWidth = reveal.Ptr(f.strokeWidth)
	}
	if changed("mode") {
		opts.RenderMode = reveal.Ptr(reveal.RenderMode(f.mode))
	}
	if changed("rect-mode") {
		if err := checkMode(reveal.ClassRect, f.rectMode); err != nil {
			return nil, err
		}
		opts.Rect = withMode(opts.Rect, f.rectMode)
	}
	if changed("path-mode") {
		if err := checkMode(reveal.ClassGeneric, f.pathMode); err != nil {
			return nil, err
		}
		opts.Path = withMode(opts.Path, f.pathMode)
	}
	return opts, nil
}

// checkMode rejects a per-class mode flag the class cannot render. The
// shared --mode flag is not checked since it legitimately applies to one
// class and falls back to the default for the other.
func checkMode(class reveal.ShapeClass, mode string) error {
	if !class.Supports(reveal.RenderMode(mode)) {
		return errors.New(errors.ErrCodeInvalidMode, "mode %q is not supported for %s shapes (want %v)", mode, class, class.Modes())
	}
	return nil
}

func withMode(l *reveal.Layer, mode string) *reveal.Layer {
	if l == nil {
		l = &reveal.Layer{}
	}
	l.RenderMode = reveal.Ptr(reveal.RenderMode(mode))
	return l
}
