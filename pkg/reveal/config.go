package reveal

import "math"

// Default values for fields no layer provides.
const (
	DefaultDuration    = 5.0
	DefaultCount       = Infinite
	DefaultStrokeWidth = 1.0
	DefaultStroke      = "#333"
	DefaultEasing      = EaseLinear
)

// Config is a fully resolved animation configuration for one shape class.
type Config struct {
	Duration    float64
	Count       Count
	Delay       float64
	Easing      Easing
	Reverse     bool
	RenderMode  RenderMode
	Fill        string
	FillBase    string
	Stroke      string
	StrokeWidth float64
	OnComplete  func()
}

// Direction returns the CSS animation-direction keyword.
func (c Config) Direction() string {
	if c.Reverse {
		return "reverse"
	}
	return "normal"
}

// Defaults returns the default layer for class.
func Defaults(class ShapeClass) *Layer {
	return &Layer{
		Duration:    Ptr(DefaultDuration),
		Count:       Ptr(DefaultCount),
		Delay:       Ptr(0.0),
		Easing:      Ptr(DefaultEasing),
		Reverse:     Ptr(false),
		Fill:        Ptr(""),
		Stroke:      Ptr(DefaultStroke),
		StrokeWidth: Ptr(DefaultStrokeWidth),
		RenderMode:  Ptr(class.DefaultMode()),
	}
}

// Resolve merges the class override block of opts over its top-level
// fields over the class defaults. A nil opts resolves to the defaults.
func Resolve(opts *Options, class ShapeClass) Config {
	if opts == nil {
		return Merge(nil, nil, Defaults(class), class)
	}
	shape := opts.Path
	if class == ClassRect {
		shape = opts.Rect
	}
	top := opts.Layer
	cfg := Merge(shape, &top, Defaults(class), class)
	cfg.OnComplete = opts.OnComplete
	return cfg
}

// Merge resolves each field from the first layer that provides a valid
// value, in order shape, top, defaults. Nil layers are skipped.
func Merge(shape, top, defaults *Layer, class ShapeClass) Config {
	layers := []*Layer{shape, top, defaults}
	cfg := Config{
		Duration:    first(layers, func(l *Layer) *float64 { return l.Duration }, positive),
		Count:       first(layers, func(l *Layer) *Count { return l.Count }, Count.Valid),
		Delay:       first(layers, func(l *Layer) *float64 { return l.Delay }, nonNegative),
		Easing:      first(layers, func(l *Layer) *Easing { return l.Easing }, Easing.Valid),
		Reverse:     first(layers, func(l *Layer) *bool { return l.Reverse }, always[bool]),
		Fill:        first(layers, func(l *Layer) *string { return l.Fill }, always[string]),
		FillBase:    first(layers, func(l *Layer) *string { return l.FillBase }, always[string]),
		Stroke:      first(layers, func(l *Layer) *string { return l.Stroke }, always[string]),
		StrokeWidth: first(layers, func(l *Layer) *float64 { return l.StrokeWidth }, nonNegative),
		RenderMode:  first(layers, func(l *Layer) *RenderMode { return l.RenderMode }, always[RenderMode]),
	}
	if !class.Supports(cfg.RenderMode) {
		cfg.RenderMode = class.DefaultMode()
	}
	return cfg
}

func first[T any](layers []*Layer, get func(*Layer) *T, valid func(T) bool) T {
	for _, l := range layers {
		if l == nil {
			continue
		}
		if v := get(l); v != nil && valid(*v) {
			return *v
		}
	}
	var zero T
	return zero
}

func positive(v float64) bool    { return v > 0 && !math.IsInf(v, 0) }
func nonNegative(v float64) bool { return v >= 0 && !math.IsInf(v, 0) }
func always[T any](T) bool       { return true }
