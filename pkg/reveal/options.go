package reveal

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Count is an animation iteration count: a positive integer or Infinite.
type Count int

// Infinite repeats the animation forever.
const Infinite Count = -1

// String returns "infinite" or the decimal count.
func (c Count) String() string {
	if c == Infinite {
		return "infinite"
	}
	return strconv.Itoa(int(c))
}

// Valid reports whether c is Infinite or positive.
func (c Count) Valid() bool { return c == Infinite || c > 0 }

// ParseCount parses "infinite" or a positive integer.
func ParseCount(s string) (Count, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "infinite") {
		return Infinite, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid count %q: want a positive integer or \"infinite\"", s)
	}
	return Count(n), nil
}

// MarshalText encodes the count in its CSS form.
func (c Count) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText accepts "infinite" or digits. YAML scalars decode through it.
func (c *Count) UnmarshalText(b []byte) error {
	v, err := ParseCount(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// UnmarshalJSON accepts a JSON number or string.
func (c *Count) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		return c.fromFloat(n)
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("invalid count %s", b)
	}
	return c.UnmarshalText([]byte(s))
}

// UnmarshalTOML accepts a TOML integer, float or string.
func (c *Count) UnmarshalTOML(v any) error {
	switch t := v.(type) {
	case int64:
		return c.fromFloat(float64(t))
	case float64:
		return c.fromFloat(t)
	case string:
		return c.UnmarshalText([]byte(t))
	}
	return fmt.Errorf("invalid count %v", v)
}

func (c *Count) fromFloat(n float64) error {
	if n <= 0 || n != math.Trunc(n) {
		return fmt.Errorf("invalid count %v: want a positive integer", n)
	}
	*c = Count(n)
	return nil
}

// Easing is a named CSS timing function, passed through unchanged.
type Easing string

const (
	EaseLinear Easing = "linear"
	Ease       Easing = "ease"
	EaseIn     Easing = "ease-in"
	EaseOut    Easing = "ease-out"
	EaseInOut  Easing = "ease-in-out"
)

// Valid reports whether e is one of the supported timing functions.
func (e Easing) Valid() bool {
	switch e {
	case EaseLinear, Ease, EaseIn, EaseOut, EaseInOut:
		return true
	}
	return false
}

// RenderMode names the visual reveal strategy.
type RenderMode string

const (
	ModeOutline RenderMode = "outline"
	ModeFill    RenderMode = "fill"
	ModeMixed   RenderMode = "mixed"
	ModeGrow    RenderMode = "grow"
	ModeFadeIn  RenderMode = "fade-in"
)

// ShapeClass selects the override block and render-mode set for an element.
type ShapeClass int

const (
	ClassGeneric ShapeClass = iota
	ClassRect
)

// ClassOf derives the shape class from an element tag.
func ClassOf(tag string) ShapeClass {
	if strings.EqualFold(tag, "rect") {
		return ClassRect
	}
	return ClassGeneric
}

func (c ShapeClass) String() string {
	if c == ClassRect {
		return "rect"
	}
	return "generic"
}

// Modes returns the render modes the class understands.
func (c ShapeClass) Modes() []RenderMode {
	if c == ClassRect {
		return []RenderMode{ModeGrow, ModeFadeIn, ModeOutline}
	}
	return []RenderMode{ModeOutline, ModeFill, ModeMixed}
}

// DefaultMode is grow for rectangles and outline otherwise.
func (c ShapeClass) DefaultMode() RenderMode {
	if c == ClassRect {
		return ModeGrow
	}
	return ModeOutline
}

// Supports reports whether m is a render mode of the class.
func (c ShapeClass) Supports(m RenderMode) bool {
	for _, v := range c.Modes() {
		if v == m {
			return true
		}
	}
	return false
}

// Layer is a partially specified configuration. Nil fields are absent.
type Layer struct {
	Duration    *float64    `json:"duration,omitempty" toml:"duration" yaml:"duration,omitempty"`
	Count       *Count      `json:"count,omitempty" toml:"count" yaml:"count,omitempty"`
	Delay       *float64    `json:"delay,omitempty" toml:"delay" yaml:"delay,omitempty"`
	Easing      *Easing     `json:"easing,omitempty" toml:"easing" yaml:"easing,omitempty"`
	Reverse     *bool       `json:"reverse,omitempty" toml:"reverse" yaml:"reverse,omitempty"`
	Fill        *string     `json:"fill,omitempty" toml:"fill" yaml:"fill,omitempty"`
	FillBase    *string     `json:"fill_base,omitempty" toml:"fill_base" yaml:"fill_base,omitempty"`
	Stroke      *string     `json:"stroke,omitempty" toml:"stroke" yaml:"stroke,omitempty"`
	StrokeWidth *float64    `json:"stroke_width,omitempty" toml:"stroke_width" yaml:"stroke_width,omitempty"`
	RenderMode  *RenderMode `json:"render_mode,omitempty" toml:"render_mode" yaml:"render_mode,omitempty"`
}

// Options is the user-facing animation configuration: top-level fields plus
// per-shape-class override blocks. Every field is optional.
type Options struct {
	Layer `yaml:",inline"`

	Rect *Layer `json:"rect,omitempty" toml:"rect" yaml:"rect,omitempty"`
	Path *Layer `json:"path,omitempty" toml:"path" yaml:"path,omitempty"`

	// OnComplete runs once when a finite animation ends.
	OnComplete func() `json:"-" toml:"-" yaml:"-"`
}

// Ptr returns a pointer to v, for filling optional fields.
func Ptr[T any](v T) *T { return &v }
