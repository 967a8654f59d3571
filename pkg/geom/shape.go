package geom

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tdewolff/canvas"

	"github.com/matzehuels/svgreveal/pkg/dom"
)

// ErrUnsupported is returned when an element has no measurable geometry.
var ErrUnsupported = errors.New("geom: unsupported element")

// Rect is an axis-aligned box.
type Rect struct{ X, Y, W, H float64 }

// Perimeter returns 2(W+H).
func (r Rect) Perimeter() float64 { return 2 * (r.W + r.H) }

// Point is a 2D coordinate.
type Point struct{ X, Y float64 }

// Measurer provides the geometry capabilities of a rendering host.
type Measurer interface {
	// TotalLength returns the rendered contour length of el.
	TotalLength(el *dom.Element) (float64, error)
	// BBox returns the untransformed bounding box of el.
	BBox(el *dom.Element) (Rect, error)
}

// Default measures elements from their geometry attributes.
var Default Measurer = attrMeasurer{}

type attrMeasurer struct{}

func (attrMeasurer) TotalLength(el *dom.Element) (float64, error) {
	return TotalLength(el.Tag(), attrGetter(el))
}

func (attrMeasurer) BBox(el *dom.Element) (Rect, error) {
	return BBox(el.Tag(), attrGetter(el))
}

// attrGetter looks up attributes of el, resolving percentages against the
// viewport of the nearest <svg> ancestor.
func attrGetter(el *dom.Element) func(string) string {
	return func(name string) string {
		v, _ := el.Attr(name)
		v = strings.TrimSpace(v)
		pct, ok := strings.CutSuffix(v, "%")
		if !ok {
			return v
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(pct), 64)
		if err != nil {
			return v
		}
		w, h := viewport(el)
		return strconv.FormatFloat(f/100*axis(name, w, h), 'g', -1, 64)
	}
}

// axis returns the reference length for a percentage on attribute name.
func axis(name string, w, h float64) float64 {
	switch name {
	case "x", "cx", "x1", "x2", "width", "rx":
		return w
	case "y", "cy", "y1", "y2", "height", "ry":
		return h
	}
	return math.Sqrt((w*w + h*h) / 2)
}

// viewport returns the user-space size of the nearest <svg> ancestor: its
// viewBox when present, else its width and height. Unknown sizes are 0.
func viewport(el *dom.Element) (w, h float64) {
	for cur := el.Parent(); cur != nil; cur = cur.Parent() {
		if cur.Tag() != "svg" {
			continue
		}
		if vb, ok := cur.Attr("viewBox"); ok {
			if f := parseNumbers(vb); len(f) == 4 {
				return f[2], f[3]
			}
		}
		sw, _ := cur.Attr("width")
		sh, _ := cur.Attr("height")
		return number(sw), number(sh)
	}
	return 0, 0
}

// TotalLength computes the contour length of a shape described by tag and
// its attribute lookup.
func TotalLength(tag string, attr func(string) string) (float64, error) {
	tag = strings.ToLower(tag)
	switch tag {
	case "path":
		p, err := ParsePath(attr("d"))
		if p == nil {
			return 0, err
		}
		return p.Length(), nil
	case "rect":
		r, err := BBox(tag, attr)
		if err != nil {
			return 0, err
		}
		return r.Perimeter(), nil
	case "circle":
		r := number(attr("r"))
		if r <= 0 {
			return 0, nil
		}
		return canvas.Circle(r).Length(), nil
	case "ellipse":
		rx, ry := number(attr("rx")), number(attr("ry"))
		if rx <= 0 || ry <= 0 {
			return 0, nil
		}
		return canvas.Ellipse(rx, ry).Length(), nil
	case "line", "polyline", "polygon":
		return polyPath(tag, attr).Length(), nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupported, tag)
}

// BBox computes the bounding box of a shape described by tag and its
// attribute lookup.
func BBox(tag string, attr func(string) string) (Rect, error) {
	tag = strings.ToLower(tag)
	switch tag {
	case "rect":
		v := numbers(attr, "x", "y", "width", "height")
		return Rect{X: v[0], Y: v[1], W: math.Max(0, v[2]), H: math.Max(0, v[3])}, nil
	case "circle":
		v := numbers(attr, "cx", "cy", "r")
		r := math.Max(0, v[2])
		return Rect{X: v[0] - r, Y: v[1] - r, W: 2 * r, H: 2 * r}, nil
	case "ellipse":
		v := numbers(attr, "cx", "cy", "rx", "ry")
		rx, ry := math.Max(0, v[2]), math.Max(0, v[3])
		return Rect{X: v[0] - rx, Y: v[1] - ry, W: 2 * rx, H: 2 * ry}, nil
	case "line", "polyline", "polygon":
		return fromCanvas(polyPath(tag, attr).Bounds()), nil
	case "path":
		p, err := ParsePath(attr("d"))
		if p == nil {
			return Rect{}, err
		}
		return p.Bounds(), nil
	}
	return Rect{}, fmt.Errorf("%w: %s", ErrUnsupported, tag)
}

// polyPath builds the outline of a line, polyline or polygon.
func polyPath(tag string, attr func(string) string) *canvas.Path {
	var pts []Point
	if tag == "line" {
		v := numbers(attr, "x1", "y1", "x2", "y2")
		pts = []Point{{v[0], v[1]}, {v[2], v[3]}}
	} else {
		pts = parsePoints(attr("points"))
	}
	p := &canvas.Path{}
	for i, pt := range pts {
		if i == 0 {
			p.MoveTo(pt.X, pt.Y)
			continue
		}
		p.LineTo(pt.X, pt.Y)
	}
	if tag == "polygon" && len(pts) > 2 {
		p.Close()
	}
	return p
}

// numbers reads numeric attributes. Absent or unparsable values are 0, each
// attribute on its own.
func numbers(attr func(string) string, names ...string) []float64 {
	out := make([]float64, len(names))
	for i, n := range names {
		out[i] = number(attr(n))
	}
	return out
}

func number(raw string) float64 {
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "px")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func parseNumbers(s string) []float64 {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			break
		}
		out = append(out, v)
	}
	return out
}

// parsePoints reads coordinate pairs up to the first malformed number. An
// unpaired trailing coordinate is dropped.
func parsePoints(s string) []Point {
	nums := parseNumbers(s)
	pts := make([]Point, 0, len(nums)/2)
	for i := 0; i+1 < len(nums); i += 2 {
		pts = append(pts, Point{nums[i], nums[i+1]})
	}
	return pts
}
