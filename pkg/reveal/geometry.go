package reveal

import (
	"math"

	"github.com/matzehuels/svgreveal/pkg/dom"
	"github.com/matzehuels/svgreveal/pkg/geom"
)

// ResolveLength returns the stroke length used for dash animation.
//
// Rectangles always use their bounding-box perimeter. Other shapes use the
// true contour length, falling back to the bounding-box perimeter when the
// measurer cannot provide it. Non-positive or non-finite generic lengths are
// clamped to 1.
func ResolveLength(m geom.Measurer, el *dom.Element, class ShapeClass) float64 {
	if m == nil {
		m = geom.Default
	}
	if class == ClassRect {
		return bboxPerimeter(m, el)
	}

	length, ok := tryTotalLength(m, el)
	if !ok {
		length = bboxPerimeter(m, el)
	}
	if !(length > 0) || math.IsInf(length, 0) {
		length = 1
	}
	return length
}

func tryTotalLength(m geom.Measurer, el *dom.Element) (float64, bool) {
	l, err := m.TotalLength(el)
	if err != nil || math.IsNaN(l) || math.IsInf(l, 0) {
		return 0, false
	}
	return l, true
}

func bboxPerimeter(m geom.Measurer, el *dom.Element) float64 {
	r, err := m.BBox(el)
	if err != nil {
		return 0
	}
	return r.Perimeter()
}
