package dom

import "strings"

// ShapeTags lists the animatable SVG shape elements.
var ShapeTags = []string{"path", "line", "polyline", "polygon", "rect", "circle", "ellipse"}

// QueryAll returns the descendants of e (not e itself) whose tag matches one
// of tags, in document order. Matching is case-insensitive.
func (e *Element) QueryAll(tags ...string) []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	for _, c := range e.ChildElements() {
		c.walk(func(el *Element) bool {
			if matchesTag(el, tags) {
				out = append(out, el)
			}
			return true
		})
	}
	return out
}

// walk visits e and its descendants in pre-order until fn returns false.
func (e *Element) walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if el, ok := c.(*Element); ok {
			if !el.walk(fn) {
				return false
			}
		}
	}
	return true
}

func matchesTag(el *Element, tags []string) bool {
	for _, t := range tags {
		if strings.EqualFold(el.Name.Local, t) {
			return true
		}
	}
	return false
}
