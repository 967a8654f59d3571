package reveal

import (
	"github.com/matzehuels/svgreveal/pkg/dom"
)

// Stagger is the delay added per element, in seconds, during batch animation.
const Stagger = 0.1

// Animate animates every shape element under root in document order. The
// i-th element starts Stagger*i seconds after the top-level delay. A shape
// block delay, when given, still takes precedence. A nil root is a no-op.
func (a *Animator) Animate(root *dom.Element, opts *Options) []KeyframeRecord {
	if root == nil {
		return nil
	}

	var base Options
	if opts != nil {
		base = *opts
	}
	baseDelay := 0.0
	if base.Delay != nil && nonNegative(*base.Delay) {
		baseDelay = *base.Delay
	}

	var records []KeyframeRecord
	for i, el := range shapes(root) {
		o := base
		o.Delay = Ptr(baseDelay + float64(i)*Stagger)
		records = append(records, a.AnimateElement(el, &o))
	}
	a.logger.Debug("animated shapes", "count", len(records))
	return records
}

// shapes returns the SVG shape descendants of root. Elements from foreign
// namespaces are skipped.
func shapes(root *dom.Element) []*dom.Element {
	all := root.QueryAll(dom.ShapeTags...)
	out := all[:0]
	for _, el := range all {
		if el.Name.Space == "" || el.Name.Space == dom.SVGNamespace {
			out = append(out, el)
		}
	}
	return out
}
