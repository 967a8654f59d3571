package reveal

import (
	"strings"

	"github.com/matzehuels/svgreveal/pkg/dom"
)

// DefaultFillBase is the fill fallback for elements that declare none.
const DefaultFillBase = "#333"

// opaqueBlack is how hosts report a fill that was never set. An element
// explicitly filled black is indistinguishable and also gets the fallback.
const opaqueBlack = "rgb(0, 0, 0)"

// ResolveFill picks the base fill of el. Precedence: override, the fill
// attribute, the computed fill unless it reads as opaque black, fallback.
// A value of "none" never wins.
func ResolveFill(el *dom.Element, fallback, override string) string {
	if override != "" {
		return override
	}
	if v, ok := paintAttr(el, "fill"); ok {
		return v
	}
	if v, ok := tryComputedFill(el); ok && v != "none" && v != opaqueBlack {
		return v
	}
	return fallback
}

// ResolveStroke picks the base stroke of el: its stroke attribute unless
// absent or "none", else fallback.
func ResolveStroke(el *dom.Element, fallback string) string {
	if v, ok := paintAttr(el, "stroke"); ok {
		return v
	}
	return fallback
}

func paintAttr(el *dom.Element, name string) (string, bool) {
	if el == nil {
		return "", false
	}
	v, _ := el.Attr(name)
	if v = strings.TrimSpace(v); v == "" || v == "none" {
		return "", false
	}
	return v, true
}

// tryComputedFill swallows host failures as "no computed value".
func tryComputedFill(el *dom.Element) (string, bool) {
	v, err := dom.ComputedStyle(el, "fill")
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}
