package reveal

import (
	"strings"
	"unicode"

	"github.com/matzehuels/svgreveal/pkg/dom"
)

// Property is a style property the engine writes.
type Property int

const (
	PropFill Property = iota
	PropFillOpacity
	PropStroke
	PropStrokeWidth
	PropStrokeDasharray
	PropStrokeDashoffset
	PropStrokeOpacity
	PropOpacity
	PropTransform
	PropTransformOrigin
	PropTransformBox
	PropAnimation
	PropAnimationPlayState
)

var propertyKeys = [...]string{
	PropFill:               "fill",
	PropFillOpacity:        "fillOpacity",
	PropStroke:             "stroke",
	PropStrokeWidth:        "strokeWidth",
	PropStrokeDasharray:    "strokeDasharray",
	PropStrokeDashoffset:   "strokeDashoffset",
	PropStrokeOpacity:      "strokeOpacity",
	PropOpacity:            "opacity",
	PropTransform:          "transform",
	PropTransformOrigin:    "transformOrigin",
	PropTransformBox:       "transformBox",
	PropAnimation:          "animation",
	PropAnimationPlayState: "animationPlayState",
}

// Key returns the camelCase style key.
func (p Property) Key() string {
	if p < 0 || int(p) >= len(propertyKeys) {
		return ""
	}
	return propertyKeys[p]
}

// String returns the kebab-case CSS property name.
func (p Property) String() string { return Kebab(p.Key()) }

// Kebab converts a camelCase style key to its CSS property name.
func Kebab(key string) string {
	var sb strings.Builder
	for i, r := range key {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// IsSuppressedProperty reports whether prop must be left untouched on an
// element with the given class attribute. Elements carrying any class keep
// their own fill and stroke width.
func IsSuppressedProperty(class string, prop Property) bool {
	if strings.TrimSpace(class) == "" {
		return false
	}
	return prop == PropFill || prop == PropStrokeWidth
}

// StyleValue is one property assignment.
type StyleValue struct {
	Prop  Property
	Value string
}

func (v StyleValue) String() string { return v.Prop.String() + ": " + v.Value }

// applyStyle writes values to el in order. An empty value removes the
// property.
func applyStyle(el *dom.Element, values []StyleValue) {
	class := el.Class()
	style := el.Style()
	for _, v := range values {
		if IsSuppressedProperty(class, v.Prop) {
			continue
		}
		style.SetProperty(v.Prop.String(), v.Value)
	}
}
