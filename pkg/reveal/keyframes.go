package reveal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// KeyframeRecord is a synthesized keyframe rule and the identifier it was
// named with.
type KeyframeRecord struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Mode RenderMode `json:"mode"`
	Rule string     `json:"rule"`
}

// AnimationName returns the keyframe name for class and id.
func AnimationName(class ShapeClass, id string) string {
	if class == ClassRect {
		return "rect-animation" + id
	}
	return "animation" + id
}

type frame struct {
	offset string
	decls  []string
}

// Synthesize returns the @keyframes rule for mode over a contour of the
// given length. The output is a pure function of its inputs. Modes the
// class does not know produce the empty string.
func Synthesize(class ShapeClass, mode RenderMode, length float64, id string) string {
	if !class.Supports(mode) {
		return ""
	}
	l := formatNumber(length)

	var frames []frame
	switch mode {
	case ModeOutline:
		frames = []frame{
			{"0%", []string{"stroke-dashoffset: " + l}},
			{"100%", []string{"stroke-dashoffset: 0"}},
		}
	case ModeFill:
		frames = []frame{
			{"0%", []string{"fill-opacity: 0", "stroke-dashoffset: " + l}},
			{"60%", []string{"fill-opacity: 0", "stroke-dashoffset: 0"}},
			{"100%", []string{"fill-opacity: 1", "stroke-dashoffset: 0", "stroke-opacity: 0.3"}},
		}
	case ModeMixed:
		frames = []frame{
			{"0%", []string{"fill-opacity: 0", "stroke-dashoffset: " + l}},
			{"50%", []string{"fill-opacity: 0.5", "stroke-dashoffset: " + formatNumber(length/2)}},
			{"100%", []string{"fill-opacity: 1", "stroke-dashoffset: 0"}},
		}
	case ModeGrow:
		frames = []frame{
			{"0%", []string{"transform: scale(0)"}},
			{"100%", []string{"transform: scale(1)"}},
		}
	case ModeFadeIn:
		frames = []frame{
			{"0%", []string{"opacity: 0"}},
			{"100%", []string{"opacity: 1"}},
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "@keyframes %s {\n", AnimationName(class, id))
	for _, f := range frames {
		fmt.Fprintf(&sb, "  %s { %s; }\n", f.offset, strings.Join(f.decls, "; "))
	}
	sb.WriteString("}")
	return sb.String()
}

// formatNumber prints v with at most four decimals and no trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}
