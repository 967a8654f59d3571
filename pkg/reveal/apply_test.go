package reveal

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/svgreveal/pkg/dom"
	"github.com/matzehuels/svgreveal/pkg/geom"
	"github.com/matzehuels/svgreveal/pkg/observability"
	"github.com/matzehuels/svgreveal/pkg/timeline"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" xmlns:x="urn:other">
  <g fill="blue">
    <path id="line" d="M0 0 H120"/>
    <rect id="box" x="0" y="0" width="10" height="20"/>
    <circle id="dot" cx="5" cy="5" r="2" fill="red"/>
  </g>
  <path id="bare" d="M0 0 V10"/>
  <path id="glyph" class="glyph" d="M0 0 H5"/>
  <path id="broken" d=""/>
  <x:path id="foreign" d="M0 0 H1"/>
</svg>`

func parseDoc(t *testing.T) *dom.Document {
	t.Helper()
	return parseSVG(t, testSVG)
}

func parseSVG(t *testing.T, s string) *dom.Document {
	t.Helper()
	doc, err := dom.Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func testAnimator(opts ...Option) *Animator {
	return New(append([]Option{WithIDs(&SequentialIDs{})}, opts...)...)
}

func styleOf(el *dom.Element, prop string) string {
	return el.Style().GetPropertyValue(prop)
}

func wantStyles(t *testing.T, el *dom.Element, want map[string]string) {
	t.Helper()
	for prop, v := range want {
		if got := styleOf(el, prop); got != v {
			t.Errorf("%s: style %s = %q, want %q", el.ID(), prop, got, v)
		}
	}
}

// stubMeasurer fails TotalLength and reports a fixed box.
type stubMeasurer struct{ box geom.Rect }

func (stubMeasurer) TotalLength(*dom.Element) (float64, error) {
	return 0, errors.New("no layout")
}

func (m stubMeasurer) BBox(*dom.Element) (geom.Rect, error) { return m.box, nil }

func TestAnimateElementOutline(t *testing.T) {
	doc := parseDoc(t)
	el := doc.ElementByID("line")

	rec := testAnimator().AnimateElement(el, nil)

	if rec.Name != "animation1" {
		t.Errorf("Name = %q, want animation1", rec.Name)
	}
	wantStyles(t, el, map[string]string{
		"fill":              "none",
		"stroke":            "#333",
		"stroke-width":      "1",
		"stroke-dasharray":  "120",
		"stroke-dashoffset": "120",
		"animation":         "animation1 5s linear 0s infinite normal forwards",
	})
}

func TestAnimateElementRectModes(t *testing.T) {
	tests := []struct {
		mode RenderMode
		want map[string]string
	}{
		{ModeGrow, map[string]string{
			"transform":        "scale(0)",
			"transform-origin": "center",
			"transform-box":    "fill-box",
		}},
		{ModeFadeIn, map[string]string{"opacity": "0"}},
		{ModeOutline, map[string]string{
			"fill":              "none",
			"stroke-dasharray":  "60",
			"stroke-dashoffset": "60",
		}},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			doc := parseDoc(t)
			el := doc.ElementByID("box")
			rec := testAnimator().AnimateElement(el, &Options{Rect: &Layer{RenderMode: Ptr(tt.mode)}})

			if rec.Name != "rect-animation1" {
				t.Errorf("Name = %q, want rect-animation1", rec.Name)
			}
			tt.want["animation"] = "rect-animation1 5s linear 0s infinite normal forwards"
			wantStyles(t, el, tt.want)
		})
	}
}

func TestAnimateElementFillColors(t *testing.T) {
	doc := parseDoc(t)
	a := testAnimator()

	dot := doc.ElementByID("dot")
	a.AnimateElement(dot, &Options{Layer: Layer{RenderMode: Ptr(ModeFill)}})
	wantStyles(t, dot, map[string]string{
		"fill":         "red",
		"stroke":       "#333",
		"fill-opacity": "0",
	})

	line := doc.ElementByID("line")
	a.AnimateElement(line, &Options{Layer: Layer{RenderMode: Ptr(ModeFill), Stroke: Ptr("")}})
	wantStyles(t, line, map[string]string{
		"fill":   "rgb(0, 0, 255)",
		"stroke": "rgb(0, 0, 255)",
	})

	bare := doc.ElementByID("bare")
	a.AnimateElement(bare, &Options{Layer: Layer{RenderMode: Ptr(ModeMixed)}})
	wantStyles(t, bare, map[string]string{
		"fill":             DefaultFillBase,
		"stroke-dasharray": "10",
	})
	if text := doc.ElementByID(StyleElementID).TextContent(); !strings.Contains(text, "stroke-dashoffset: 5; }") {
		t.Errorf("mixed keyframes missing half offset:\n%s", text)
	}

	if got := ResolveFill(doc.ElementByID("box"), "#333", "gold"); got != "gold" {
		t.Errorf("ResolveFill(override) = %q, want gold", got)
	}
}

func TestResolveFillFromStyleSheet(t *testing.T) {
	doc := parseSVG(t, `<svg>
  <style>#p { fill: #ff0000 } path { fill: black } .soft { fill: none }</style>
  <path id="p" d="M0 0 H10"/>
  <path id="q" d="M0 0 H10"/>
  <path id="r" class="soft" d="M0 0 H10"/>
</svg>`)

	tests := []struct {
		id, want string
	}{
		{"p", "rgb(255, 0, 0)"},
		{"q", "#333"}, // opaque black reads as unset
		{"r", "#333"}, // none never wins
	}
	for _, tt := range tests {
		if got := ResolveFill(doc.ElementByID(tt.id), "#333", ""); got != tt.want {
			t.Errorf("ResolveFill(%s) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestAnimateElementSuppressedOnClassedElements(t *testing.T) {
	doc := parseDoc(t)
	el := doc.ElementByID("glyph")
	testAnimator().AnimateElement(el, nil)

	wantStyles(t, el, map[string]string{
		"fill":             "",
		"stroke-width":     "",
		"stroke-dasharray": "5",
	})
}

func TestAnimateElementLengthClamp(t *testing.T) {
	doc := parseDoc(t)
	el := doc.ElementByID("broken")
	testAnimator().AnimateElement(el, nil)
	wantStyles(t, el, map[string]string{"stroke-dasharray": "1"})
}

func TestResolveLengthBBoxFallback(t *testing.T) {
	tests := []struct {
		name string
		box  geom.Rect
		want float64
	}{
		{"perimeter of box", geom.Rect{W: 3, H: 4}, 14},
		{"zero box clamps", geom.Rect{}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t)
			el := doc.ElementByID("line")
			m := stubMeasurer{box: tt.box}

			if got := ResolveLength(m, el, ClassGeneric); got != tt.want {
				t.Errorf("ResolveLength() = %v, want %v", got, tt.want)
			}
			testAnimator(WithMeasurer(m)).AnimateElement(el, nil)
			want := formatNumber(tt.want)
			wantStyles(t, el, map[string]string{
				"stroke-dasharray":  want,
				"stroke-dashoffset": want,
			})
		})
	}
}

func TestAnimateElementNil(t *testing.T) {
	if got := testAnimator().AnimateElement(nil, nil); got != (KeyframeRecord{}) {
		t.Errorf("AnimateElement(nil) = %+v, want zero record", got)
	}
}

func TestRegistry(t *testing.T) {
	doc := parseDoc(t)
	a := testAnimator()
	a.AnimateElement(doc.ElementByID("line"), nil)
	a.AnimateElement(doc.ElementByID("box"), nil)

	style := doc.Root.ChildElements()[0]
	if style.Tag() != "style" || style.ID() != StyleElementID {
		t.Fatalf("first child = <%s id=%q>, want shared style element", style.Tag(), style.ID())
	}

	rules := style.Sheet().Rules()
	if len(rules) != 2 {
		t.Fatalf("Rules() = %q, want 2 rules", rules)
	}
	if !strings.HasPrefix(rules[0], "@keyframes animation1 ") || !strings.HasPrefix(rules[1], "@keyframes rect-animation2 ") {
		t.Errorf("Rules() = %q", rules)
	}

	recs := a.Registry().Records()
	if len(recs) != 2 {
		t.Fatalf("Records() = %+v, want 2", recs)
	}
	if recs[0].Name != "animation1" || recs[1].Mode != ModeGrow {
		t.Errorf("Records() = %+v", recs)
	}

	if a.Registry().Register(nil, recs[0]) {
		t.Error("Register(nil doc) should fail")
	}
	if a.Registry().Register(doc, KeyframeRecord{Name: "empty"}) {
		t.Error("Register(empty rule) should fail")
	}
	if got := a.Registry().Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

func TestRegistryTextFallback(t *testing.T) {
	doc := dom.NewDocument()
	holder := doc.CreateElement("g")
	holder.SetAttr("id", StyleElementID)
	doc.Root.AppendChild(holder)

	hooks := &countingHooks{}
	observability.SetRevealHooks(hooks)
	defer observability.Reset()

	r := NewRegistry(nil)
	if !r.Register(doc, KeyframeRecord{Name: "animationq", Rule: Synthesize(ClassGeneric, ModeOutline, 3, "q")}) {
		t.Fatal("Register() = false")
	}
	if !strings.Contains(holder.TextContent(), "@keyframes animationq") {
		t.Errorf("holder text = %q", holder.TextContent())
	}
	if hooks.fallbacks != 1 {
		t.Errorf("fallbacks = %d, want 1", hooks.fallbacks)
	}
}

type countingHooks struct {
	observability.NoopRevealHooks
	fallbacks int
}

func (h *countingHooks) OnKeyframesRegistered(_ string, fallback bool) {
	if fallback {
		h.fallbacks++
	}
}

func TestAnimateStagger(t *testing.T) {
	doc := parseDoc(t)
	recs := testAnimator().Animate(doc.Root, &Options{Layer: Layer{Delay: Ptr(0.5)}})

	ids := []string{"line", "box", "dot", "bare", "glyph", "broken"}
	if len(recs) != len(ids) {
		t.Fatalf("Animate() = %d records, want %d (foreign namespace skipped)", len(recs), len(ids))
	}
	for i, id := range ids {
		sh, err := timeline.ParseShorthand(styleOf(doc.ElementByID(id), "animation"))
		if err != nil {
			t.Fatalf("%s: %v", id, err)
		}
		if want := time.Duration(500+100*i) * time.Millisecond; sh.Delay != want {
			t.Errorf("%s delay = %v, want %v", id, sh.Delay, want)
		}
	}
	if got := styleOf(doc.ElementByID("foreign"), "animation"); got != "" {
		t.Errorf("foreign animation = %q, want empty", got)
	}
}

func TestAnimateShapeDelayOverridesStagger(t *testing.T) {
	doc := parseDoc(t)
	testAnimator().Animate(doc.Root, &Options{Rect: &Layer{Delay: Ptr(2.0)}})
	if got := styleOf(doc.ElementByID("box"), "animation"); !strings.Contains(got, " 2s infinite") {
		t.Errorf("box animation = %q, want 2s delay", got)
	}
}

func TestAnimateNilRoot(t *testing.T) {
	if got := testAnimator().Animate(nil, nil); got != nil {
		t.Errorf("Animate(nil) = %+v, want nil", got)
	}
}

func TestCompletionFiresOnceForFiniteCount(t *testing.T) {
	doc := parseDoc(t)
	clock := timeline.NewClock(doc.Root)
	a := testAnimator(WithScheduler(clock))

	el := doc.ElementByID("line")
	calls := 0
	a.AnimateElement(el, &Options{
		Layer:      Layer{Duration: Ptr(1.0), Count: Ptr(Count(3))},
		OnComplete: func() { calls++ },
	})

	steps := []struct {
		advance time.Duration
		want    int
	}{
		{2900 * time.Millisecond, 0},
		{200 * time.Millisecond, 1},
		{10 * time.Second, 1},
	}
	for _, s := range steps {
		clock.Advance(s.advance)
		if calls != s.want {
			t.Fatalf("after %v: calls = %d, want %d", clock.Now(), calls, s.want)
		}
	}
	if n := el.ListenerCount(dom.EventAnimationEnd); n != 0 {
		t.Errorf("listeners left = %d, want 0", n)
	}
}

func TestCompletionNeverFiresForInfinite(t *testing.T) {
	doc := parseDoc(t)
	clock := timeline.NewClock(doc.Root)
	a := testAnimator(WithScheduler(clock))

	el := doc.ElementByID("line")
	calls := 0
	a.AnimateElement(el, &Options{OnComplete: func() { calls++ }})

	clock.Advance(time.Hour)
	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
	if n := el.ListenerCount(dom.EventAnimationEnd); n != 1 {
		t.Errorf("listeners = %d, want 1", n)
	}
}

func TestCompletionIgnoresOtherAnimations(t *testing.T) {
	el := dom.NewDocument().CreateElement("path")
	calls := 0
	onAnimationEnd(el, "animation1", func() { calls++ })

	el.DispatchEvent(dom.Event{Type: dom.EventAnimationEnd, AnimationName: "animation9"})
	if calls != 0 {
		t.Fatalf("calls after foreign event = %d, want 0", calls)
	}
	el.DispatchEvent(dom.Event{Type: dom.EventAnimationEnd, AnimationName: "animation1"})
	el.DispatchEvent(dom.Event{Type: dom.EventAnimationEnd, AnimationName: "animation1"})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestControl(t *testing.T) {
	doc := parseDoc(t)
	clock := timeline.NewClock(doc.Root)
	a := testAnimator(WithScheduler(clock))
	a.Animate(doc.Root, nil)

	el := doc.ElementByID("line")
	original := styleOf(el, "animation")

	if n := a.Control(doc.Root, ActionPause); n != 6 {
		t.Errorf("pause affected %d, want 6", n)
	}
	wantStyles(t, el, map[string]string{"animation-play-state": "paused"})
	if n := a.Control(doc.Root, ActionPlay); n != 6 {
		t.Errorf("play affected %d, want 6", n)
	}
	wantStyles(t, el, map[string]string{"animation-play-state": "running"})

	a.Control(doc.Root, ActionReset)
	wantStyles(t, el, map[string]string{"animation": "none"})
	clock.Advance(ResetDelay)
	wantStyles(t, el, map[string]string{"animation": original})
	if n := clock.Pending(); n != 0 {
		t.Errorf("Pending() = %d, want 0", n)
	}

	if n := a.Control(doc.Root, Action("rewind")); n != 0 {
		t.Errorf("unknown action affected %d, want 0", n)
	}
	if n := a.Control(nil, ActionPlay); n != 0 {
		t.Errorf("nil root affected %d, want 0", n)
	}
}

func TestParseAction(t *testing.T) {
	got, err := ParseAction(" Pause ")
	if err != nil || got != ActionPause {
		t.Errorf("ParseAction(Pause) = %q, %v", got, err)
	}
	if _, err := ParseAction("stop"); err == nil {
		t.Error("ParseAction(stop) should fail")
	}
}

func TestKebab(t *testing.T) {
	tests := []struct{ in, want string }{
		{"fill", "fill"},
		{"strokeDasharray", "stroke-dasharray"},
		{"animationPlayState", "animation-play-state"},
	}
	for _, tt := range tests {
		if got := Kebab(tt.in); got != tt.want {
			t.Errorf("Kebab(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := PropTransformBox.String(); got != "transform-box" {
		t.Errorf("PropTransformBox = %q", got)
	}
}

func TestIsSuppressedProperty(t *testing.T) {
	tests := []struct {
		class string
		prop  Property
		want  bool
	}{
		{"glyph", PropFill, true},
		{"a b", PropStrokeWidth, true},
		{"glyph", PropStroke, false},
		{"", PropFill, false},
	}
	for _, tt := range tests {
		if got := IsSuppressedProperty(tt.class, tt.prop); got != tt.want {
			t.Errorf("IsSuppressedProperty(%q, %v) = %v, want %v", tt.class, tt.prop, got, tt.want)
		}
	}
}

func TestPackageLevelAnimate(t *testing.T) {
	doc := parseDoc(t)
	rec := AnimateElement(doc.ElementByID("dot"), nil)
	if len(rec.ID) != 8 || rec.Name != "animation"+rec.ID {
		t.Errorf("AnimateElement() = %+v", rec)
	}
}
