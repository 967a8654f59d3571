package dom

import (
	"errors"
	"strings"
	"testing"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 100 100">
  <g fill="red">
    <path id="p1" d="M0 0 L10 10"/>
    <rect id="r1" x="0" y="0" width="10" height="20" class="box"/>
  </g>
  <text>a &amp; b</text>
  <use xlink:href="#p1"/>
  <circle id="c1" cx="5" cy="5" r="2" style="fill: blue"/>
</svg>`

func mustParse(t *testing.T, s string) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func TestParseAndEncode(t *testing.T) {
	doc := mustParse(t, sample)
	if doc.Root.Tag() != "svg" {
		t.Fatalf("root tag = %q, want svg", doc.Root.Tag())
	}

	out := string(doc.Bytes())
	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 100 100">`,
		`<path id="p1" d="M0 0 L10 10"/>`,
		`<use xlink:href="#p1"/>`,
		`<text>a &amp; b</text>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\nGot: %s", want, out)
		}
	}

	if _, err := Parse(strings.NewReader(out)); err != nil {
		t.Errorf("re-parse of encoded output failed: %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse(strings.NewReader("")); !errors.Is(err, ErrNoRoot) {
		t.Errorf("empty input error = %v, want ErrNoRoot", err)
	}
	if _, err := Parse(strings.NewReader("<svg></svg><svg></svg>")); err == nil {
		t.Error("expected error for multiple roots")
	}
}

func TestQueryAllDocumentOrder(t *testing.T) {
	doc := mustParse(t, sample)
	got := doc.Root.QueryAll(ShapeTags...)

	var ids []string
	for _, el := range got {
		ids = append(ids, el.ID())
	}
	if strings.Join(ids, ",") != "p1,r1,c1" {
		t.Errorf("QueryAll ids = %v, want [p1 r1 c1]", ids)
	}

	var nilEl *Element
	if nilEl.QueryAll(ShapeTags...) != nil {
		t.Error("QueryAll on nil element should return nil")
	}
}

func TestStyleDeclarations(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("path")
	doc.Root.AppendChild(el)

	s := el.Style()
	s.SetProperty("fill", "none")
	s.SetProperty("stroke-dasharray", "120")
	s.SetProperty("fill", "red")

	if got := s.String(); got != "fill: red; stroke-dasharray: 120" {
		t.Errorf("String() = %q", got)
	}
	if got := s.GetPropertyValue("STROKE-DASHARRAY"); got != "120" {
		t.Errorf("GetPropertyValue = %q, want 120", got)
	}

	s.SetProperty("fill", "")
	if got := s.GetPropertyValue("fill"); got != "" {
		t.Errorf("empty value should remove property, got %q", got)
	}
	if old := s.RemoveProperty("stroke-dasharray"); old != "120" {
		t.Errorf("RemoveProperty = %q, want 120", old)
	}
	if _, ok := el.Attr("style"); ok {
		t.Error("style attribute should be dropped when empty")
	}
}

func TestEventListeners(t *testing.T) {
	el := NewDocument().CreateElement("path")

	calls := 0
	var id ListenerID
	id = el.AddEventListener(EventAnimationEnd, func(Event) {
		calls++
		el.RemoveEventListener(EventAnimationEnd, id)
	})

	el.DispatchEvent(Event{Type: EventAnimationEnd})
	el.DispatchEvent(Event{Type: EventAnimationEnd})

	if calls != 1 {
		t.Errorf("listener ran %d times, want 1", calls)
	}
	if n := el.ListenerCount(EventAnimationEnd); n != 0 {
		t.Errorf("ListenerCount = %d, want 0", n)
	}
}

func TestStyleSheet(t *testing.T) {
	doc := NewDocument()
	style := doc.CreateElement("style")
	if style.Sheet() != nil {
		t.Fatal("detached style element should have no sheet")
	}
	doc.Root.AppendChild(style)

	sheet := style.Sheet()
	if sheet == nil {
		t.Fatal("connected style element should have a sheet")
	}

	if _, err := sheet.InsertRule("@keyframes a { 0% { opacity: 0; } 100% { opacity: 1; } }", 0); err != nil {
		t.Fatalf("InsertRule: %v", err)
	}
	if _, err := sheet.InsertRule(".b { fill: red; }", 1); err != nil {
		t.Fatalf("InsertRule: %v", err)
	}

	tests := []struct {
		name string
		rule string
		idx  int
		want error
	}{
		{"empty", "", 0, ErrSyntax},
		{"unbalanced", "@keyframes x { 0% { }", 0, ErrSyntax},
		{"two rules", ".a{} .b{}", 0, ErrSyntax},
		{"index", ".c { fill: blue; }", 5, ErrIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := sheet.InsertRule(tt.rule, tt.idx); !errors.Is(err, tt.want) {
				t.Errorf("InsertRule(%q) error = %v, want %v", tt.rule, err, tt.want)
			}
		})
	}

	rules := sheet.Rules()
	if len(rules) != 2 || !strings.HasPrefix(rules[0], "@keyframes a") || rules[1] != ".b { fill: red; }" {
		t.Errorf("Rules() = %q", rules)
	}
}

func TestComputedStyle(t *testing.T) {
	doc := mustParse(t, sample)

	tests := []struct {
		id, prop, want string
	}{
		{"p1", "fill", "rgb(255, 0, 0)"}, // inherited from <g>
		{"c1", "fill", "rgb(0, 0, 255)"}, // inline style
		{"p1", "stroke", "none"},
		{"p1", "opacity", "1"},
	}
	for _, tt := range tests {
		got, err := ComputedStyle(doc.ElementByID(tt.id), tt.prop)
		if err != nil {
			t.Fatalf("ComputedStyle(%s, %s): %v", tt.id, tt.prop, err)
		}
		if got != tt.want {
			t.Errorf("ComputedStyle(%s, %s) = %q, want %q", tt.id, tt.prop, got, tt.want)
		}
	}

	bare := NewDocument()
	p := bare.CreateElement("path")
	if _, err := ComputedStyle(p, "fill"); !errors.Is(err, ErrDetached) {
		t.Errorf("detached error = %v, want ErrDetached", err)
	}
	bare.Root.AppendChild(p)
	if got, _ := ComputedStyle(p, "fill"); got != "rgb(0, 0, 0)" {
		t.Errorf("unset fill = %q, want rgb(0, 0, 0)", got)
	}
}

func TestComputedStyleSheetRules(t *testing.T) {
	doc := mustParse(t, `<svg>
  <style>
    path { fill: green }
    .hot { fill: orange }
    path.hot { fill: blue }
    #p { fill: #ff0000 }
    g path { fill: purple }
    rect, circle { stroke: #00f }
    .late { fill: #000 }
    .late { fill: #fff }
    @keyframes k { to { fill: black } }
  </style>
  <path id="p" class="hot" d="M0 0 H10"/>
  <path id="q" class="hot" fill="yellow"/>
  <path id="r"/>
  <g><path id="s"/></g>
  <rect id="t" class="hot" style="stroke: black"/>
  <circle id="u"/>
  <rect id="w" class="x late"/>
</svg>`)

	tests := []struct {
		id, prop, want string
	}{
		{"p", "fill", "rgb(255, 0, 0)"},   // id beats tag and class
		{"q", "fill", "rgb(0, 0, 255)"},   // path.hot beats .hot and the attribute
		{"r", "fill", "rgb(0, 128, 0)"},   // tag selector
		{"s", "fill", "rgb(0, 128, 0)"},   // descendant selectors are not matched
		{"t", "fill", "rgb(255, 165, 0)"}, // class selector
		{"t", "stroke", "rgb(0, 0, 0)"},   // inline style wins
		{"u", "stroke", "rgb(0, 0, 255)"}, // selector list
		{"w", "fill", "rgb(255, 255, 255)"},
	}
	for _, tt := range tests {
		got, err := ComputedStyle(doc.ElementByID(tt.id), tt.prop)
		if err != nil {
			t.Fatalf("ComputedStyle(%s, %s): %v", tt.id, tt.prop, err)
		}
		if got != tt.want {
			t.Errorf("ComputedStyle(%s, %s) = %q, want %q", tt.id, tt.prop, got, tt.want)
		}
	}
}

func TestCSSColor(t *testing.T) {
	tests := []struct{ in, want string }{
		{"black", "rgb(0, 0, 0)"},
		{"#fff", "rgb(255, 255, 255)"},
		{"#336699", "rgb(51, 102, 153)"},
		{"rgb(1,2,3)", "rgb(1, 2, 3)"},
		{"none", "none"},
		{"url(#grad)", "url(#grad)"},
	}
	for _, tt := range tests {
		if got := CSSColor(tt.in); got != tt.want {
			t.Errorf("CSSColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
