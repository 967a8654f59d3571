package geom

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/svgreveal/pkg/dom"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-3*math.Max(1, math.Abs(b)) }

func TestParsePathLength(t *testing.T) {
	tests := []struct {
		name string
		d    string
		want float64
	}{
		{"single line", "M0 0 L30 40", 50},
		{"relative", "m10 10 l30 40", 50},
		{"implicit lineto", "M0 0 10 0 10 10", 20},
		{"h and v", "M0 0 H10 V10 h-10 v-10", 40},
		{"closed", "M0 0 L10 0 L10 10 Z", 20 + math.Sqrt2*10},
		{"straight cubic", "M0 0 C10 0 20 0 30 0", 30},
		{"half circle arc", "M0 0 A10 10 0 0 1 20 0", math.Pi * 10},
		{"compact numbers", "M0,0L3-4", 5},
		{"smooth quad", "M0 0 Q5 0 10 0 T20 0", 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePath(tt.d)
			if err != nil {
				t.Fatalf("ParsePath(%q): %v", tt.d, err)
			}
			if got := p.Length(); !approx(got, tt.want) {
				t.Errorf("Length() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParsePathErrors(t *testing.T) {
	tests := []struct {
		d        string
		drawable bool
		length   float64
	}{
		{"", false, 0},
		{"   ", false, 0},
		{"L10 10", false, 0},
		{"10 10", false, 0},
		{"M0 0 L10", true, 0},
		{"M0 0 Z 5", true, 0},
		{"M0 0 H100 V100 Q", true, 200},
		{"M0 0 H10 X5 V10", true, 10},
	}
	for _, tt := range tests {
		p, err := ParsePath(tt.d)
		if !errors.Is(err, ErrPathSyntax) {
			t.Errorf("ParsePath(%q) error = %v, want ErrPathSyntax", tt.d, err)
		}
		if (p != nil) != tt.drawable {
			t.Errorf("ParsePath(%q) path = %v, drawable %v", tt.d, p, tt.drawable)
			continue
		}
		if got := p.Length(); !approx(got, tt.length) {
			t.Errorf("ParsePath(%q).Length() = %v, want %v", tt.d, got, tt.length)
		}
	}
}

func TestTotalLengthKeepsDrawnPrefix(t *testing.T) {
	got, err := TotalLength("path", attrs("d", "M0 0 H100 V100 Q"))
	if err != nil {
		t.Fatalf("TotalLength: %v", err)
	}
	if !approx(got, 200) {
		t.Errorf("TotalLength() = %v, want 200", got)
	}
	box, err := BBox("path", attrs("d", "M0 0 H100 V100 Q"))
	if err != nil {
		t.Fatalf("BBox: %v", err)
	}
	if want := (Rect{W: 100, H: 100}); box != want {
		t.Errorf("BBox() = %+v, want %+v", box, want)
	}
}

func TestPathBounds(t *testing.T) {
	p, err := ParsePath("M10 20 L40 20 L40 60")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := p.Bounds(), (Rect{X: 10, Y: 20, W: 30, H: 40}); got != want {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}
}

func attrs(kv ...string) func(string) string {
	m := map[string]string{}
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = kv[i+1]
	}
	return func(k string) string { return m[k] }
}

func TestShapeLengths(t *testing.T) {
	tests := []struct {
		tag  string
		attr func(string) string
		want float64
	}{
		{"rect", attrs("width", "20", "height", "10"), 60},
		{"circle", attrs("r", "5"), 10 * math.Pi},
		{"ellipse", attrs("rx", "5", "ry", "5"), 10 * math.Pi},
		{"line", attrs("x1", "0", "y1", "0", "x2", "3", "y2", "4"), 5},
		{"polyline", attrs("points", "0,0 10,0 10,10"), 20},
		{"polygon", attrs("points", "0,0 10,0 10,10 0,10"), 40},
		{"RECT", attrs("width", "1px", "height", "2"), 6},
	}
	for _, tt := range tests {
		got, err := TotalLength(tt.tag, tt.attr)
		if err != nil {
			t.Fatalf("TotalLength(%s): %v", tt.tag, err)
		}
		if !approx(got, tt.want) {
			t.Errorf("TotalLength(%s) = %v, want %v", tt.tag, got, tt.want)
		}
	}

	if _, err := TotalLength("text", attrs()); !errors.Is(err, ErrUnsupported) {
		t.Errorf("text error = %v, want ErrUnsupported", err)
	}
}

func TestShapeBadAttributes(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		attr func(string) string
		want float64
	}{
		{"non-numeric radius", "circle", attrs("r", "abc"), 0},
		{"bad width keeps height", "rect", attrs("width", "wide", "height", "10"), 20},
		{"negative rect side", "rect", attrs("width", "-5", "height", "10"), 20},
		{"bad trailing point", "polyline", attrs("points", "0,0 10,0 10,x 20,20"), 10},
		{"unpaired coordinate", "polyline", attrs("points", "0,0 0,5 9"), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TotalLength(tt.tag, tt.attr)
			if err != nil {
				t.Fatalf("TotalLength: %v", err)
			}
			if !approx(got, tt.want) {
				t.Errorf("TotalLength() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultMeasurerPercentages(t *testing.T) {
	doc, err := dom.Parse(strings.NewReader(`<svg viewBox="0 0 200 100" width="50">
  <rect id="half" width="50%" height="10"/>
  <g><circle id="c" cx="50%" cy="50%" r="10%"/></g>
</svg>`))
	if err != nil {
		t.Fatal(err)
	}

	got, err := Default.TotalLength(doc.ElementByID("half"))
	if err != nil {
		t.Fatal(err)
	}
	if got != 220 {
		t.Errorf("rect TotalLength() = %v, want 220", got)
	}

	box, err := Default.BBox(doc.ElementByID("c"))
	if err != nil {
		t.Fatal(err)
	}
	r := 0.1 * math.Sqrt((200*200+100*100)/2.0)
	if !approx(box.X, 100-r) || !approx(box.Y, 50-r) || !approx(box.W, 2*r) {
		t.Errorf("circle BBox() = %+v, want centered at (100, 50) with r %v", box, r)
	}
}

func TestDefaultMeasurer(t *testing.T) {
	doc, err := dom.Parse(strings.NewReader(`<svg><circle cx="10" cy="10" r="4"/></svg>`))
	if err != nil {
		t.Fatal(err)
	}
	c := doc.Root.QueryAll("circle")[0]

	box, err := Default.BBox(c)
	if err != nil {
		t.Fatal(err)
	}
	if want := (Rect{X: 6, Y: 6, W: 8, H: 8}); box != want {
		t.Errorf("BBox() = %+v, want %+v", box, want)
	}
	if got := box.Perimeter(); got != 32 {
		t.Errorf("Perimeter() = %v, want 32", got)
	}
}
