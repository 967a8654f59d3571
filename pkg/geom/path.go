package geom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tdewolff/canvas"
)

// ErrPathSyntax is returned for malformed path data.
var ErrPathSyntax = errors.New("geom: invalid path data")

// Path is parsed SVG path data.
type Path struct{ p *canvas.Path }

// ParsePath parses SVG path data. Like a browser, it keeps everything drawn
// before the first malformed command: on bad input it returns that prefix
// together with an error wrapping ErrPathSyntax. The returned path is nil
// only when nothing is drawable, which includes data not starting with a
// moveto command.
func ParsePath(d string) (*Path, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return nil, fmt.Errorf("%w: empty", ErrPathSyntax)
	}
	if d[0] != 'M' && d[0] != 'm' {
		return nil, fmt.Errorf("%w: must start with a moveto", ErrPathSyntax)
	}
	p, err := canvas.ParseSVGPath(d)
	if err == nil {
		return &Path{p: p}, nil
	}
	perr := fmt.Errorf("%w: %v", ErrPathSyntax, err)
	cmds := splitCommands(d)
	for n := len(cmds) - 1; n > 0; n-- {
		if p, err := canvas.ParseSVGPath(strings.Join(cmds[:n], "")); err == nil {
			return &Path{p: p}, perr
		}
	}
	return nil, perr
}

// splitCommands cuts path data before every letter that can start a
// command, unknown ones included. Exponent markers are not cut.
func splitCommands(d string) []string {
	var out []string
	start := 0
	for i := 1; i < len(d); i++ {
		if isCommand(d[i]) {
			out = append(out, d[start:i])
			start = i
		}
	}
	return append(out, d[start:])
}

func isCommand(c byte) bool {
	return (c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') && c != 'e' && c != 'E'
}

// Length returns the contour length of all subpaths.
func (p *Path) Length() float64 {
	if p == nil || p.p == nil {
		return 0
	}
	return p.p.Length()
}

// Bounds returns the tight bounding box of the path.
func (p *Path) Bounds() Rect {
	if p == nil || p.p == nil {
		return Rect{}
	}
	return fromCanvas(p.p.Bounds())
}

func fromCanvas(r canvas.Rect) Rect {
	return Rect{X: r.X0, Y: r.Y0, W: r.W(), H: r.H()}
}
