package dom

import "strings"

// Declaration is a single CSS property assignment.
type Declaration struct {
	Property string
	Value    string
}

// Style is a view over an element's inline style attribute.
type Style struct{ el *Element }

// Style returns the inline style of e.
func (e *Element) Style() Style { return Style{el: e} }

// GetPropertyValue returns the inline value of property, or "".
func (s Style) GetPropertyValue(property string) string {
	property = strings.ToLower(property)
	for _, d := range s.Declarations() {
		if d.Property == property {
			return d.Value
		}
	}
	return ""
}

// SetProperty assigns property. An empty value removes it.
func (s Style) SetProperty(property, value string) {
	property = strings.ToLower(strings.TrimSpace(property))
	value = strings.TrimSpace(value)
	s.el.mu.Lock()
	defer s.el.mu.Unlock()

	decls := s.declsLocked()
	idx := -1
	for i, d := range decls {
		if d.Property == property {
			idx = i
			break
		}
	}
	switch {
	case value == "" && idx >= 0:
		decls = append(decls[:idx], decls[idx+1:]...)
	case value == "":
		return
	case idx >= 0:
		decls[idx].Value = value
	default:
		decls = append(decls, Declaration{Property: property, Value: value})
	}
	s.writeLocked(decls)
}

// RemoveProperty removes property and returns its previous value.
func (s Style) RemoveProperty(property string) string {
	old := s.GetPropertyValue(property)
	s.SetProperty(property, "")
	return old
}

// Declarations returns the parsed declarations in order.
func (s Style) Declarations() []Declaration {
	s.el.mu.Lock()
	defer s.el.mu.Unlock()
	return s.declsLocked()
}

// String returns the serialized declaration block.
func (s Style) String() string {
	return formatDecls(s.Declarations())
}

func (s Style) declsLocked() []Declaration {
	raw, _ := s.el.attrLocked("style")
	return ParseDeclarations(raw)
}

func (s Style) writeLocked(decls []Declaration) {
	if len(decls) == 0 {
		s.el.removeAttrLocked("style")
		return
	}
	s.el.setAttrLocked("style", formatDecls(decls))
}

// ParseDeclarations parses a CSS declaration block such as "fill: red; opacity: 0".
// Malformed entries are skipped.
func ParseDeclarations(block string) []Declaration {
	var out []Declaration
	for _, part := range strings.Split(block, ";") {
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			continue
		}
		out = append(out, Declaration{Property: name, Value: value})
	}
	return out
}

func formatDecls(decls []Declaration) string {
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.Property + ": " + d.Value
	}
	return strings.Join(parts, "; ")
}
