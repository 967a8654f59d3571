package dom

import (
	"encoding/xml"
	"strings"
	"sync"
)

// Node is any item in an element's child list.
type Node interface{ node() }

// Text is character data inside an element.
type Text struct{ Data string }

// Comment is an XML comment.
type Comment struct{ Data string }

// ProcInst is a processing instruction such as the XML declaration.
type ProcInst struct {
	Target string
	Inst   string
}

// Directive is a <!...> directive such as a DOCTYPE.
type Directive struct{ Data string }

func (*Element) node()   {}
func (*Text) node()      {}
func (*Comment) node()   {}
func (*ProcInst) node()  {}
func (*Directive) node() {}

// Element is an SVG element.
type Element struct {
	Name xml.Name

	parent   *Element
	doc      *Document
	children []Node

	mu        sync.Mutex
	attrs     []xml.Attr
	listeners map[string][]listener
	nextID    ListenerID
}

// Tag returns the lower-cased local name of the element.
func (e *Element) Tag() string { return strings.ToLower(e.Name.Local) }

// Parent returns the parent element, or nil for the root and detached elements.
func (e *Element) Parent() *Element { return e.parent }

// Document returns the owner document, which may be nil.
func (e *Element) Document() *Document { return e.doc }

// IsConnected reports whether the element is reachable from its owner document's root.
func (e *Element) IsConnected() bool {
	if e.doc == nil || e.doc.Root == nil {
		return false
	}
	cur := e
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur == e.doc.Root
}

// Attr returns the value of an unprefixed attribute.
func (e *Element) Attr(name string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.attrLocked(name)
}

func (e *Element) attrLocked(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets an unprefixed attribute, keeping its position if it already exists.
func (e *Element) SetAttr(name, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setAttrLocked(name, value)
}

func (e *Element) setAttrLocked(name, value string) {
	for i, a := range e.attrs {
		if a.Name.Space == "" && a.Name.Local == name {
			e.attrs[i].Value = value
			return
		}
	}
	e.attrs = append(e.attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
}

// RemoveAttr removes an unprefixed attribute and reports whether it was present.
func (e *Element) RemoveAttr(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.removeAttrLocked(name)
}

func (e *Element) removeAttrLocked(name string) bool {
	for i, a := range e.attrs {
		if a.Name.Space == "" && a.Name.Local == name {
			e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
			return true
		}
	}
	return false
}

// Attrs returns a copy of all attributes in document order.
func (e *Element) Attrs() []xml.Attr {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]xml.Attr, len(e.attrs))
	copy(out, e.attrs)
	return out
}

// ID returns the id attribute.
func (e *Element) ID() string {
	v, _ := e.Attr("id")
	return v
}

// Class returns the raw class attribute.
func (e *Element) Class() string {
	v, _ := e.Attr("class")
	return v
}

// Children returns a copy of the child node list.
func (e *Element) Children() []Node {
	out := make([]Node, len(e.children))
	copy(out, e.children)
	return out
}

// ChildElements returns the element children in order.
func (e *Element) ChildElements() []*Element {
	var out []*Element
	for _, n := range e.children {
		if el, ok := n.(*Element); ok {
			out = append(out, el)
		}
	}
	return out
}

// AppendChild adds n as the last child.
func (e *Element) AppendChild(n Node) {
	e.InsertChild(len(e.children), n)
}

// InsertChild inserts n at position i of the child list. Out-of-range
// positions are clamped. An element that already has a parent is moved.
func (e *Element) InsertChild(i int, n Node) {
	if el, ok := n.(*Element); ok {
		if el.parent != nil {
			el.parent.RemoveChild(el)
		}
		el.parent = e
		el.adopt(e.doc)
	}
	if i < 0 {
		i = 0
	}
	if i > len(e.children) {
		i = len(e.children)
	}
	e.children = append(e.children, nil)
	copy(e.children[i+1:], e.children[i:])
	e.children[i] = n
}

// RemoveChild detaches n and reports whether it was a child of e.
func (e *Element) RemoveChild(n Node) bool {
	for i, c := range e.children {
		if c == n {
			e.children = append(e.children[:i], e.children[i+1:]...)
			if el, ok := n.(*Element); ok {
				el.parent = nil
			}
			return true
		}
	}
	return false
}

func (e *Element) adopt(d *Document) {
	e.doc = d
	for _, c := range e.children {
		if el, ok := c.(*Element); ok {
			el.adopt(d)
		}
	}
}

// TextContent concatenates all descendant text.
func (e *Element) TextContent() string {
	var sb strings.Builder
	e.writeText(&sb)
	return sb.String()
}

func (e *Element) writeText(sb *strings.Builder) {
	for _, c := range e.children {
		switch n := c.(type) {
		case *Text:
			sb.WriteString(n.Data)
		case *Element:
			n.writeText(sb)
		}
	}
}

// SetTextContent replaces all children with a single text node.
func (e *Element) SetTextContent(s string) {
	for _, c := range e.children {
		if el, ok := c.(*Element); ok {
			el.parent = nil
		}
	}
	e.children = nil
	if s != "" {
		e.children = append(e.children, &Text{Data: s})
	}
}

// AppendText appends s to the element's trailing text node.
func (e *Element) AppendText(s string) {
	if s == "" {
		return
	}
	if n := len(e.children); n > 0 {
		if t, ok := e.children[n-1].(*Text); ok {
			t.Data += s
			return
		}
	}
	e.children = append(e.children, &Text{Data: s})
}
