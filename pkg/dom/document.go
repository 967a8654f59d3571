package dom

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

const (
	// SVGNamespace is the SVG XML namespace.
	SVGNamespace = "http://www.w3.org/2000/svg"

	xmlNamespace = "http://www.w3.org/XML/1998/namespace"
)

// ErrNoRoot is returned when the input contains no root element.
var ErrNoRoot = errors.New("dom: document has no root element")

// Document is a parsed SVG document.
type Document struct {
	Root *Element

	prolog   []Node
	prefixes map[string]string // namespace URL -> prefix ("" for the default namespace)
}

// NewDocument creates a document with an empty <svg> root in the SVG namespace.
func NewDocument() *Document {
	d := &Document{prefixes: map[string]string{xmlNamespace: "xml", SVGNamespace: ""}}
	root := &Element{Name: xml.Name{Space: SVGNamespace, Local: "svg"}, doc: d}
	root.attrs = []xml.Attr{{Name: xml.Name{Local: "xmlns"}, Value: SVGNamespace}}
	d.Root = root
	return d
}

// CreateElement creates a detached element owned by d.
func (d *Document) CreateElement(tag string) *Element {
	space := ""
	if d.Root != nil {
		space = d.Root.Name.Space
	}
	return &Element{Name: xml.Name{Space: space, Local: tag}, doc: d}
}

// ElementByID returns the first connected element whose id attribute equals id.
func (d *Document) ElementByID(id string) *Element {
	if d.Root == nil || id == "" {
		return nil
	}
	var found *Element
	d.Root.walk(func(el *Element) bool {
		if el.ID() == id {
			found = el
			return false
		}
		return true
	})
	return found
}

// Parse reads an SVG document.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = charset.NewReaderLabel

	d := &Document{prefixes: map[string]string{xmlNamespace: "xml"}}
	var stack []*Element
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dom: parse: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name, doc: d, attrs: append([]xml.Attr(nil), t.Attr...)}
			d.recordNamespaces(t.Attr)
			if len(stack) == 0 {
				if d.Root != nil {
					return nil, fmt.Errorf("dom: parse: multiple root elements")
				}
				d.Root = el
			} else {
				stack[len(stack)-1].AppendChild(el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].AppendText(string(t))
			}
		case xml.Comment:
			d.appendNode(stack, &Comment{Data: string(t)})
		case xml.ProcInst:
			d.appendNode(stack, &ProcInst{Target: t.Target, Inst: string(t.Inst)})
		case xml.Directive:
			d.appendNode(stack, &Directive{Data: string(t)})
		}
	}
	if d.Root == nil {
		return nil, ErrNoRoot
	}
	return d, nil
}

func (d *Document) appendNode(stack []*Element, n Node) {
	if len(stack) == 0 {
		if d.Root == nil {
			d.prolog = append(d.prolog, n)
		}
		return
	}
	stack[len(stack)-1].AppendChild(n)
}

func (d *Document) recordNamespaces(attrs []xml.Attr) {
	for _, a := range attrs {
		switch {
		case a.Name.Space == "xmlns":
			d.prefixes[a.Value] = a.Name.Local
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			if _, ok := d.prefixes[a.Value]; !ok {
				d.prefixes[a.Value] = ""
			}
		}
	}
}

// Bytes serializes the document.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	_ = d.Encode(&buf)
	return buf.Bytes()
}

// Encode writes the document as UTF-8 SVG.
func (d *Document) Encode(w io.Writer) error {
	if d.Root == nil {
		return ErrNoRoot
	}
	bw := bufio.NewWriter(w)
	for _, n := range d.prolog {
		d.encodeNode(bw, n)
		if _, ok := n.(*ProcInst); ok {
			bw.WriteByte('\n')
		}
	}
	d.encodeElement(bw, d.Root)
	bw.WriteByte('\n')
	return bw.Flush()
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func (d *Document) encodeNode(w *bufio.Writer, n Node) {
	switch t := n.(type) {
	case *Element:
		d.encodeElement(w, t)
	case *Text:
		textEscaper.WriteString(w, t.Data)
	case *Comment:
		fmt.Fprintf(w, "<!--%s-->", t.Data)
	case *ProcInst:
		if t.Target == "xml" {
			w.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
			return
		}
		fmt.Fprintf(w, "<?%s %s?>", t.Target, t.Inst)
	case *Directive:
		fmt.Fprintf(w, "<!%s>", t.Data)
	}
}

func (d *Document) encodeElement(w *bufio.Writer, el *Element) {
	name := d.qualify(el.Name)
	w.WriteByte('<')
	w.WriteString(name)
	for _, a := range el.Attrs() {
		w.WriteByte(' ')
		w.WriteString(d.qualify(a.Name))
		w.WriteString(`="`)
		xml.EscapeText(w, []byte(a.Value))
		w.WriteByte('"')
	}
	if len(el.children) == 0 {
		w.WriteString("/>")
		return
	}
	w.WriteByte('>')
	for _, c := range el.children {
		d.encodeNode(w, c)
	}
	w.WriteString("</")
	w.WriteString(name)
	w.WriteByte('>')
}

func (d *Document) qualify(n xml.Name) string {
	switch n.Space {
	case "":
		return n.Local
	case "xmlns":
		return "xmlns:" + n.Local
	}
	if p, ok := d.prefixes[n.Space]; ok {
		if p == "" {
			return n.Local
		}
		return p + ":" + n.Local
	}
	return n.Space + ":" + n.Local
}
