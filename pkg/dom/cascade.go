package dom

import (
	"slices"
	"strings"
)

// specificity orders matched selectors as (ids, classes, tags).
type specificity [3]int

func (s specificity) less(o specificity) bool {
	for i := range s {
		if s[i] != o[i] {
			return s[i] < o[i]
		}
	}
	return false
}

// sheetValue returns the value of property that the document's <style>
// sheets assign to el. Only compound selectors built from a tag, #id and
// .class parts take part; rules using combinators, attributes or
// pseudo-classes are ignored. Among matches the highest specificity wins,
// and the later rule wins a tie.
func sheetValue(el *Element, property string) string {
	doc := el.Document()
	if doc == nil || doc.Root == nil {
		return ""
	}
	var (
		best  string
		bestS specificity
		found bool
	)
	for _, style := range doc.Root.QueryAll("style") {
		sheet := style.Sheet()
		if sheet == nil {
			continue
		}
		for _, rule := range sheet.Rules() {
			if strings.HasPrefix(rule, "@") {
				continue
			}
			open := strings.IndexByte(rule, '{')
			if open < 0 {
				continue
			}
			spec, ok := matchSelectorList(el, rule[:open])
			if !ok {
				continue
			}
			body := strings.TrimSuffix(rule[open+1:], "}")
			for _, d := range ParseDeclarations(body) {
				if d.Property != property {
					continue
				}
				if !found || !spec.less(bestS) {
					best, bestS, found = stripImportant(d.Value), spec, true
				}
			}
		}
	}
	return best
}

func stripImportant(v string) string {
	if i := strings.Index(v, "!"); i >= 0 {
		return strings.TrimSpace(v[:i])
	}
	return v
}

// matchSelectorList reports the highest specificity among the selectors in
// a comma list that match el.
func matchSelectorList(el *Element, list string) (specificity, bool) {
	var (
		best    specificity
		matched bool
	)
	for _, sel := range strings.Split(list, ",") {
		s, ok := matchCompound(el, strings.TrimSpace(sel))
		if !ok {
			continue
		}
		if !matched || best.less(s) {
			best, matched = s, true
		}
	}
	return best, matched
}

func matchCompound(el *Element, sel string) (specificity, bool) {
	var s specificity
	if sel == "" {
		return s, false
	}
	tag, rest := splitIdent(sel)
	switch {
	case tag == "*":
	case tag != "":
		if !strings.EqualFold(tag, el.Tag()) {
			return s, false
		}
		s[2]++
	}
	classes := strings.Fields(el.Class())
	for rest != "" {
		kind := rest[0]
		name, next := splitIdent(rest[1:])
		if name == "" {
			return s, false
		}
		switch kind {
		case '#':
			if el.ID() != name {
				return s, false
			}
			s[0]++
		case '.':
			if !slices.Contains(classes, name) {
				return s, false
			}
			s[1]++
		default:
			return s, false
		}
		rest = next
	}
	return s, true
}

// splitIdent cuts a leading identifier (or "*") from s.
func splitIdent(s string) (ident, rest string) {
	if strings.HasPrefix(s, "*") {
		return "*", s[1:]
	}
	i := 0
	for i < len(s) {
		c := s[i]
		if c == '-' || c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80 {
			i++
			continue
		}
		break
	}
	return s[:i], s[i:]
}
