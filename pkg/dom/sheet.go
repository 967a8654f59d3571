package dom

import (
	"errors"
	"strings"
)

var (
	// ErrSyntax is returned when a rule is not a single balanced CSS block.
	ErrSyntax = errors.New("dom: invalid css rule")

	// ErrIndex is returned when a rule index is out of range.
	ErrIndex = errors.New("dom: rule index out of range")
)

// StyleSheet is the CSS rule list of a connected <style> element.
// The element text is the single source of truth; every mutation rewrites it.
type StyleSheet struct{ owner *Element }

// Sheet returns the style sheet of a connected <style> element, or nil.
func (e *Element) Sheet() *StyleSheet {
	if e == nil || e.Tag() != "style" || !e.IsConnected() {
		return nil
	}
	return &StyleSheet{owner: e}
}

// Owner returns the <style> element backing the sheet.
func (s *StyleSheet) Owner() *Element { return s.owner }

// Rules returns the top-level rules in order.
func (s *StyleSheet) Rules() []string {
	rules, _ := splitRules(s.owner.TextContent())
	return rules
}

// InsertRule inserts rule at index and returns the index.
func (s *StyleSheet) InsertRule(rule string, index int) (int, error) {
	rule = strings.TrimSpace(rule)
	parsed, rest := splitRules(rule)
	if len(parsed) != 1 || strings.TrimSpace(rest) != "" {
		return 0, ErrSyntax
	}
	rules := s.Rules()
	if index < 0 || index > len(rules) {
		return 0, ErrIndex
	}
	rules = append(rules, "")
	copy(rules[index+1:], rules[index:])
	rules[index] = parsed[0]
	s.owner.SetTextContent("\n" + strings.Join(rules, "\n") + "\n")
	return index, nil
}

// splitRules cuts text into balanced top-level blocks. Text after the last
// complete block is returned as rest. Comments are skipped.
func splitRules(text string) (rules []string, rest string) {
	depth, start := 0, -1
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '/' && i+1 < len(text) && text[i+1] == '*' {
			end := strings.Index(text[i+2:], "*/")
			if end < 0 {
				return rules, text[i:]
			}
			i += end + 3
			continue
		}
		if start < 0 {
			if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
				continue
			}
			start = i
		}
		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return rules, text[start:]
			}
			if depth == 0 {
				rules = append(rules, strings.TrimSpace(text[start:i+1]))
				start = -1
			}
		}
	}
	if start >= 0 {
		return rules, text[start:]
	}
	return rules, ""
}
