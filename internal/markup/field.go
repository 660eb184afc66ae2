package markup

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reNumber        = regexp.MustCompile(`-?\d+`)
	reBackgroundURL = regexp.MustCompile(`url\((?:["']?)([^"')]+)(?:["']?)\)`)
)

// First returns the first node or nil.
func First(nodes []Node) Node {
	if len(nodes) == 0 {
		return nil
	}

	return nodes[0]
}

// Last returns the last node or nil.
func Last(nodes []Node) Node {
	if len(nodes) == 0 {
		return nil
	}

	return nodes[len(nodes)-1]
}

// Find is Select that tolerates a nil node.
func Find(n Node, selector string) []Node {
	if n == nil {
		return nil
	}

	return n.Select(selector)
}

// Text joins the text of every match of selector under n and trims it.
// An empty selector reads n itself.
func Text(n Node, selector string) string {
	if n == nil {
		return ""
	}
	if selector == "" {
		return strings.TrimSpace(n.Text())
	}

	var b strings.Builder
	for _, m := range n.Select(selector) {
		b.WriteString(m.Text())
	}

	return strings.TrimSpace(b.String())
}

// Attr reads an attribute from the first match of selector under n.
// An empty selector reads n itself.
func Attr(n Node, selector, name string) (string, bool) {
	if n == nil {
		return "", false
	}
	if selector != "" {
		n = First(n.Select(selector))
		if n == nil {
			return "", false
		}
	}

	return n.Attr(name)
}

// AttrOr is Attr with a fallback for a missing attribute.
func AttrOr(n Node, selector, name, fallback string) string {
	if v, ok := Attr(n, selector, name); ok {
		return v
	}

	return fallback
}

// FirstAttr returns the first non-blank value among names, in order.
func FirstAttr(n Node, selector string, names ...string) (string, bool) {
	for _, name := range names {
		if v, ok := Attr(n, selector, name); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), true
		}
	}

	return "", false
}

// ParseInt reads the first run of digits in s. ok is false when s holds no
// number at all, which is distinct from a parsed zero.
func ParseInt(s string) (n int, ok bool) {
	m := reNumber.FindString(s)
	if m == "" {
		return 0, false
	}

	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}

	return n, true
}

// BackgroundURL pulls the first url(...) out of an inline style value.
func BackgroundURL(style string) (string, bool) {
	m := reBackgroundURL.FindStringSubmatch(style)
	if m == nil {
		return "", false
	}

	u := strings.TrimSpace(m[1])
	if u == "" {
		return "", false
	}

	return u, true
}
