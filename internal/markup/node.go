// Package markup exposes parsed HTML through a small Node interface so that
// extraction code never touches the concrete DOM library.
package markup

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// Node is one element of a parsed document, or the document itself.
type Node interface {
	// Select returns the descendants matching a CSS selector in document order.
	// An invalid selector matches nothing.
	Select(selector string) []Node
	// Text returns the combined text of the node and its descendants.
	Text() string
	// Attr returns the attribute value and whether it is present.
	Attr(name string) (string, bool)
}

type node struct {
	sel *goquery.Selection
}

// Parse builds a document from raw HTML.
func Parse(body []byte) (Node, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	return node{sel: doc.Selection}, nil
}

func (n node) Select(selector string) []Node {
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil
	}

	found := n.sel.FindMatcher(m)
	out := make([]Node, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		out = append(out, node{sel: s})
	})

	return out
}

func (n node) Text() string {
	return n.sel.Text()
}

func (n node) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}
