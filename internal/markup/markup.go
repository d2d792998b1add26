// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markup parses exported note documents into a queryable element
// tree. Lookups never fail: they report absence with a boolean so callers
// decide whether a missing element matters.
package markup

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/notemigrate/pkg/types"
)

// Document is a parsed markup document.
type Document struct {
	doc *goquery.Document
}

// Element is a single node of a parsed document.
type Element struct {
	sel *goquery.Selection
}

// Parse builds a Document from raw markup. Malformed markup is repaired the
// way a browser would; only read failures are reported.
func Parse(raw string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing markup: %w", err)
	}
	return &Document{doc: doc}, nil
}

// First returns the first element named tag in document order.
func (d *Document) First(tag string) (Element, bool) {
	sel := d.doc.Find(tag).First()
	if sel.Length() == 0 {
		return Element{}, false
	}
	return Element{sel: sel}, true
}

// All returns every element named tag in document order.
func (d *Document) All(tag string) []Element {
	var out []Element
	d.doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
		out = append(out, Element{sel: s})
	})
	return out
}

// FirstWithAttr returns the first tag element whose attr attribute equals
// value exactly (case-sensitive).
func (d *Document) FirstWithAttr(tag, attr, value string) (Element, bool) {
	sel := d.doc.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, ok := s.Attr(attr)
		return ok && v == value
	}).First()
	if sel.Length() == 0 {
		return Element{}, false
	}
	return Element{sel: sel}, true
}

// Find resolves an ElementSpec: by tag alone when no attribute is given.
func (d *Document) Find(spec types.ElementSpec) (Element, bool) {
	if spec.Attr == "" {
		return d.First(spec.Tag)
	}
	return d.FirstWithAttr(spec.Tag, spec.Attr, spec.Value)
}

// InnerHTML serializes the element's children. The result is the parser's
// canonical form, not the source bytes: void elements end in "/>" and
// ' & < > " are written as entities.
func (e Element) InnerHTML() (string, error) {
	if e.sel == nil {
		return "", nil
	}
	html, err := e.sel.Html()
	if err != nil {
		return "", fmt.Errorf("serializing <%s>: %w", goquery.NodeName(e.sel), err)
	}
	return html, nil
}

// Text returns the combined text of the element and its descendants.
func (e Element) Text() string {
	if e.sel == nil {
		return ""
	}
	return e.sel.Text()
}

// Attr returns the named attribute.
func (e Element) Attr(name string) (string, bool) {
	if e.sel == nil {
		return "", false
	}
	return e.sel.Attr(name)
}

// Attrs returns every attribute of the element.
func (e Element) Attrs() map[string]string {
	out := make(map[string]string)
	if e.sel == nil || len(e.sel.Nodes) == 0 {
		return out
	}
	for _, a := range e.sel.Nodes[0].Attr {
		key := a.Key
		if a.Namespace != "" {
			key = a.Namespace + ":" + a.Key
		}
		out[key] = a.Val
	}
	return out
}
