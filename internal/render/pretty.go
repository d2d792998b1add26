// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const indentUnit = "  "

// verbatim elements keep their serialized form untouched: their content is
// whitespace-sensitive or not markup at all.
var verbatim = map[string]bool{
	"pre": true, "textarea": true, "listing": true, "xmp": true, "plaintext": true,
	"script": true, "style": true, "title": true, "noscript": true,
	"iframe": true, "noembed": true, "noframes": true,
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "keygen": true, "link": true,
	"meta": true, "param": true, "source": true, "track": true, "wbr": true,
}

// Prettify reformats an HTML fragment: one tag or text run per line,
// children indented two spaces, runs of HTML whitespace in text collapsed.
// Prettify(Prettify(x)) == Prettify(x).
func Prettify(fragment string) (string, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return "", fmt.Errorf("parsing fragment: %w", err)
	}

	var b strings.Builder
	for _, n := range nodes {
		if err := writeNode(&b, n, 0); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func writeNode(b *strings.Builder, n *html.Node, depth int) error {
	indent := strings.Repeat(indentUnit, depth)

	switch n.Type {
	case html.TextNode:
		text := collapseSpace(n.Data)
		if text == "" {
			return nil
		}
		b.WriteString(indent)
		b.WriteString(html.EscapeString(text))
		b.WriteByte('\n')

	case html.CommentNode:
		b.WriteString(indent)
		b.WriteString("<!--")
		b.WriteString(n.Data)
		b.WriteString("-->\n")

	case html.ElementNode:
		if verbatim[n.Data] {
			var buf bytes.Buffer
			if err := html.Render(&buf, n); err != nil {
				return fmt.Errorf("rendering <%s>: %w", n.Data, err)
			}
			b.WriteString(indent)
			b.Write(buf.Bytes())
			b.WriteByte('\n')
			return nil
		}

		b.WriteString(indent)
		writeStartTag(b, n)
		if voidElements[n.Data] {
			b.WriteByte('\n')
			return nil
		}
		if !hasContent(n) {
			b.WriteString("</" + n.Data + ">\n")
			return nil
		}
		b.WriteByte('\n')
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := writeNode(b, c, depth+1); err != nil {
				return err
			}
		}
		b.WriteString(indent)
		b.WriteString("</" + n.Data + ">\n")
	}
	return nil
}

func writeStartTag(b *strings.Builder, n *html.Node) {
	b.WriteByte('<')
	b.WriteString(n.Data)
	for _, a := range n.Attr {
		b.WriteByte(' ')
		if a.Namespace != "" {
			b.WriteString(a.Namespace)
			b.WriteByte(':')
		}
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a.Val))
		b.WriteByte('"')
	}
	b.WriteByte('>')
}

// hasContent reports whether n has any child that prints something.
func hasContent(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.TextNode || collapseSpace(c.Data) != "" {
			return true
		}
	}
	return false
}

// collapseSpace trims and collapses HTML whitespace. Non-breaking spaces
// are content, not whitespace, and survive.
func collapseSpace(s string) string {
	return strings.Join(strings.FieldsFunc(s, isHTMLSpace), " ")
}

func isHTMLSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}
