// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rewrite replaces references to per-note resource folders with a
// single shared media location.
package rewrite

import (
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/pdiddy/notemigrate/pkg/types"
)

const upperHex = "0123456789ABCDEF"

// EncodeFolderName percent-encodes a folder base name the way exported
// markup links to it ("Note A.resources" becomes "Note%20A.resources").
// Every UTF-8 byte is escaped except ASCII letters, digits and
// - _ . ! ~ * ' ( ).
func EncodeFolderName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

// Rewriter applies every resource folder of a run to content fragments.
type Rewriter struct {
	names  [][]string
	target string
	mode   types.RewriteMode
}

// New builds a Rewriter for the given resource folder paths, in discovery
// order. Only base names matter.
//
// Fragments come from the markup serializer, which writes ' as &#39; in
// text and attribute values, so each folder is matched both as encoded and
// in that escaped form.
func New(folders []string, target string, mode types.RewriteMode) *Rewriter {
	names := make([][]string, 0, len(folders))
	for _, f := range folders {
		encoded := EncodeFolderName(filepath.Base(f))
		forms := []string{encoded}
		if escaped := html.EscapeString(encoded); escaped != encoded {
			forms = append(forms, escaped)
		}
		names = append(names, forms)
	}
	return &Rewriter{names: names, target: target, mode: mode}
}

// Rewrite replaces every occurrence of every encoded folder name. Folders
// that do not appear leave the fragment unchanged.
func (r *Rewriter) Rewrite(fragment string) string {
	for _, forms := range r.names {
		for _, name := range forms {
			if r.mode == types.RewriteSubstring {
				fragment = strings.ReplaceAll(fragment, name, r.target)
				continue
			}
			fragment = ReplaceAnchored(fragment, name, r.target)
		}
	}
	return fragment
}

// ReplaceAnchored replaces occurrences of old that sit on path-like
// boundaries: preceded by start of text, whitespace or one of / " ' ( =
// and followed by end of text, whitespace or one of / " ' ).
func ReplaceAnchored(s, old, replacement string) string {
	if old == "" {
		return s
	}
	var b strings.Builder
	rest := s
	pos := 0
	for {
		i := strings.Index(rest, old)
		if i < 0 {
			break
		}
		start := pos + i
		end := start + len(old)
		if (start == 0 || isLeadBoundary(s[start-1])) && (end == len(s) || isTrailBoundary(s[end])) {
			b.WriteString(s[pos:start])
			b.WriteString(replacement)
		} else {
			b.WriteString(s[pos:end])
		}
		pos = end
		rest = s[pos:]
	}
	if pos == 0 {
		return s
	}
	b.WriteString(s[pos:])
	return b.String()
}

func isLeadBoundary(c byte) bool {
	switch c {
	case '/', '"', '\'', '(', '=', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

func isTrailBoundary(c byte) bool {
	switch c {
	case '/', '"', '\'', ')', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}
