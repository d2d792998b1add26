// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls front matter fields out of parsed note documents.
// The title comes from the <title> element; every other field is described
// by a types.FieldSpec and resolved once, when the Extractor is built.
package extract

import (
	"fmt"
	"strings"

	"github.com/phuslu/log"

	"github.com/pdiddy/notemigrate/internal/markup"
	"github.com/pdiddy/notemigrate/pkg/types"
)

// TitleField is the front matter key of the document title.
const TitleField = "title"

// normalizeFunc stores a raw attribute value under key.
type normalizeFunc func(fm *types.FrontMatter, key, raw string)

var normalizers = map[types.Normalizer]normalizeFunc{
	types.NormalizeNone: func(fm *types.FrontMatter, key, raw string) {
		fm.SetString(key, strings.TrimSpace(raw))
	},
	types.NormalizeList: func(fm *types.FrontMatter, key, raw string) {
		fm.SetList(key, SplitList(raw))
	},
}

type field struct {
	spec  types.FieldSpec
	store normalizeFunc
}

// Extractor builds FrontMatter from parsed documents.
type Extractor struct {
	fields []field
	log    *log.Logger
}

// New resolves the field table. Unknown normalizers, duplicate names and a
// field named "title" are rejected here so extraction itself cannot fail.
func New(specs []types.FieldSpec, logger *log.Logger) (*Extractor, error) {
	seen := map[string]bool{TitleField: true}
	fields := make([]field, 0, len(specs))
	for _, spec := range specs {
		if spec.Name == "" {
			return nil, fmt.Errorf("field spec for <%s %s=%q> has no name", spec.Tag, spec.Attr, spec.Value)
		}
		if seen[spec.Name] {
			return nil, fmt.Errorf("field %q declared twice or reserved", spec.Name)
		}
		seen[spec.Name] = true

		store, ok := normalizers[spec.Normalize]
		if !ok {
			return nil, fmt.Errorf("field %q: unknown normalizer %q", spec.Name, spec.Normalize)
		}
		fields = append(fields, field{spec: spec, store: store})
	}
	return &Extractor{fields: fields, log: logger}, nil
}

// Extract returns the front matter of doc. Missing fields are logged and
// left out; name only labels the log lines.
func (e *Extractor) Extract(doc *markup.Document, name string) *types.FrontMatter {
	fm := types.NewFrontMatter()

	if el, ok := doc.First(TitleField); ok {
		fm.SetString(TitleField, strings.TrimSpace(el.Text()))
	}
	if _, ok := fm.Get(TitleField); !ok {
		e.log.Debug().Str("document", name).Msg("no title")
	}

	for _, f := range e.fields {
		el, ok := doc.Find(f.spec.Element())
		if !ok {
			e.log.Warn().Str("document", name).Str("field", f.spec.Name).
				Msgf("no <%s %s=%q> element, field omitted", f.spec.Tag, f.spec.Attr, f.spec.Value)
			continue
		}
		raw, ok := el.Attr(f.spec.ValueAttr())
		if !ok {
			e.log.Warn().Str("document", name).Str("field", f.spec.Name).
				Msgf("element has no %s attribute, field omitted", f.spec.ValueAttr())
			continue
		}
		f.store(fm, f.spec.Name, raw)
	}
	return fm
}

// SplitList splits a comma-separated value into trimmed tokens, dropping
// empty ones.
func SplitList(raw string) []string {
	var out []string
	for _, tok := range strings.Split(raw, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}
