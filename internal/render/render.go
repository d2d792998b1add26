// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render assembles output documents: an optional YAML header
// between "---" lines, then the content fragment as HTML (optionally
// pretty-printed) or Markdown.
package render

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"github.com/pdiddy/notemigrate/pkg/types"
)

// Renderer serializes documents according to a run configuration.
type Renderer struct {
	metadata types.MetadataMode
	format   types.OutputFormat
	pretty   bool
	markdown *md.Converter
}

// New returns a Renderer for cfg's metadata mode, format and pretty flag.
func New(cfg types.MigrationConfig) *Renderer {
	r := &Renderer{
		metadata: cfg.Metadata,
		format:   cfg.Format,
		pretty:   cfg.Pretty,
	}
	if cfg.Format == types.FormatMarkdown {
		r.markdown = md.NewConverter("", true, nil)
	}
	return r
}

// Render returns the final text of one document. fm is ignored unless the
// metadata mode is yaml; nil is treated as empty.
func (r *Renderer) Render(fm *types.FrontMatter, fragment string) (string, error) {
	body, err := r.Body(fragment)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(Delimiter + "\n")
	if r.metadata == types.MetadataYAML && fm != nil {
		header, err := EncodeHeader(fm)
		if err != nil {
			return "", err
		}
		b.WriteString(header)
	}
	b.WriteString(Delimiter + "\n")
	b.WriteString(body)
	return b.String(), nil
}

// Body converts the content fragment into the configured body format.
func (r *Renderer) Body(fragment string) (string, error) {
	switch {
	case r.format == types.FormatMarkdown:
		out, err := r.markdown.ConvertString(fragment)
		if err != nil {
			return "", fmt.Errorf("converting to markdown: %w", err)
		}
		return strings.TrimRight(out, "\n") + "\n", nil
	case r.pretty:
		return Prettify(fragment)
	default:
		return fragment, nil
	}
}
