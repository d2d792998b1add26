// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns one exported note document into the text of one
// output document: parse, extract front matter, cut out the content
// container, rewrite resource references, serialize.
package convert

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/phuslu/log"

	"github.com/pdiddy/notemigrate/internal/extract"
	"github.com/pdiddy/notemigrate/internal/markup"
	"github.com/pdiddy/notemigrate/internal/render"
	"github.com/pdiddy/notemigrate/internal/rewrite"
	"github.com/pdiddy/notemigrate/pkg/types"
)

// ErrNoContainer is returned when a document has no primary content
// container. Without it there is nothing to convert.
var ErrNoContainer = errors.New("primary content container not found")

// Output is a converted document ready to be written.
type Output struct {
	// Name is the sanitized file name under the posts directory.
	Name string
	// Text is the full document text, header included.
	Text string
	// FrontMatter is what was extracted; empty when metadata is off.
	FrontMatter *types.FrontMatter
}

// Converter runs the per-document pipeline for one migration run.
type Converter struct {
	content   types.ElementSpec
	metadata  types.MetadataMode
	outputExt string
	extractor *extract.Extractor
	rewriter  *rewrite.Rewriter
	renderer  *render.Renderer
}

// New builds a Converter. folders are every resource folder of the run;
// each one is tried against every document.
func New(cfg types.MigrationConfig, folders []string, logger *log.Logger) (*Converter, error) {
	ex, err := extract.New(cfg.Fields, logger)
	if err != nil {
		return nil, fmt.Errorf("building field table: %w", err)
	}
	return &Converter{
		content:   cfg.Content,
		metadata:  cfg.Metadata,
		outputExt: cfg.OutputExt(),
		extractor: ex,
		rewriter:  rewrite.New(folders, cfg.MediaTarget(), cfg.Rewrite),
		renderer:  render.New(cfg),
	}, nil
}

// ConvertDocument converts the raw markup read from path.
func (c *Converter) ConvertDocument(path, raw string) (Output, error) {
	doc, err := markup.Parse(raw)
	if err != nil {
		return Output{}, fmt.Errorf("%s: %w", path, err)
	}

	fm := types.NewFrontMatter()
	if c.metadata == types.MetadataYAML {
		fm = c.extractor.Extract(doc, filepath.Base(path))
	}

	container, ok := doc.Find(c.content)
	if !ok {
		return Output{}, fmt.Errorf("%s: %w (looking for %s)", path, ErrNoContainer, describe(c.content))
	}
	fragment, err := container.InnerHTML()
	if err != nil {
		return Output{}, fmt.Errorf("%s: %w", path, err)
	}
	fragment = c.rewriter.Rewrite(fragment)

	text, err := c.renderer.Render(fm, fragment)
	if err != nil {
		return Output{}, fmt.Errorf("%s: %w", path, err)
	}

	return Output{
		Name:        OutputName(path, c.outputExt),
		Text:        text,
		FrontMatter: fm,
	}, nil
}

// OutputName derives the output file name from a source path: directory
// components are dropped, spaces become hyphens and the extension is set
// to ext when ext is not empty.
func OutputName(path, ext string) string {
	base := filepath.Base(path)
	if ext != "" {
		base = strings.TrimSuffix(base, filepath.Ext(base)) + ext
	}
	return strings.ReplaceAll(base, " ", "-")
}

func describe(spec types.ElementSpec) string {
	if spec.Attr == "" {
		return "<" + spec.Tag + ">"
	}
	return fmt.Sprintf("<%s %s=%q>", spec.Tag, spec.Attr, spec.Value)
}
