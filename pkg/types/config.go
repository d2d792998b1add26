// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidConfig is returned by MigrationConfig.Validate when a field is
// missing or holds a value outside its enumeration.
var ErrInvalidConfig = errors.New("invalid configuration")

// MetadataMode selects whether output documents carry a structured header.
type MetadataMode string

const (
	MetadataNone MetadataMode = "none"
	MetadataYAML MetadataMode = "yaml"
)

// MediaRefMode selects what resource-folder references are rewritten to.
type MediaRefMode string

const (
	// MediaRefPath rewrites references to the literal media directory path.
	MediaRefPath MediaRefMode = "path"
	// MediaRefPlaceholder rewrites references to a token resolved later by
	// a templating layer.
	MediaRefPlaceholder MediaRefMode = "placeholder"
)

// RewriteMode selects how resource-folder names are matched in content.
type RewriteMode string

const (
	// RewriteAnchored only replaces names flanked by path-like boundaries.
	RewriteAnchored RewriteMode = "anchored"
	// RewriteSubstring replaces every textual occurrence.
	RewriteSubstring RewriteMode = "substring"
)

// OutputFormat selects the body format of output documents.
type OutputFormat string

const (
	FormatHTML     OutputFormat = "html"
	FormatMarkdown OutputFormat = "markdown"
)

// IndexPolicy decides what happens to the export's index document.
type IndexPolicy string

const (
	// IndexExclude leaves the index out of discovery entirely; it is only
	// deleted during cleanup.
	IndexExclude IndexPolicy = "exclude"
	// IndexDiscover reads the index to completion and logs it, but never
	// writes it as an output document.
	IndexDiscover IndexPolicy = "discover"
	// IndexInclude treats the index like any other document.
	IndexInclude IndexPolicy = "include"
)

// FailurePolicy decides whether a per-document failure aborts the run.
type FailurePolicy string

const (
	OnErrorAbort    FailurePolicy = "abort"
	OnErrorContinue FailurePolicy = "continue"
)

// Normalizer names a post-processing step applied to a raw field value.
type Normalizer string

const (
	NormalizeNone Normalizer = ""
	// NormalizeList splits a comma list into trimmed tokens.
	NormalizeList Normalizer = "list"
)

// ElementSpec locates a single element: the first Tag element, optionally
// restricted to those whose Attr attribute equals Value exactly.
type ElementSpec struct {
	Tag   string `json:"tag" yaml:"tag" mapstructure:"tag" validate:"required"`
	Attr  string `json:"attr,omitempty" yaml:"attr,omitempty" mapstructure:"attr" validate:"required_with=Value"`
	Value string `json:"value,omitempty" yaml:"value,omitempty" mapstructure:"value" validate:"required_with=Attr"`
}

// FieldSpec maps a front matter field to the element holding its value.
type FieldSpec struct {
	// Name is the front matter key (e.g. "created").
	Name string `json:"name" yaml:"name" mapstructure:"name" validate:"required"`

	// Tag, Attr and Value identify the element, e.g. meta / name / created.
	Tag   string `json:"tag" yaml:"tag" mapstructure:"tag" validate:"required"`
	Attr  string `json:"attr" yaml:"attr" mapstructure:"attr" validate:"required"`
	Value string `json:"value" yaml:"value" mapstructure:"value" validate:"required"`

	// ContentAttr is the attribute carrying the field value (default "content").
	ContentAttr string `json:"content_attr,omitempty" yaml:"content_attr,omitempty" mapstructure:"content_attr"`

	// Normalize is applied to the raw attribute value before storage.
	Normalize Normalizer `json:"normalize,omitempty" yaml:"normalize,omitempty" mapstructure:"normalize" validate:"omitempty,oneof=list"`
}

// Element returns the lookup part of the field spec.
func (f FieldSpec) Element() ElementSpec {
	return ElementSpec{Tag: f.Tag, Attr: f.Attr, Value: f.Value}
}

// ValueAttr returns the attribute that holds the field value.
func (f FieldSpec) ValueAttr() string {
	if f.ContentAttr == "" {
		return "content"
	}
	return f.ContentAttr
}

// DefaultFields is the field table for exported notes: one <meta> element
// per field, matched on its name attribute.
func DefaultFields() []FieldSpec {
	return []FieldSpec{
		{Name: "created", Tag: "meta", Attr: "name", Value: "created"},
		{Name: "updated", Tag: "meta", Attr: "name", Value: "updated"},
		{Name: "author", Tag: "meta", Attr: "name", Value: "author"},
		{Name: "tags", Tag: "meta", Attr: "name", Value: "keywords", Normalize: NormalizeList},
		{Name: "source", Tag: "meta", Attr: "name", Value: "source-url"},
	}
}

// MigrationConfig holds settings for one migration run. It is built once at
// process start and passed by value into every stage that needs it.
type MigrationConfig struct {
	// InputDir is the export directory; it is removed at the end of the run.
	InputDir string `json:"input_dir" yaml:"input_dir" validate:"required"`

	// PostsDir receives the converted documents.
	PostsDir string `json:"posts_dir" yaml:"posts_dir" validate:"required"`

	// MediaDir receives every resource file from every resource folder.
	MediaDir string `json:"media_dir" yaml:"media_dir" validate:"required"`

	Metadata MetadataMode `json:"metadata" yaml:"metadata" validate:"oneof=none yaml"`

	MediaRef MediaRefMode `json:"media_ref" yaml:"media_ref" validate:"oneof=path placeholder"`

	// MediaPlaceholder is the token written when MediaRef is placeholder.
	MediaPlaceholder string `json:"media_placeholder" yaml:"media_placeholder" validate:"required_if=MediaRef placeholder"`

	Rewrite RewriteMode `json:"rewrite" yaml:"rewrite" validate:"oneof=anchored substring"`

	// Pretty reformats HTML bodies with stable indentation.
	Pretty bool `json:"pretty" yaml:"pretty"`

	Format OutputFormat `json:"format" yaml:"format" validate:"oneof=html markdown"`

	IndexPolicy IndexPolicy `json:"index_policy" yaml:"index_policy" validate:"oneof=exclude discover include"`

	// IndexName is the base name of the export's index document.
	IndexName string `json:"index_name" yaml:"index_name" validate:"required"`

	OnError FailurePolicy `json:"on_error" yaml:"on_error" validate:"oneof=abort continue"`

	// DocumentExt is the extension of note documents (e.g. ".html").
	DocumentExt string `json:"document_ext" yaml:"document_ext" validate:"required,startswith=."`

	// ResourceSuffix marks resource folders (e.g. ".resources").
	ResourceSuffix string `json:"resource_suffix" yaml:"resource_suffix" validate:"required"`

	// Content locates the primary content container.
	Content ElementSpec `json:"content" yaml:"content"`

	// Fields is the front matter field table; title is always extracted.
	Fields []FieldSpec `json:"fields" yaml:"fields" validate:"dive"`
}

// DefaultMigrationConfig returns the configuration used when nothing is
// overridden: a sibling "notes" export converted for a static site.
func DefaultMigrationConfig() MigrationConfig {
	return MigrationConfig{
		InputDir:         "../notes",
		PostsDir:         "../_notes/evernote-export",
		MediaDir:         "../media/evernote-export",
		Metadata:         MetadataYAML,
		MediaRef:         MediaRefPath,
		MediaPlaceholder: "{{ media_path }}",
		Rewrite:          RewriteAnchored,
		Format:           FormatHTML,
		IndexPolicy:      IndexExclude,
		IndexName:        "index.html",
		OnError:          OnErrorAbort,
		DocumentExt:      ".html",
		ResourceSuffix:   ".resources",
		Content:          ElementSpec{Tag: "body"},
		Fields:           DefaultFields(),
	}
}

var validate = validator.New()

// Validate checks the configuration shape. It does not touch the filesystem.
func (c MigrationConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// MediaTarget returns the text resource-folder references are rewritten to.
func (c MigrationConfig) MediaTarget() string {
	if c.MediaRef == MediaRefPlaceholder {
		return c.MediaPlaceholder
	}
	return c.MediaDir
}

// OutputExt returns the extension of written documents.
func (c MigrationConfig) OutputExt() string {
	if c.Format == FormatMarkdown {
		return ".md"
	}
	return c.DocumentExt
}
