// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMigrationConfig_Valid(t *testing.T) {
	cfg := DefaultMigrationConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "../media/evernote-export", cfg.MediaTarget())
	assert.Equal(t, ".html", cfg.OutputExt())
}

func TestMigrationConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MigrationConfig)
	}{
		{"empty input dir", func(c *MigrationConfig) { c.InputDir = "" }},
		{"empty posts dir", func(c *MigrationConfig) { c.PostsDir = "" }},
		{"empty media dir", func(c *MigrationConfig) { c.MediaDir = "" }},
		{"unknown metadata mode", func(c *MigrationConfig) { c.Metadata = "toml" }},
		{"unknown media ref", func(c *MigrationConfig) { c.MediaRef = "url" }},
		{"placeholder without token", func(c *MigrationConfig) {
			c.MediaRef = MediaRefPlaceholder
			c.MediaPlaceholder = ""
		}},
		{"unknown rewrite mode", func(c *MigrationConfig) { c.Rewrite = "regex" }},
		{"unknown format", func(c *MigrationConfig) { c.Format = "pdf" }},
		{"unknown index policy", func(c *MigrationConfig) { c.IndexPolicy = "skip" }},
		{"unknown failure policy", func(c *MigrationConfig) { c.OnError = "retry" }},
		{"extension without dot", func(c *MigrationConfig) { c.DocumentExt = "html" }},
		{"empty resource suffix", func(c *MigrationConfig) { c.ResourceSuffix = "" }},
		{"content without tag", func(c *MigrationConfig) { c.Content = ElementSpec{} }},
		{"content attr without value", func(c *MigrationConfig) { c.Content = ElementSpec{Tag: "div", Attr: "id"} }},
		{"field without name", func(c *MigrationConfig) {
			c.Fields = []FieldSpec{{Tag: "meta", Attr: "name", Value: "x"}}
		}},
		{"unknown normalizer", func(c *MigrationConfig) {
			c.Fields = []FieldSpec{{Name: "x", Tag: "meta", Attr: "name", Value: "x", Normalize: "upper"}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultMigrationConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestMigrationConfig_PlaceholderAndMarkdown(t *testing.T) {
	cfg := DefaultMigrationConfig()
	cfg.MediaRef = MediaRefPlaceholder
	cfg.Format = FormatMarkdown
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "{{ media_path }}", cfg.MediaTarget())
	assert.Equal(t, ".md", cfg.OutputExt())
}

func TestFieldSpec_ValueAttr(t *testing.T) {
	assert.Equal(t, "content", FieldSpec{}.ValueAttr())
	assert.Equal(t, "data-v", FieldSpec{ContentAttr: "data-v"}.ValueAttr())
	assert.Equal(t, ElementSpec{Tag: "meta", Attr: "name", Value: "author"},
		FieldSpec{Name: "author", Tag: "meta", Attr: "name", Value: "author"}.Element())
}
