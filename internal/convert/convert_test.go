// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/notemigrate/internal/logging"
	"github.com/pdiddy/notemigrate/internal/render"
	"github.com/pdiddy/notemigrate/pkg/types"
)

const noteA = `<!DOCTYPE html>
<html><head>
<title>Hi</title>
<meta name="created" content="2020-01-01">
<meta name="keywords" content="a, b">
</head>
<body><div id="content">See <img src="Note%20A.resources/x.png"> and <img src="Note%20A.resources/y.png"></div></body>
</html>`

func testConfig() types.MigrationConfig {
	cfg := types.DefaultMigrationConfig()
	cfg.InputDir = "in"
	cfg.PostsDir = "posts"
	cfg.MediaDir = "/media/notes"
	return cfg
}

func TestConvertDocument(t *testing.T) {
	cfg := testConfig()
	c, err := New(cfg, []string{"in/Note A.resources"}, logging.Discard())
	require.NoError(t, err)

	out, err := c.ConvertDocument("in/Note A.html", noteA)
	require.NoError(t, err)

	assert.Equal(t, "Note-A.html", out.Name)
	assert.Equal(t, map[string]any{
		"title":   "Hi",
		"created": "2020-01-01",
		"tags":    []string{"a", "b"},
	}, out.FrontMatter.Map())

	assert.True(t, strings.HasPrefix(out.Text, "---\ntitle: Hi\ncreated: '2020-01-01'\n"), out.Text)
	assert.Contains(t, out.Text, `<img src="/media/notes/x.png"/>`)
	assert.Contains(t, out.Text, `<img src="/media/notes/y.png"/>`)
	assert.NotContains(t, out.Text, "Note%20A.resources")
	assert.NotContains(t, out.Text, "<body>")
	assert.NotContains(t, out.Text, "<title>")

	fm, body, err := render.ParseDocument(out.Text)
	require.NoError(t, err)
	assert.Equal(t, out.FrontMatter.Map(), fm.Map())
	assert.True(t, strings.HasPrefix(body, `<div id="content">`), body)
}

func TestConvertDocument_Modes(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*types.MigrationConfig)
		wantIn  []string
		wantOut []string
		wantExt string
	}{
		{
			name:    "no metadata",
			mutate:  func(c *types.MigrationConfig) { c.Metadata = types.MetadataNone },
			wantIn:  []string{"---\n---\n<div"},
			wantOut: []string{"title:"},
			wantExt: ".html",
		},
		{
			name: "placeholder",
			mutate: func(c *types.MigrationConfig) {
				c.MediaRef = types.MediaRefPlaceholder
				c.MediaPlaceholder = "{{ site.media }}"
			},
			wantIn:  []string{`src="{{ site.media }}/x.png"`},
			wantExt: ".html",
		},
		{
			name: "custom container",
			mutate: func(c *types.MigrationConfig) {
				c.Content = types.ElementSpec{Tag: "div", Attr: "id", Value: "content"}
			},
			wantIn:  []string{"---\nSee <img"},
			wantOut: []string{`<div id="content">`},
			wantExt: ".html",
		},
		{
			name:    "markdown",
			mutate:  func(c *types.MigrationConfig) { c.Format = types.FormatMarkdown },
			wantIn:  []string{"![](/media/notes/x.png)"},
			wantOut: []string{"<img"},
			wantExt: ".md",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			c, err := New(cfg, []string{"in/Note A.resources"}, logging.Discard())
			require.NoError(t, err)

			out, err := c.ConvertDocument("in/Note A.html", noteA)
			require.NoError(t, err)

			assert.Equal(t, "Note-A"+tt.wantExt, out.Name)
			for _, s := range tt.wantIn {
				assert.Contains(t, out.Text, s)
			}
			for _, s := range tt.wantOut {
				assert.NotContains(t, out.Text, s)
			}
		})
	}
}

func TestConvertDocument_FolderNamesWithReservedCharacters(t *testing.T) {
	tests := []struct {
		folder, src string
	}{
		{"Trip (2019).resources", "Trip%20(2019).resources/a.png"},
		{"Mom's pie.resources", "Mom's%20pie.resources/a.png"},
		{"Q&A.resources", "Q%26A.resources/a.png"},
		{"C++, again.resources", "C%2B%2B%2C%20again.resources/a.png"},
	}
	for _, tt := range tests {
		t.Run(tt.folder, func(t *testing.T) {
			c, err := New(testConfig(), []string{"in/" + tt.folder}, logging.Discard())
			require.NoError(t, err)

			raw := `<html><head><title>T</title></head><body><img src="` + tt.src + `"></body></html>`
			out, err := c.ConvertDocument("in/note.html", raw)
			require.NoError(t, err)

			assert.Contains(t, out.Text, `src="/media/notes/a.png"`)
			assert.NotContains(t, out.Text, ".resources")
		})
	}
}

func TestConvertDocument_MissingContainer(t *testing.T) {
	cfg := testConfig()
	cfg.Content = types.ElementSpec{Tag: "div", Attr: "id", Value: "missing"}
	c, err := New(cfg, nil, logging.Discard())
	require.NoError(t, err)

	_, err = c.ConvertDocument("in/Note A.html", noteA)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoContainer))
	assert.Contains(t, err.Error(), "in/Note A.html")
}

func TestNew_RejectsBadFieldTable(t *testing.T) {
	cfg := testConfig()
	cfg.Fields = []types.FieldSpec{{Name: "x", Tag: "meta", Attr: "name", Value: "x", Normalize: "bogus"}}

	_, err := New(cfg, nil, logging.Discard())
	assert.Error(t, err)
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		path, ext, want string
	}{
		{"in/Note A.html", ".html", "Note-A.html"},
		{"/abs/dir with space/My  Trip Notes.html", ".html", "My--Trip-Notes.html"},
		{"plain.html", "", "plain.html"},
		{"in/Note A.html", ".md", "Note-A.md"},
		{"a/b/c/no-spaces.html", ".html", "no-spaces.html"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OutputName(tt.path, tt.ext), tt.path)
	}
}
