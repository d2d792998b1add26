// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/notemigrate/pkg/types"
)

const sample = `<!DOCTYPE html>
<html>
<head>
<title>Groceries</title>
<meta name="created" content="2020-01-01">
<meta name="created" content="1999-12-31">
<meta name="Author" content="upper">
<meta name="author" content="Ada">
</head>
<body><div id="content">Buy <b>milk</b></div><div id="other">x</div></body>
</html>`

func parseSample(t *testing.T) *Document {
	t.Helper()
	doc, err := Parse(sample)
	require.NoError(t, err)
	return doc
}

func TestFirst(t *testing.T) {
	doc := parseSample(t)

	title, ok := doc.First("title")
	require.True(t, ok)
	assert.Equal(t, "Groceries", title.Text())

	_, ok = doc.First("article")
	assert.False(t, ok)
}

func TestFirstWithAttr_FirstMatchWins(t *testing.T) {
	doc := parseSample(t)

	el, ok := doc.FirstWithAttr("meta", "name", "created")
	require.True(t, ok)
	v, ok := el.Attr("content")
	require.True(t, ok)
	assert.Equal(t, "2020-01-01", v)
}

func TestFirstWithAttr_CaseSensitiveValue(t *testing.T) {
	doc := parseSample(t)

	el, ok := doc.FirstWithAttr("meta", "name", "author")
	require.True(t, ok)
	v, _ := el.Attr("content")
	assert.Equal(t, "Ada", v)

	_, ok = doc.FirstWithAttr("meta", "name", "AUTHOR")
	assert.False(t, ok)
}

func TestFind_ContainerSpec(t *testing.T) {
	doc := parseSample(t)

	el, ok := doc.Find(types.ElementSpec{Tag: "div", Attr: "id", Value: "content"})
	require.True(t, ok)
	inner, err := el.InnerHTML()
	require.NoError(t, err)
	assert.Equal(t, "Buy <b>milk</b>", inner)

	_, ok = doc.Find(types.ElementSpec{Tag: "div", Attr: "id", Value: "missing"})
	assert.False(t, ok)

	body, ok := doc.Find(types.ElementSpec{Tag: "body"})
	require.True(t, ok)
	inner, err = body.InnerHTML()
	require.NoError(t, err)
	assert.Contains(t, inner, `<div id="other">x</div>`)
}

func TestInnerHTML_CanonicalSerialization(t *testing.T) {
	doc, err := Parse(`<html><body><p>Mom's <img src="Mom's%20pie.resources/a.png"> &amp; more</p></body></html>`)
	require.NoError(t, err)

	p, ok := doc.First("p")
	require.True(t, ok)
	inner, err := p.InnerHTML()
	require.NoError(t, err)
	assert.Equal(t, `Mom&#39;s <img src="Mom&#39;s%20pie.resources/a.png"/> &amp; more`, inner)
}

func TestAllAndAttrs(t *testing.T) {
	doc := parseSample(t)

	metas := doc.All("meta")
	require.Len(t, metas, 4)
	assert.Equal(t, map[string]string{"name": "created", "content": "2020-01-01"}, metas[0].Attrs())
}

func TestZeroElement(t *testing.T) {
	var el Element
	inner, err := el.InnerHTML()
	require.NoError(t, err)
	assert.Empty(t, inner)
	assert.Empty(t, el.Text())
	_, ok := el.Attr("x")
	assert.False(t, ok)
	assert.Empty(t, el.Attrs())
}
