// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/notemigrate/pkg/types"
)

// Delimiter opens and closes the metadata header.
const Delimiter = "---"

// headerFormat reads "---" delimited YAML into a yaml.Node so key order
// survives parsing.
var headerFormat = frontmatter.NewFormat(Delimiter, Delimiter, yaml.Unmarshal)

// EncodeHeader serializes fm as a YAML block, one key per line, lists as
// block sequences. An empty FrontMatter encodes to "".
func EncodeHeader(fm *types.FrontMatter) (string, error) {
	if fm.Len() == 0 {
		return "", nil
	}

	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range fm.Keys() {
		value, _ := fm.Get(key)
		var vn *yaml.Node
		switch v := value.(type) {
		case string:
			vn = stringNode(v)
		case []string:
			vn = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			for _, item := range v {
				vn.Content = append(vn.Content, stringNode(item))
			}
		default:
			return "", fmt.Errorf("front matter field %q: unsupported value type %T", key, value)
		}
		root.Content = append(root.Content, stringNode(key), vn)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return "", fmt.Errorf("encoding front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding front matter: %w", err)
	}
	return buf.String(), nil
}

// stringNode returns a string scalar, single-quoted whenever the plain form
// would read back as something else (dates, numbers, booleans, "a: b").
func stringNode(s string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	if !readsBackPlain(s) {
		n.Style = yaml.SingleQuotedStyle
	}
	return n
}

func readsBackPlain(s string) bool {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(s), &doc); err != nil || len(doc.Content) != 1 {
		return false
	}
	n := doc.Content[0]
	return n.Kind == yaml.ScalarNode && n.Tag == "!!str" && n.Style == 0 && n.Value == s
}

// ParseDocument splits an output document into its front matter and body.
// It is the inverse of Renderer.Render for the header part.
func ParseDocument(text string) (*types.FrontMatter, string, error) {
	if body, ok := strings.CutPrefix(text, Delimiter+"\n"+Delimiter+"\n"); ok {
		return types.NewFrontMatter(), body, nil
	}

	var doc yaml.Node
	body, err := frontmatter.MustParse(strings.NewReader(text), &doc, headerFormat)
	if err != nil {
		return nil, "", fmt.Errorf("parsing front matter: %w", err)
	}
	fm, err := fromNode(&doc)
	if err != nil {
		return nil, "", err
	}
	return fm, string(body), nil
}

func fromNode(doc *yaml.Node) (*types.FrontMatter, error) {
	fm := types.NewFrontMatter()
	root := doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return fm, nil
		}
		root = root.Content[0]
	}
	if root.Kind == 0 {
		return fm, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("front matter is not a mapping (line %d)", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i].Value, root.Content[i+1]
		switch value.Kind {
		case yaml.ScalarNode:
			fm.SetString(key, value.Value)
		case yaml.SequenceNode:
			items := make([]string, 0, len(value.Content))
			for _, item := range value.Content {
				if item.Kind != yaml.ScalarNode {
					return nil, fmt.Errorf("front matter field %q: nested values are not supported (line %d)", key, item.Line)
				}
				items = append(items, item.Value)
			}
			fm.SetList(key, items)
		default:
			return nil, fmt.Errorf("front matter field %q: unsupported value (line %d)", key, value.Line)
		}
	}
	return fm, nil
}
