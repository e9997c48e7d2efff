// Package markdown renders the static content pages.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/frontmatter"
)

// Document is a rendered page and the front matter it declared.
type Document struct {
	HTML []byte
	Meta map[string]any
}

// String returns the front matter value for key, or "" when it is missing or
// not a string.
func (d *Document) String(key string) string {
	s, _ := d.Meta[key].(string)
	return s
}

type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Typographer,
				&frontmatter.Extender{},
			),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(goldmarkhtml.WithXHTML()),
		),
	}
}

// Parse renders source. Malformed front matter is ignored rather than failing
// the page.
func (p *Parser) Parse(source []byte) (*Document, error) {
	pctx := parser.NewContext()
	var buf bytes.Buffer

	err := p.md.Convert(source, &buf, parser.WithContext(pctx))
	if err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}

	doc := &Document{HTML: buf.Bytes(), Meta: map[string]any{}}
	if data := frontmatter.Get(pctx); data != nil {
		meta := map[string]any{}
		if data.Decode(&meta) == nil {
			doc.Meta = meta
		}
	}

	return doc, nil
}
