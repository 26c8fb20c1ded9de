// Package markdown renders page bodies to HTML with goldmark.
package markdown

import (
	"bytes"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Raw HTML in page bodies is passed through.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Footnote),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// Render writes the HTML representation of src to w.
func Render(w io.Writer, src []byte) error {
	return md.Convert(src, w)
}

// HTML converts src and returns it as trusted template HTML.
func HTML(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := Render(&buf, []byte(src)); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
