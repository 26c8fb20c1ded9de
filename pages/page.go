// Package pages is a flat-file page source: a directory of markdown files,
// each with an optional YAML metadata header.
package pages

import (
	"errors"
	"html/template"

	"github.com/flatfreeze/flatfreeze/markdown"
)

// ErrNotFound is returned when no page exists at a path.
var ErrNotFound = errors.New("pages: not found")

// Page is one markdown file. Path is the slash-separated location of the
// file relative to the source root, without its extension.
type Page struct {
	Path string
	Meta Meta
	Body string
}

// Title returns the "title" metadata, falling back to the page path.
func (p *Page) Title() string {
	if s, ok := p.Meta.String("title"); ok && s != "" {
		return s
	}
	return p.Path
}

// Published returns the formatted "published" date, or "" when the page
// has no date under that key.
func (p *Page) Published() string {
	v, ok := p.Meta.Lookup("published")
	if !ok || v.Kind() != KindDate {
		return ""
	}
	return v.String()
}

// Require returns the value under key or a *MissingMetadataError.
func (p *Page) Require(key string) (Value, error) {
	v, ok := p.Meta.Lookup(key)
	if !ok {
		return Value{}, &MissingMetadataError{Path: p.Path, Key: key}
	}
	return v, nil
}

// HTML renders the page body.
func (p *Page) HTML() (template.HTML, error) {
	return markdown.HTML(p.Body)
}

// Link returns the site-relative URL of the page.
func (p *Page) Link() string {
	return "/blog/" + p.Path + ".html"
}
