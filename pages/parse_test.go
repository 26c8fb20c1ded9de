package pages

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse_DelimitedHeader_SplitsMetaAndBody(t *testing.T) {
	p, err := Parse("hello", []byte("---\ntitle: Hello\npublished: 2014-03-01\n---\n# Hello\n"))
	require.NoError(t, err)
	require.Equal(t, "hello", p.Path)
	require.Equal(t, "# Hello\n", p.Body)
	require.Equal(t, "Hello", p.Meta.Get("title"))

	d, ok := p.Meta.Date("published")
	require.True(t, ok)
	require.Equal(t, time.Date(2014, 3, 1, 0, 0, 0, 0, time.UTC), d)
}

func TestParse_LegacyHeader_EndsAtBlankLine(t *testing.T) {
	p, err := Parse("legacy", []byte("title: Legacy\nlastmod: 2014-02-13\n\nBody text.\n"))
	require.NoError(t, err)
	require.Equal(t, "Body text.\n", p.Body)
	require.Equal(t, "Legacy", p.Meta.Get("title"))
	require.Equal(t, "2014-02-13", p.Meta.Get("lastmod"))
}

func TestParse_CRLF(t *testing.T) {
	p, err := Parse("crlf", []byte("---\r\ntitle: CRLF\r\n---\r\nbody\r\n"))
	require.NoError(t, err)
	require.Equal(t, "CRLF", p.Meta.Get("title"))
	require.Equal(t, "body\n", p.Body)
}

func TestParse_NoHeader_WholeFileIsBody(t *testing.T) {
	tests := []string{
		"# Heading\n\nParagraph.\n",
		"Just some prose.\n\nMore prose.\n",
		"- a list\n- of items\n",
	}
	for _, input := range tests {
		p, err := Parse("x", []byte(input))
		require.NoError(t, err)
		require.Empty(t, p.Meta, "input %q", input)
		require.Equal(t, input, p.Body)
	}
}

func TestParse_LeadingBlankLine_NoHeader(t *testing.T) {
	input := "\ntitle: Secret\n\nBody text"
	p, err := Parse("x", []byte(input))
	require.NoError(t, err)
	require.Empty(t, p.Meta)
	require.Equal(t, input, p.Body)
}

func TestParse_EmptyDelimitedHeader(t *testing.T) {
	p, err := Parse("x", []byte("---\n---\nbody\n"))
	require.NoError(t, err)
	require.Empty(t, p.Meta)
	require.Equal(t, "body\n", p.Body)
}

func TestParse_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	_, err := Parse("x", []byte("---\ntitle: x\nbody\n"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestParse_InvalidYAMLInDelimitedHeader_ReturnsError(t *testing.T) {
	_, err := Parse("x", []byte("---\ntitle: [unclosed\n---\nbody\n"))
	require.Error(t, err)
}

func TestParse_ValueKinds(t *testing.T) {
	p, err := Parse("kinds", []byte(`---
published: "2014-01-02"
stamp: 2014-01-02T10:30:00Z
draft: true
count: 3
empty:
notdate: soon
---
`))
	require.NoError(t, err)

	v, ok := p.Meta.Lookup("published")
	require.True(t, ok)
	require.Equal(t, KindDate, v.Kind())

	v, ok = p.Meta.Lookup("stamp")
	require.True(t, ok)
	require.Equal(t, KindDate, v.Kind())
	require.Equal(t, "2014-01-02", v.String())

	require.Equal(t, "true", p.Meta.Get("draft"))
	require.Equal(t, "3", p.Meta.Get("count"))

	v, ok = p.Meta.Lookup("empty")
	require.True(t, ok)
	require.Equal(t, KindString, v.Kind())
	require.Equal(t, "", v.String())

	_, ok = p.Meta.Date("notdate")
	require.False(t, ok)

	_, ok = p.Meta.Lookup("missing")
	require.False(t, ok)
}

func TestPage_Require(t *testing.T) {
	p := &Page{Path: "hello", Meta: Meta{"lastmod": StringValue("2014-03-01")}}

	v, err := p.Require("lastmod")
	require.NoError(t, err)
	require.Equal(t, "2014-03-01", v.String())

	_, err = p.Require("published")
	var missing *MissingMetadataError
	require.True(t, errors.As(err, &missing))
	require.Equal(t, "hello", missing.Path)
	require.Equal(t, "published", missing.Key)
}

func TestPage_TitleAndPublished(t *testing.T) {
	p := &Page{Path: "notes/one", Meta: Meta{}}
	require.Equal(t, "notes/one", p.Title())
	require.Equal(t, "", p.Published())

	p.Meta["title"] = StringValue("One")
	p.Meta["published"] = DateValue(time.Date(2020, 5, 6, 0, 0, 0, 0, time.UTC))
	require.Equal(t, "One", p.Title())
	require.Equal(t, "2020-05-06", p.Published())
}

func TestPage_HTML(t *testing.T) {
	p := &Page{Path: "x", Body: "*hi*"}
	html, err := p.HTML()
	require.NoError(t, err)
	require.Equal(t, "<p><em>hi</em></p>\n", string(html))
}
