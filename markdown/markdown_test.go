package markdown

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func render(t *testing.T, src string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, []byte(src)))
	return buf.String()
}

func TestRenderInlineEmphasis(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"__bold__", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"_italic_", "<em>italic</em>"},
		{"**bold *italic* text**", "<strong>bold <em>italic</em> text</strong>"},
	}
	for _, tt := range tests {
		got := render(t, tt.input)
		require.Contains(t, got, tt.expected, "input %q", tt.input)
	}
}

func TestRenderCodeBlockWithLanguage(t *testing.T) {
	got := render(t, "```go\nfmt.Println(1)\n```\n")
	require.Contains(t, got, `<code class="language-go">`)
	require.Contains(t, got, "fmt.Println(1)")
}

func TestRenderCodeBlockEscapesHTML(t *testing.T) {
	got := render(t, "```\n<b>x</b>\n```\n")
	require.Contains(t, got, "&lt;b&gt;x&lt;/b&gt;")
}

func TestRenderHeadingsGetIDs(t *testing.T) {
	got := render(t, "# Hello World\n\n## Second\n")
	require.Contains(t, got, `<h1 id="hello-world">Hello World</h1>`)
	require.Contains(t, got, `<h2 id="second">Second</h2>`)
}

func TestRenderTable(t *testing.T) {
	got := render(t, "| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.Contains(t, got, "<table>")
	require.Contains(t, got, "<td>1</td>")
}

func TestRenderLists(t *testing.T) {
	got := render(t, "- one\n- two\n\n1. first\n2. second\n")
	require.Contains(t, got, "<ul>")
	require.Contains(t, got, "<li>one</li>")
	require.Contains(t, got, "<ol>")
	require.Contains(t, got, "<li>second</li>")
}

func TestRenderPassesRawHTML(t *testing.T) {
	got := render(t, "<div class=\"note\">hi</div>\n")
	require.Contains(t, got, `<div class="note">hi</div>`)
}

func TestRenderLinks(t *testing.T) {
	got := render(t, "a [link](/blog/hello.html)")
	require.Equal(t, `<p>a <a href="/blog/hello.html">link</a></p>`, strings.TrimSpace(got))
}

func TestHTML(t *testing.T) {
	got, err := HTML("plain")
	require.NoError(t, err)
	require.Equal(t, "<p>plain</p>\n", string(got))
}
