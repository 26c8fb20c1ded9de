package freezer

import (
	"bytes"
	"path"
	"strings"

	"golang.org/x/net/html"
)

var urlAttrs = map[string]bool{
	"href":   true,
	"src":    true,
	"action": true,
}

// Relativize rewrites root-relative href, src and action attributes in an
// HTML document so they resolve from the file at rel.
func Relativize(doc []byte, rel string) ([]byte, error) {
	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return nil, err
	}
	fromDir := path.Dir("/" + rel)

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for i, a := range n.Attr {
				if a.Namespace == "" && urlAttrs[a.Key] && isRootRelative(a.Val) {
					n.Attr[i].Val = RelativeURL(fromDir, a.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isRootRelative(u string) bool {
	return strings.HasPrefix(u, "/") && !strings.HasPrefix(u, "//")
}

// RelativeURL returns target, a root-relative URL, relative to the
// directory fromDir. Directory targets get index.html.
func RelativeURL(fromDir, target string) string {
	suffix := ""
	if i := strings.IndexAny(target, "?#"); i >= 0 {
		target, suffix = target[:i], target[i:]
	}
	if strings.HasSuffix(target, "/") {
		target += "index.html"
	}

	from := segments(fromDir)
	to := segments(target)
	i := 0
	for i < len(from) && i < len(to)-1 && from[i] == to[i] {
		i++
	}
	parts := make([]string, 0, len(from)-i+len(to)-i)
	for range from[i:] {
		parts = append(parts, "..")
	}
	parts = append(parts, to[i:]...)
	return strings.Join(parts, "/") + suffix
}

func segments(p string) []string {
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
