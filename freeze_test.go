package flatfreeze

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFreezeWritesSite(t *testing.T) {
	a, _ := setupTestApp(t)
	dest := filepath.Join(t.TempDir(), "gh-pages")
	a.Config.Freeze.Destination = dest
	writeTestFile(t, dest, "CNAME", "example.com")
	writeTestFile(t, dest, "blog/removed.html", "old")

	res, err := a.Freeze(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("Freeze failed: %v", err)
	}
	if len(res.Written) != 11 {
		t.Errorf("written = %v", res.Written)
	}
	if len(res.Removed) != 1 || res.Removed[0] != "blog/removed.html" {
		t.Errorf("removed = %v", res.Removed)
	}

	for _, rel := range []string{"index.html", "404.html", "sitemap.xml", "feed.xml", "robots.txt", "static/style.css", "CNAME"} {
		if _, err := os.Stat(filepath.Join(dest, rel)); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dest, "metrics")); !os.IsNotExist(err) {
		t.Error("metrics should not be frozen")
	}

	post, err := os.ReadFile(filepath.Join(dest, "blog", "hello.html"))
	if err != nil {
		t.Fatal(err)
	}
	body := string(post)
	if !strings.Contains(body, `href="../static/style.css"`) {
		t.Errorf("links should be relative: %s", body)
	}
	if !strings.Contains(body, `href="../blog.html"`) {
		t.Errorf("links should be relative: %s", body)
	}

	sitemap, err := os.ReadFile(filepath.Join(dest, "sitemap.xml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(sitemap), "<loc>http://example.com/blog/hello.html</loc>") {
		t.Errorf("sitemap keeps absolute URLs: %s", sitemap)
	}
}

func TestFreezeAbsoluteURLs(t *testing.T) {
	a, _ := setupTestApp(t)
	a.Config.Freeze.Destination = t.TempDir()
	a.Config.Freeze.AbsoluteURLs = true

	if _, err := a.Freeze(context.Background(), nil); err != nil {
		t.Fatalf("Freeze failed: %v", err)
	}
	post, err := os.ReadFile(filepath.Join(a.Config.Freeze.Destination, "blog", "hello.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(post), `href="/static/style.css"`) {
		t.Errorf("links should stay root-relative: %s", post)
	}
}

func TestFreezeFailsOnBrokenSitemap(t *testing.T) {
	a, pagesDir := setupTestApp(t)
	writeTestFile(t, pagesDir, "draft.md", "title: Draft\n\nNo lastmod.\n")
	a.Config.Freeze.Destination = t.TempDir()

	if _, err := a.Freeze(context.Background(), nil); err == nil {
		t.Error("expected freeze to fail when the sitemap cannot be built")
	}
}
