package flatfreeze

import (
	"bytes"
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/flatfreeze/flatfreeze/pages"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// BuildSitemap lists the static locations followed by one entry per post,
// each prefixed with domain. Posts keep the order they are given in and are
// not filtered; every post must carry "lastmod" metadata or the call fails
// with a *pages.MissingMetadataError.
func BuildSitemap(domain string, statics []StaticLocation, posts []*pages.Page) ([]SitemapEntry, error) {
	entries := make([]SitemapEntry, 0, len(statics)+len(posts))
	for _, l := range statics {
		entries = append(entries, SitemapEntry{Loc: domain + l.Path, LastMod: l.LastMod})
	}
	for _, p := range posts {
		lastmod, err := p.Require("lastmod")
		if err != nil {
			return nil, err
		}
		entries = append(entries, SitemapEntry{
			Loc:     domain + strings.TrimPrefix(p.Link(), "/"),
			LastMod: lastmod.String(),
		})
	}
	return entries, nil
}

func renderSitemap(c echo.Context, entries []SitemapEntry) error {
	urls := make([]sitemapURL, len(entries))
	for i, e := range entries {
		urls[i] = sitemapURL{Loc: e.Loc, LastMod: e.LastMod}
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(sitemap); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/xml; charset=utf-8", buf.Bytes())
}
