package views

import (
	"encoding/json"
	"html/template"
	"strings"

	"github.com/flatfreeze/flatfreeze/pages"
)

func absURL(site Site, rel string) string {
	return site.Domain + strings.TrimPrefix(rel, "/")
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block for the site.
func WebsiteJsonLD(site Site) template.JS {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     site.Name,
		"url":      site.Domain,
	}
	if site.Description != "" {
		data["description"] = site.Description
	}
	if site.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  site.Author,
		}
	}
	return marshalJS(data)
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block for a post.
func BlogPostingJsonLD(site Site, post *pages.Page) template.JS {
	postURL := absURL(site, post.Link())
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "BlogPosting",
		"headline": post.Title(),
		"url":      postURL,
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  site.Name,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if published := post.Published(); published != "" {
		data["datePublished"] = published
	}
	if lastmod := post.Meta.Get("lastmod"); lastmod != "" {
		data["dateModified"] = lastmod
	}
	if summary := post.Meta.Get("summary"); summary != "" {
		data["description"] = summary
	}
	if site.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  site.Author,
		}
	}
	return marshalJS(data)
}

func marshalJS(data map[string]interface{}) template.JS {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return template.JS(b)
}
