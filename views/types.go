package views

import "github.com/flatfreeze/flatfreeze/pages"

// Site holds site-wide settings every template receives.
type Site struct {
	Name        string
	Domain      string // absolute base URL ending in "/"
	Description string
	Author      string
}

// pageData is the root value passed to every template.
type pageData struct {
	Site  Site
	Title string
	Posts []*pages.Page
	Post  *pages.Page
}
