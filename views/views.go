// Package views holds the default site templates. They are html/template
// files embedded in the binary and exposed as templ components so sites can
// swap any of them for their own.
package views

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/flatfreeze/flatfreeze/pages"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"absURL":    absURL,
	"websiteLD": WebsiteJsonLD,
	"postingLD": BlogPostingJsonLD,
}

var templates = map[string]*template.Template{
	"home":     parse("home.html"),
	"contact":  parse("contact.html"),
	"blog":     parse("blog.html"),
	"post":     parse("post.html"),
	"notfound": parse("404.html"),
	"error":    parse("500.html"),
}

func parse(name string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).ParseFS(files,
		"templates/layout.html",
		"templates/partials.html",
		"templates/"+name,
	))
}

func render(name string, data pageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return templates[name].ExecuteTemplate(w, "layout", data)
	})
}

// Home renders the landing page with the given recent posts.
func Home(site Site, posts []*pages.Page) templ.Component {
	return render("home", pageData{Site: site, Posts: posts})
}

// Contact renders the contact page.
func Contact(site Site) templ.Component {
	return render("contact", pageData{Site: site, Title: "Contact"})
}

// BlogIndex renders the list of all posts.
func BlogIndex(site Site, posts []*pages.Page) templ.Component {
	return render("blog", pageData{Site: site, Title: "Blog", Posts: posts})
}

// Post renders a single page.
func Post(site Site, post *pages.Page) templ.Component {
	return render("post", pageData{Site: site, Title: post.Title(), Post: post})
}

// NotFound renders the 404 page.
func NotFound(site Site) templ.Component {
	return render("notfound", pageData{Site: site, Title: "Page not found"})
}

// ServerError renders the 500 page.
func ServerError(site Site) templ.Component {
	return render("error", pageData{Site: site, Title: "Something went wrong"})
}
