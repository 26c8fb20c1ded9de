// Package flatfreeze is a small blog and static-site engine built with Go,
// Echo, and templ. Pages are markdown files with a YAML metadata header;
// the engine serves them, lists posts by their "published" date, emits a
// sitemap and feed, and can freeze the whole site into a directory of
// static files.
//
// Templates are supplied through the ViewFuncs struct; any view left nil
// falls back to the defaults in the views package.
package flatfreeze

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/flatfreeze/flatfreeze/pages"
	"github.com/flatfreeze/flatfreeze/views"
)

// ViewFuncs holds the templ components the handlers render. This is the
// inversion-of-control point that lets a site own its templates.
type ViewFuncs struct {
	Home        func(site views.Site, posts []*pages.Page) templ.Component
	Contact     func(site views.Site) templ.Component
	BlogIndex   func(site views.Site, posts []*pages.Page) templ.Component
	Post        func(site views.Site, post *pages.Page) templ.Component
	NotFound    func(site views.Site) templ.Component
	ServerError func(site views.Site) templ.Component
}

// DefaultViews returns the built-in templates.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:        views.Home,
		Contact:     views.Contact,
		BlogIndex:   views.BlogIndex,
		Post:        views.Post,
		NotFound:    views.NotFound,
		ServerError: views.ServerError,
	}
}

func (v *ViewFuncs) fillDefaults() {
	d := DefaultViews()
	if v.Home == nil {
		v.Home = d.Home
	}
	if v.Contact == nil {
		v.Contact = d.Contact
	}
	if v.BlogIndex == nil {
		v.BlogIndex = d.BlogIndex
	}
	if v.Post == nil {
		v.Post = d.Post
	}
	if v.NotFound == nil {
		v.NotFound = d.NotFound
	}
	if v.ServerError == nil {
		v.ServerError = d.ServerError
	}
}

// App wires the page source, handlers, middleware and templates together.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Source   PageSource
	Views    ViewFuncs
	Registry *prometheus.Registry

	customRoutes []func(*App)
}

// New validates cfg and builds an App with all routes registered. Unless
// WithSource is given, pages are read from cfg.PagesDir.
func New(cfg SiteConfig, opts ...Option) (*App, error) {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	if err := a.Config.Validate(); err != nil {
		return nil, fmt.Errorf("flatfreeze: invalid config: %w", err)
	}

	if a.Source == nil {
		src, err := pages.NewFlatPages(a.Config.PagesDir, pages.WithExtension(a.Config.PagesExtension))
		if err != nil {
			return nil, fmt.Errorf("flatfreeze: init pages: %w", err)
		}
		a.Source = src
	}
	a.Views.fillDefaults()

	if a.Registry == nil {
		a.Registry = prometheus.NewRegistry()
		a.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return a, nil
}

// Start listens on Config.Addr until the server is shut down.
func (a *App) Start() error {
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/static", a.Config.StaticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/metrics", a.metricsHandler())

	e.GET("/", a.handleHome)
	e.GET("/contact.html", a.handleContact)
	e.GET("/blog.html", a.handleBlogIndex)
	e.GET("/blog/*", a.handlePost)
	e.GET("/404.html", a.handleStaticNotFound)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
}

func (a *App) site() views.Site {
	return views.Site{
		Name:        a.Config.Name,
		Domain:      a.Config.Domain,
		Description: a.Config.Description,
		Author:      a.Config.Author,
	}
}
