package flatfreeze

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"

	"github.com/flatfreeze/flatfreeze/pages"
)

func (a *App) handleHome(c echo.Context) error {
	posts, err := a.index(WithLimit(a.Config.HomePosts))
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(a.site(), posts))
}

func (a *App) handleContact(c echo.Context) error {
	return Render(c, a.Views.Contact(a.site()))
}

func (a *App) handleBlogIndex(c echo.Context) error {
	posts, err := a.index()
	if err != nil {
		return err
	}
	return Render(c, a.Views.BlogIndex(a.site(), posts))
}

func (a *App) handlePost(c echo.Context) error {
	path, ok := strings.CutSuffix(c.Param("*"), ".html")
	if !ok {
		return echo.ErrNotFound
	}
	post, err := a.Source.Get(path)
	if err != nil {
		if errors.Is(err, pages.ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.site()))
		}
		return err
	}
	return Render(c, a.Views.Post(a.site(), post))
}

// handleStaticNotFound serves the not-found page with status 200 so it can
// be frozen to 404.html for static hosts.
func (a *App) handleStaticNotFound(c echo.Context) error {
	return Render(c, a.Views.NotFound(a.site()))
}

// handleSitemap lists posts in source order, not index order, and includes
// pages without a "published" date.
func (a *App) handleSitemap(c echo.Context) error {
	all, err := a.Source.Pages()
	if err != nil {
		return err
	}
	entries, err := BuildSitemap(a.Config.Domain, a.Config.SitemapLocations, all)
	if err != nil {
		return err
	}
	return renderSitemap(c, entries)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.index(WithLimit(a.Config.FeedPosts))
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

// handleRobots generates robots.txt pointing at the sitemap.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s\n", AbsoluteURL(a.Config.Domain, "sitemap.xml"))
	return c.String(http.StatusOK, body)
}

func (a *App) metricsHandler() echo.HandlerFunc {
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: a.Registry})
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.site()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError(a.site()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
