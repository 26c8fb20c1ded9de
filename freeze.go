package flatfreeze

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/flatfreeze/flatfreeze/freezer"
)

// freezeRoutes are the fixed URLs written by every freeze. /metrics is
// intentionally absent.
var freezeRoutes = []string{
	"/",
	"/contact.html",
	"/blog.html",
	"/404.html",
	"/sitemap.xml",
	"/feed.xml",
	"/robots.txt",
}

// FreezeURLs lists every URL a static copy of the site needs: the fixed
// routes, one per page, and every non-hidden file in the static directory.
func (a *App) FreezeURLs() ([]string, error) {
	urls := append([]string(nil), freezeRoutes...)

	all, err := a.Source.Pages()
	if err != nil {
		return nil, fmt.Errorf("flatfreeze: list pages: %w", err)
	}
	for _, p := range all {
		urls = append(urls, p.Link())
	}

	root := a.Config.StaticDir
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		urls = append(urls, "/static/"+filepath.ToSlash(rel))
		return nil
	})
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("flatfreeze: list static files: %w", err)
	}
	return urls, nil
}

// Freeze writes the site to Config.Freeze.Destination.
func (a *App) Freeze(ctx context.Context, logger *slog.Logger) (*freezer.Result, error) {
	urls, err := a.FreezeURLs()
	if err != nil {
		return nil, err
	}
	fc := a.Config.Freeze
	f := freezer.New(a.Echo, freezer.Options{
		Destination:   fc.Destination,
		Ignore:        fc.Ignore,
		RelativeURLs:  !fc.AbsoluteURLs,
		RemoveExtra:   !fc.KeepExtra,
		Commit:        fc.Commit,
		CommitMessage: fc.CommitMessage,
		AuthorName:    a.Config.Author,
		Logger:        logger,
		Registerer:    a.Registry,
	})
	return f.Freeze(ctx, urls)
}
