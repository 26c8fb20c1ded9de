package flatfreeze

import (
	"slices"
	"time"

	"github.com/flatfreeze/flatfreeze/pages"
)

type indexOptions struct {
	limit   int
	limited bool
}

// IndexOption configures BuildIndex.
type IndexOption func(*indexOptions)

// WithLimit keeps only the n most recent posts. WithLimit(0) keeps none;
// without the option every post is returned.
func WithLimit(n int) IndexOption {
	return func(o *indexOptions) {
		o.limit = max(n, 0)
		o.limited = true
	}
}

// BuildIndex returns the pages that carry a "published" date, newest first.
// Pages without a date under that key are dropped. Pages published at the
// same instant keep their source order.
func BuildIndex(all []*pages.Page, opts ...IndexOption) []*pages.Page {
	var o indexOptions
	for _, opt := range opts {
		opt(&o)
	}

	type dated struct {
		page *pages.Page
		at   time.Time
	}
	posts := make([]dated, 0, len(all))
	for _, p := range all {
		if at, ok := p.Meta.Date("published"); ok {
			posts = append(posts, dated{page: p, at: at})
		}
	}
	slices.SortStableFunc(posts, func(x, y dated) int {
		return y.at.Compare(x.at)
	})
	if o.limited && o.limit < len(posts) {
		posts = posts[:o.limit]
	}

	out := make([]*pages.Page, len(posts))
	for i, d := range posts {
		out[i] = d.page
	}
	return out
}

// index lists published posts from the App's page source.
func (a *App) index(opts ...IndexOption) ([]*pages.Page, error) {
	all, err := a.Source.Pages()
	if err != nil {
		return nil, err
	}
	return BuildIndex(all, opts...), nil
}
