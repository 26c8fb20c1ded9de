// Package freezer writes a site to a directory of static files by requesting
// every URL from an http.Handler in-process, the way a static host will
// later serve them.
package freezer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Options configures a Freezer.
type Options struct {
	Destination string   // output directory, created if missing
	Ignore      []string // globs matched against base names and relative paths
	// RelativeURLs rewrites root-relative links in HTML so the output
	// works from any directory or file:// URL.
	RelativeURLs bool
	// RemoveExtra deletes destination files this run did not write.
	RemoveExtra bool

	Commit        bool // commit the destination git worktree
	CommitMessage string
	AuthorName    string
	AuthorEmail   string

	Logger     *slog.Logger
	Registerer prometheus.Registerer
}

// Result describes one freeze run. Paths are slash-separated and relative
// to the destination.
type Result struct {
	Written []string
	Removed []string
	Commit  string // empty when nothing was committed
}

// Freezer renders URLs from a handler into files.
type Freezer struct {
	handler http.Handler
	opts    Options
	logger  *slog.Logger

	files prometheus.Counter
	runs  *prometheus.CounterVec
}

// New creates a Freezer for handler.
func New(handler http.Handler, opts Options) *Freezer {
	if opts.CommitMessage == "" {
		opts.CommitMessage = "Freeze site"
	}
	if opts.AuthorName == "" {
		opts.AuthorName = "flatfreeze"
	}
	if opts.AuthorEmail == "" {
		opts.AuthorEmail = "flatfreeze@localhost"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	f := &Freezer{
		handler: handler,
		opts:    opts,
		logger:  logger,
		files: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flatfreeze",
			Subsystem: "freeze",
			Name:      "files_written_total",
			Help:      "Files written by freeze runs.",
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flatfreeze",
			Subsystem: "freeze",
			Name:      "runs_total",
			Help:      "Freeze runs by result.",
		}, []string{"result"}),
	}
	if opts.Registerer != nil {
		f.files = register(opts.Registerer, f.files)
		f.runs = register(opts.Registerer, f.runs)
	}
	return f
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
	}
	return c
}

// Freeze requests every URL path and writes the responses under the
// destination. Any non-2xx response aborts the run.
func (f *Freezer) Freeze(ctx context.Context, urls []string) (*Result, error) {
	res, err := f.freeze(ctx, urls)
	if err != nil {
		f.runs.WithLabelValues("error").Inc()
		return nil, err
	}
	f.runs.WithLabelValues("ok").Inc()
	return res, nil
}

func (f *Freezer) freeze(ctx context.Context, urls []string) (*Result, error) {
	start := time.Now()
	dest := f.opts.Destination
	if dest == "" {
		return nil, errors.New("freezer: destination is required")
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, fmt.Errorf("freezer: create destination: %w", err)
	}

	res := &Result{}
	written := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rel := FileFor(u)
		if _, ok := written[rel]; ok {
			continue
		}
		if err := f.freezeURL(ctx, u, rel); err != nil {
			return nil, err
		}
		written[rel] = struct{}{}
		res.Written = append(res.Written, rel)
		f.files.Inc()
	}

	if f.opts.RemoveExtra {
		removed, err := f.removeExtra(written)
		if err != nil {
			return nil, err
		}
		res.Removed = removed
	}

	if f.opts.Commit {
		hash, err := commit(dest, f.opts.CommitMessage, f.opts.AuthorName, f.opts.AuthorEmail)
		if err != nil {
			return nil, fmt.Errorf("freezer: commit: %w", err)
		}
		res.Commit = hash
	}

	f.logger.Info("freezer: done",
		slog.String("destination", dest),
		slog.Int("written", len(res.Written)),
		slog.Int("removed", len(res.Removed)),
		slog.String("commit", res.Commit),
		slog.Duration("took", time.Since(start)))
	return res, nil
}

func (f *Freezer) freezeURL(ctx context.Context, u, rel string) error {
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	req.URL.Path = u
	req.RequestURI = u
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	if rec.Code < 200 || rec.Code > 299 {
		return fmt.Errorf("freezer: GET %s: unexpected status %d", u, rec.Code)
	}

	body := rec.Body.Bytes()
	if f.opts.RelativeURLs && strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		rewritten, err := Relativize(body, rel)
		if err != nil {
			return fmt.Errorf("freezer: rewrite %s: %w", u, err)
		}
		body = rewritten
	}

	out := filepath.Join(f.opts.Destination, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("freezer: %w", err)
	}
	if err := os.WriteFile(out, body, 0o644); err != nil {
		return fmt.Errorf("freezer: write %s: %w", rel, err)
	}
	f.logger.Debug("freezer: wrote", slog.String("url", u), slog.String("file", rel))
	return nil
}

// FileFor maps a URL path to a destination file. Directory URLs get
// index.html.
func FileFor(u string) string {
	if u == "" || strings.HasSuffix(u, "/") {
		u += "index.html"
	}
	return strings.TrimPrefix(path.Clean("/"+u), "/")
}

func (f *Freezer) ignored(rel string) bool {
	base := path.Base(rel)
	if base == ".git" {
		return true
	}
	for _, pattern := range f.opts.Ignore {
		if ok, _ := path.Match(pattern, base); ok {
			return true
		}
		if ok, _ := path.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func (f *Freezer) removeExtra(written map[string]struct{}) ([]string, error) {
	root := f.opts.Destination
	var removed, dirs []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if p == root {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if f.ignored(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			dirs = append(dirs, p)
			return nil
		}
		if _, ok := written[rel]; ok {
			return nil
		}
		if err := os.Remove(p); err != nil {
			return err
		}
		removed = append(removed, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("freezer: remove extra files: %w", err)
	}

	// Deepest first so emptied parents go too.
	slices.Reverse(dirs)
	for _, d := range dirs {
		entries, err := os.ReadDir(d)
		if err == nil && len(entries) == 0 {
			_ = os.Remove(d)
		}
	}
	return removed, nil
}
