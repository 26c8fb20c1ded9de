package pages

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DefaultExtension is the file extension of page files.
const DefaultExtension = ".md"

// FlatPages reads pages from a directory tree on every call. Nothing is
// cached, so edits on disk are visible to the next request.
type FlatPages struct {
	root string // absolute path to the pages directory
	ext  string
}

// Option configures a FlatPages source.
type Option func(*FlatPages)

// WithExtension sets the page file extension (default ".md").
func WithExtension(ext string) Option {
	return func(f *FlatPages) {
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		f.ext = ext
	}
}

// NewFlatPages creates a source rooted at dir. The directory must exist.
func NewFlatPages(dir string, opts ...Option) (*FlatPages, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("pages: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("pages: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("pages: root is not a directory: %s", abs)
	}
	f := &FlatPages{root: abs, ext: DefaultExtension}
	for _, opt := range opts {
		opt(f)
	}
	if f.ext == "" {
		f.ext = DefaultExtension
	}
	return f, nil
}

// Pages returns every page under the root in lexical path order. Hidden
// files and directories are skipped.
func (f *FlatPages) Pages() ([]*Page, error) {
	var out []*Page
	err := filepath.WalkDir(f.root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if p != f.root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), f.ext) {
			return nil
		}
		rel, err := filepath.Rel(f.root, p)
		if err != nil {
			return err
		}
		page, err := f.load(p, strings.TrimSuffix(filepath.ToSlash(rel), f.ext))
		if err != nil {
			return err
		}
		out = append(out, page)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns the page at path. Paths that are not canonical or that would
// leave the root report ErrNotFound.
func (f *FlatPages) Get(p string) (*Page, error) {
	if !validPath(p) {
		return nil, ErrNotFound
	}
	file := filepath.Join(f.root, filepath.FromSlash(p)+f.ext)
	info, err := os.Stat(file)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.Mode().IsRegular()) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return f.load(file, p)
}

func (f *FlatPages) load(file, p string) (*Page, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return Parse(p, data)
}

func validPath(p string) bool {
	if p == "" || path.IsAbs(p) || strings.Contains(p, "\\") {
		return false
	}
	if path.Clean(p) != p {
		return false
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." || strings.HasPrefix(seg, ".") {
			return false
		}
	}
	return true
}
