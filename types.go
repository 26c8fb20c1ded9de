package flatfreeze

import (
	"errors"
	"path"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/flatfreeze/flatfreeze/pages"
)

// PageSource supplies markdown pages. Every call re-reads the source.
type PageSource interface {
	Pages() ([]*pages.Page, error)
	Get(path string) (*pages.Page, error)
}

// StaticLocation is a fixed sitemap entry: a path fragment relative to the
// site domain and its last-modified date.
type StaticLocation struct {
	Path    string `yaml:"path"`
	LastMod string `yaml:"lastmod"`
}

// Validate implements validation.Validatable.
func (l StaticLocation) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Path, validation.By(relativeFragment)),
		validation.Field(&l.LastMod, validation.Date(pages.DateLayout)),
	)
}

// SitemapEntry is one rendered sitemap location.
type SitemapEntry struct {
	Loc     string
	LastMod string
}

func relativeFragment(value any) error {
	s, _ := value.(string)
	if strings.HasPrefix(s, "/") {
		return errors.New("must be relative to the domain")
	}
	return nil
}

func validGlob(value any) error {
	s, _ := value.(string)
	if _, err := path.Match(s, ""); err != nil {
		return err
	}
	return nil
}
