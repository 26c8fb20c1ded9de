package flatfreeze

import (
	"errors"
	"fmt"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"
)

// SiteConfig holds all configuration for a flatfreeze site.
type SiteConfig struct {
	Name        string `yaml:"name"`        // Site name (default "flatfreeze")
	Domain      string `yaml:"domain"`      // Absolute base URL ending in "/" (default $SITE_DOMAIN, then "http://flatfreeze.com/")
	Description string `yaml:"description"` // Site description for the feed and meta tags
	Author      string `yaml:"author"`      // Author name for JSON-LD

	Addr           string `yaml:"addr"`            // Listen address (default ":5000")
	PagesDir       string `yaml:"pages_dir"`       // Markdown root (default "pages")
	PagesExtension string `yaml:"pages_extension"` // Page file extension (default ".md")
	StaticDir      string `yaml:"static_dir"`      // Served under /static/ (default "static")

	HomePosts int `yaml:"home_posts"` // Recent posts embedded on the home page; 0 embeds none
	FeedPosts int `yaml:"feed_posts"` // Posts in feed.xml (default 20)

	SitemapLocations []StaticLocation `yaml:"sitemap_locations"`

	Freeze FreezeConfig `yaml:"freeze"`
}

// FreezeConfig controls static export.
type FreezeConfig struct {
	Destination   string   `yaml:"destination"`    // Output directory (default "gh-pages")
	Ignore        []string `yaml:"ignore"`         // Globs never removed from the destination
	AbsoluteURLs  bool     `yaml:"absolute_urls"`  // Keep root-relative links instead of rewriting them
	KeepExtra     bool     `yaml:"keep_extra"`     // Keep destination files this run did not write
	Commit        bool     `yaml:"commit"`         // Commit the destination git worktree after freezing
	CommitMessage string   `yaml:"commit_message"` // default "Freeze site"
}

// DefaultFreezeIgnore lists destination files left alone by a freeze.
var DefaultFreezeIgnore = []string{".git*", "CNAME", ".gitignore", "readme.md"}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "flatfreeze"
	}
	if c.Domain == "" {
		c.Domain = EnvOr("SITE_DOMAIN", "http://flatfreeze.com/")
	}
	if c.Addr == "" {
		c.Addr = ":5000"
	}
	if c.PagesDir == "" {
		c.PagesDir = "pages"
	}
	if c.StaticDir == "" {
		c.StaticDir = "static"
	}
	if c.FeedPosts == 0 {
		c.FeedPosts = 20
	}
	if c.SitemapLocations == nil {
		c.SitemapLocations = []StaticLocation{
			{Path: "", LastMod: "2014-02-13"},
			{Path: "contact.html", LastMod: "2014-02-13"},
		}
	}
	if c.Freeze.Destination == "" {
		c.Freeze.Destination = "gh-pages"
	}
	if c.Freeze.Ignore == nil {
		c.Freeze.Ignore = append([]string(nil), DefaultFreezeIgnore...)
	}
	if c.Freeze.CommitMessage == "" {
		c.Freeze.CommitMessage = "Freeze site"
	}
}

// Validate checks the configuration after defaults are applied.
func (c *SiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Domain, validation.Required, is.URL, validation.By(trailingSlash)),
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.PagesDir, validation.Required),
		validation.Field(&c.HomePosts, validation.Min(0)),
		validation.Field(&c.FeedPosts, validation.Min(1)),
		validation.Field(&c.SitemapLocations),
		validation.Field(&c.Freeze),
	)
}

// Validate checks the freeze configuration.
func (c FreezeConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Destination, validation.Required),
		validation.Field(&c.Ignore, validation.Each(validation.Required, validation.By(validGlob))),
	)
}

func trailingSlash(value any) error {
	s, _ := value.(string)
	if !strings.HasSuffix(s, "/") {
		return errors.New("must end with a slash")
	}
	return nil
}

// LoadConfig reads a YAML config file, expanding environment variables in
// it, then applies defaults and validates. A missing file yields the
// defaults.
func LoadConfig(filename string) (SiteConfig, error) {
	var cfg SiteConfig
	data, err := os.ReadFile(filename)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("flatfreeze: read config %s: %w", filename, err)
	default:
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
			return cfg, fmt.Errorf("flatfreeze: parse config %s: %w", filename, err)
		}
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("flatfreeze: config validation failed: %w", err)
	}
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithSource replaces the flat-file page source built from PagesDir.
func WithSource(src PageSource) Option {
	return func(a *App) {
		a.Source = src
	}
}

// WithViews overrides the default templates. Nil fields keep the defaults.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory served under /static/.
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.Config.StaticDir = dir
	}
}

// WithRegistry sets the Prometheus registry used for request metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(a *App) {
		a.Registry = reg
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
