package folio

import (
	"time"

	"go.uber.org/zap"

	"github.com/eringen/folio/content"
)

// SiteConfig holds all configuration for a folio site.
type SiteConfig struct {
	Name        string   `mapstructure:"name"`        // Owner name (default "Portfolio")
	Title       string   `mapstructure:"title"`       // Headline shown under the name
	Description string   `mapstructure:"description"` // Site description for RSS and meta tags
	URL         string   `mapstructure:"url"`         // Canonical URL (default "http://localhost:3000")
	Author      string   `mapstructure:"author"`      // Author name for JSON-LD (default Name)
	Role        string   `mapstructure:"role"`
	Bio         string   `mapstructure:"bio"`
	Email       string   `mapstructure:"email"`
	GitHub      string   `mapstructure:"github"`
	LinkedIn    string   `mapstructure:"linkedin"`
	TechStack   []string `mapstructure:"tech_stack"`

	Addr         string        `mapstructure:"addr"`          // Listen address (default ":3000")
	ContentDir   string        `mapstructure:"content_dir"`   // Content root (default "content")
	DatabasePath string        `mapstructure:"database_path"` // SQLite path (default "data/folio.db")
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`     // Collection cache window (default 1h)
	WatchContent bool          `mapstructure:"watch_content"` // Invalidate on file changes

	AdminPassword   string `mapstructure:"admin_password"`   // Required: admin login password
	SessionSecret   string `mapstructure:"session_secret"`   // Required: session encryption secret
	CookieSecure    bool   `mapstructure:"cookie_secure"`    // Set true for HTTPS
	RevalidateToken string `mapstructure:"revalidate_token"` // Enables POST /revalidate/ when set

	Dev bool `mapstructure:"dev"`
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Portfolio"
	}
	if c.Author == "" {
		c.Author = c.Name
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/folio.db"
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = content.DefaultTTL
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger replaces the logger built from SiteConfig.Dev.
func WithLogger(logger *zap.Logger) Option {
	return func(a *App) {
		a.Logger = logger
	}
}

// WithLibrary supplies a preconfigured content library instead of one rooted
// at SiteConfig.ContentDir.
func WithLibrary(lib *content.Library) Option {
	return func(a *App) {
		a.Library = lib
	}
}

// WithDefaults returns a copy of c with unset fields defaulted, as New does.
func (c SiteConfig) WithDefaults() SiteConfig {
	c.setDefaults()
	return c
}
