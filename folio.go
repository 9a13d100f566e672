// Package folio is a portfolio site engine built with Go, Echo, and templ.
// It serves blog posts and projects authored as metadata-headed text files,
// plus RSS, sitemap, a command palette and a content health dashboard.
//
// Users provide their own templ templates via the ViewFuncs struct (the
// views package ships a default set), and folio handles loading,
// validation, caching, handlers and middleware.
package folio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/folio/content"
)

// ViewFuncs holds user-provided templ components that the framework calls
// when rendering pages.
type ViewFuncs struct {
	Home            func(d HomeData) templ.Component
	About           func(site SiteConfig) templ.Component
	Contact         func(site SiteConfig) templ.Component
	Blog            func(d BlogListData) templ.Component
	BlogPartial     func(d BlogListData) templ.Component
	Post            func(d PostData) templ.Component
	Projects        func(d ProjectListData) templ.Component
	ProjectsPartial func(d ProjectListData) templ.Component
	Project         func(d ProjectData) templ.Component
	Search          func(d SearchData) templ.Component
	SearchPartial   func(d SearchData) templ.Component
	AdminLogin      func(showError bool, csrfToken string) templ.Component
	AdminDashboard  func(d DashboardData) templ.Component
	NotFound        func() templ.Component
	ServerError     func() templ.Component
}

// scanHistory is how many scans per kind the store keeps.
const scanHistory = 50

// App is the central folio application. It wires together the content
// library, scan history store, handlers, middleware, and templates.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Library *content.Library
	Store   *Store
	Views   ViewFuncs
	Logger  *zap.Logger

	loginLimiter *LoginLimiter
	watcher      *content.Watcher
	customRoutes []func(*App)
	staticDir    string
	ready        bool
}

// New creates a new folio App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init opens the store, builds the content library, and registers
// middleware and routes. Start calls it; tests call it directly.
func (a *App) Init() error {
	if a.ready {
		return nil
	}
	if a.Config.AdminPassword == "" {
		return errors.New("folio: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return errors.New("folio: SessionSecret is required")
	}

	if a.Logger == nil {
		logger, err := newLogger(a.Config.Dev)
		if err != nil {
			return fmt.Errorf("folio: init logger: %w", err)
		}
		a.Logger = logger
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("folio: init store: %w", err)
	}
	a.Store = store

	if a.Library == nil {
		a.Library = content.NewLibrary(a.Config.ContentDir,
			content.WithCache(content.NewCache(a.Config.CacheTTL)),
			content.WithLogger(a.Logger.Named("content")),
			content.WithReportHook(a.recordReport),
		)
	}

	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// Start initializes the app, optionally watches content, and starts the server.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}

	if a.Config.WatchContent {
		w, err := content.NewWatcher(a.Library, 0)
		if err != nil {
			return fmt.Errorf("folio: init watcher: %w", err)
		}
		if err := w.Start(context.Background()); err != nil {
			return fmt.Errorf("folio: start watcher: %w", err)
		}
		a.watcher = w
	}

	a.Logger.Info("folio listening",
		zap.String("addr", a.Config.Addr),
		zap.String("content", a.Config.ContentDir))
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework assets are served under /public/ ahead of the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/folio.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.GET("/public/folio.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/about/", a.handleAbout)
	e.GET("/contact/", a.handleContact)
	e.GET("/blog/", a.handleBlog)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/projects/", a.handleProjects)
	e.GET("/projects/:slug/", a.handleProject)
	e.GET("/search/", a.handleSearch)
	e.POST("/revalidate/", a.handleRevalidate)

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.POST("/admin/revalidate/", a.handleAdminRevalidate)
	e.POST("/admin/scan/", a.handleAdminScan)
}

// recordReport persists a scan report for the dashboard.
func (a *App) recordReport(rep content.Report) {
	if a.Store == nil {
		return
	}
	if _, err := a.Store.SaveReport(rep); err != nil {
		a.Logger.Error("saving scan report", zap.String("kind", string(rep.Kind)), zap.Error(err))
		return
	}
	if _, err := a.Store.Prune(scanHistory); err != nil {
		a.Logger.Warn("pruning scan history", zap.Error(err))
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	var err error
	if a.Store != nil {
		err = a.Store.Close()
	}
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	return err
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
