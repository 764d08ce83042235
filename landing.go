// Package landing serves the nomasarriendo.cl landing page. It fetches content
// from the WordPress API on every page view, resolves it into sections with
// built-in fallbacks, and relays contact form submissions to Contact Form 7.
//
// Templates are supplied through ViewFuncs; DefaultViews returns the embedded
// ones.
package landing

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/nomasarriendo/landing/cms"
	"github.com/nomasarriendo/landing/contact"
	"github.com/nomasarriendo/landing/views"
)

// ViewFuncs holds the components the handlers render.
type ViewFuncs struct {
	Page          func(data views.PageData) templ.Component
	ContactResult func(out contact.Outcome) templ.Component
	NotFound      func() templ.Component
	ServerError   func() templ.Component
}

// DefaultViews returns the embedded templates.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Page:          views.Page,
		ContactResult: views.ContactResult,
		NotFound:      views.NotFound,
		ServerError:   views.ServerError,
	}
}

// ContentSource provides everything the landing page needs from the CMS. It
// never fails: unavailable content comes back empty.
type ContentSource interface {
	LandingData(ctx context.Context) cms.LandingData
}

// App wires the content source, submitter, handlers, and middleware.
type App struct {
	Config    SiteConfig
	Echo      *echo.Echo
	Content   ContentSource
	Submitter contact.Submitter
	Views     ViewFuncs
	Log       *zap.Logger

	submitLimiter *SubmitLimiter
	customRoutes  []func(*App)
	now           func() time.Time
	setupOnce     sync.Once
}

// New creates an App. Content and Submitter default to clients for the
// configured endpoints.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  views,
		Log:    zap.NewNop(),
		now:    time.Now,
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}

	if a.Content == nil {
		a.Content = cms.NewClient(cfg.Content,
			cms.WithLogger(a.Log.Named("cms")),
			cms.WithRevalidate(cfg.Revalidate))
	}
	if a.Submitter == nil {
		a.Submitter = contact.NewCF7Client(cfg.CF7Endpoint,
			contact.WithCF7Logger(a.Log.Named("cf7")))
	}
	a.submitLimiter = NewSubmitLimiter(cfg.SubmitLimit, cfg.SubmitWindow)

	return a
}

func (a *App) setup() {
	a.setupOnce.Do(func() {
		a.setupMiddleware()
		a.setupRoutes()
		for _, fn := range a.customRoutes {
			fn(a)
		}
	})
}

// Handler returns the fully configured HTTP handler.
func (a *App) Handler() http.Handler {
	a.setup()
	return a.Echo
}

// Start validates the configuration and serves until the server is shut down.
func (a *App) Start() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("landing: SessionSecret is required")
	}
	a.setup()

	a.Log.Info("Listening", zap.String("addr", a.Config.Addr), zap.String("site", a.Config.URL))
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
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

	e.StaticFS("/public", echo.MustSubFS(EmbeddedAssets, "embedded"))
	e.FileFS("/favicon.svg", "embedded/logo.svg", EmbeddedAssets)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/healthz", a.handleHealth)

	e.GET("/", a.handleHome)
	e.POST("/contacto/", a.handleContact)
}

// Close releases background resources.
func (a *App) Close() error {
	a.submitLimiter.Stop()
	_ = a.Log.Sync()
	return nil
}
