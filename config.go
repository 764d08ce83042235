package landing

import (
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/nomasarriendo/landing/cms"
	"github.com/nomasarriendo/landing/contact"
)

// SiteConfig holds all configuration for the landing site.
type SiteConfig struct {
	Name        string `mapstructure:"name"`        // Site name (default "nomasarriendo.cl")
	URL         string `mapstructure:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `mapstructure:"description"` // Meta description

	Addr string `mapstructure:"addr"` // Listen address (default ":3000")

	Content    cms.Endpoints `mapstructure:"content"`
	Revalidate time.Duration `mapstructure:"revalidate"` // Content reuse window; negative disables (default 60s)

	CF7Endpoint      string `mapstructure:"cf7_endpoint"`
	TurnstileSiteKey string `mapstructure:"turnstile_site_key"`

	SessionSecret string `mapstructure:"session_secret"` // Required: cookie signing secret
	CookieSecure  bool   `mapstructure:"cookie_secure"`  // Set true for HTTPS

	SubmitLimit   int           `mapstructure:"submit_limit"`   // Submissions per IP per window (default 5)
	SubmitWindow  time.Duration `mapstructure:"submit_window"`  // default 10min
	SubmitTimeout time.Duration `mapstructure:"submit_timeout"` // Upper bound for one submission (default 20s)
}

const defaultDescription = "Asesoria inmobiliaria personalizada para compra de vivienda en Chile."

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "nomasarriendo.cl"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Description == "" {
		c.Description = defaultDescription
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.Revalidate == 0 {
		c.Revalidate = cms.DefaultRevalidate
	}
	if c.CF7Endpoint == "" {
		c.CF7Endpoint = contact.DefaultCF7Endpoint
	}
	if c.TurnstileSiteKey == "" {
		c.TurnstileSiteKey = contact.DefaultSiteKey
	}
	if c.SubmitLimit == 0 {
		c.SubmitLimit = 5
	}
	if c.SubmitWindow == 0 {
		c.SubmitWindow = 10 * time.Minute
	}
	if c.SubmitTimeout == 0 {
		c.SubmitTimeout = 20 * time.Second
	}
}

// ListenAddr builds a listen address from the HOSTNAME and PORT settings.
// An empty port means 3000.
func ListenAddr(host, port string) string {
	if port == "" {
		port = "3000"
	}
	return net.JoinHostPort(host, port)
}

// Option configures additional App behavior.
type Option func(*App)

// WithLogger sets the application logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.Log = l
		}
	}
}

// WithContentSource replaces the CMS client.
func WithContentSource(src ContentSource) Option {
	return func(a *App) {
		a.Content = src
	}
}

// WithSubmitter replaces the Contact Form 7 client.
func WithSubmitter(s contact.Submitter) Option {
	return func(a *App) {
		a.Submitter = s
	}
}

// WithClock overrides the time source used for the footer year.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}
