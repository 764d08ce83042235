package landing

import (
	"crypto/sha256"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/nomasarriendo/landing/contact"
)

const sessionName = "landing_session"

const contentSecurityPolicy = "default-src 'self'; " +
	"script-src 'self' https://challenges.cloudflare.com; " +
	"style-src 'self' 'unsafe-inline'; " +
	"img-src 'self' https: data:; " +
	"media-src 'self' https:; " +
	"font-src 'self'; " +
	"connect-src 'self'; " +
	"frame-src https://challenges.cloudflare.com https://www.youtube.com https://player.vimeo.com; " +
	"form-action 'self'"

func (a *App) setupMiddleware() {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Pre(middleware.NonWWWRedirect())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			a.Log.Info("request",
				zap.String("id", v.RequestID),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("ip", v.RemoteIP))
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/public/")
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: contentSecurityPolicy,
		HSTSMaxAge:            31536000,
		HSTSExcludeSubdomains: false,
	}))

	e.Use(session.Middleware(a.newSessionStore()))

	e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		ContextKey:     middleware.DefaultCSRFConfig.ContextKey,
		TokenLookup:    "header:X-CSRF-Token,form:_csrf",
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieSameSite: http.SameSiteLaxMode,
		CookieSecure:   a.Config.CookieSecure,
		CookieHTTPOnly: true,
		Skipper: func(c echo.Context) bool {
			return isStaticPath(c.Request().URL.Path)
		},
		ErrorHandler: func(err error, c echo.Context) error {
			a.Log.Warn("CSRF check failed", zap.String("ip", c.RealIP()), zap.Error(err))
			if isHTMX(c) {
				return RenderStatus(c, http.StatusForbidden, a.Views.ContactResult(contact.Outcome{Message: contact.MsgFailure}))
			}
			return c.String(http.StatusForbidden, "Forbidden")
		},
	}))

	e.Use(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		RedirectCode: http.StatusMovedPermanently,
		Skipper: func(c echo.Context) bool {
			return isStaticPath(c.Request().URL.Path)
		},
	}))

	e.Use(cacheControlMiddleware)
}

func isStaticPath(path string) bool {
	return strings.HasPrefix(path, "/public/") ||
		path == "/sitemap.xml" || path == "/robots.txt" ||
		path == "/favicon.svg" || path == "/healthz"
}

func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		switch {
		case strings.HasPrefix(path, "/public/"), path == "/favicon.svg":
			c.Response().Header().Set("Cache-Control", "public, max-age=86400")
		case path == "/sitemap.xml" || path == "/robots.txt":
			c.Response().Header().Set("Cache-Control", "public, max-age=86400")
		default:
			// pages carry a per-visitor CSRF token and flash message
			c.Response().Header().Set("Cache-Control", "no-store")
		}
		return next(c)
	}
}

// sessionKeys derives the signing and encryption keys of the session cookie
// from the configured secret.
func sessionKeys(secret string) (hashKey, blockKey []byte) {
	h := sha256.Sum256([]byte("landing-session-hash:" + secret))
	b := sha256.Sum256([]byte("landing-session-block:" + secret))
	return h[:], b[:]
}

func (a *App) newSessionStore() *sessions.CookieStore {
	store := sessions.NewCookieStore(sessionKeys(a.Config.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60 * 30,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.CookieSecure,
	}
	return store
}

// flash is the result of a non-JavaScript submission, carried across the
// redirect back to the page.
type flash struct {
	Outcome contact.Outcome
	Values  contact.Form
}

const (
	flashPrefix = "flash_"
	flashOK     = flashPrefix + "ok"
	flashMsg    = flashPrefix + "msg"
	flashVal    = flashPrefix + "field_"
)

func setFlash(c echo.Context, f flash) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Values[flashOK] = f.Outcome.Success
	sess.Values[flashMsg] = f.Outcome.Message
	if !f.Outcome.Success {
		for k, v := range f.Values.Fields("") {
			if v != "" {
				sess.Values[flashVal+k] = v
			}
		}
	}
	return sess.Save(c.Request(), c.Response())
}

// popFlash returns and clears the pending flash, if any.
func popFlash(c echo.Context) (flash, bool) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return flash{}, false
	}
	msg, ok := sess.Values[flashMsg].(string)
	if !ok {
		return flash{}, false
	}
	success, _ := sess.Values[flashOK].(bool)
	value := func(key string) string {
		v, _ := sess.Values[flashVal+key].(string)
		return v
	}
	f := flash{
		Outcome: contact.Outcome{Success: success, Message: msg},
		Values: contact.Form{
			Name:     value("nombre"),
			Surname:  value("apellido"),
			RUT:      value("rut"),
			Region:   value("region"),
			Comuna:   value("comuna"),
			Subject:  value("asunto"),
			Phone:    value("telefono"),
			Email:    value("correo"),
			Comments: value("comentarios"),
		},
	}
	for k := range sess.Values {
		if key, ok := k.(string); ok && strings.HasPrefix(key, flashPrefix) {
			delete(sess.Values, k)
		}
	}
	_ = sess.Save(c.Request(), c.Response())
	return f, true
}

// CsrfToken extracts the CSRF token from the Echo context.
func CsrfToken(c echo.Context) string {
	token, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return token
}
