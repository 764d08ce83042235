package landing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/nomasarriendo/landing/cms"
	"github.com/nomasarriendo/landing/contact"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type staticContent struct {
	data cms.LandingData
}

func (s staticContent) LandingData(context.Context) cms.LandingData {
	return s.data
}

type recordingSubmitter struct {
	mu     sync.Mutex
	forms  []contact.Form
	tokens []string
	out    contact.Outcome
}

func (s *recordingSubmitter) Submit(_ context.Context, f contact.Form, token string) contact.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forms = append(s.forms, f)
	s.tokens = append(s.tokens, token)
	return s.out
}

func (s *recordingSubmitter) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.forms)
}

// browser keeps cookies between requests against the app handler.
type browser struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	b.handler.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		b.cookies[c.Name] = c
	}
	return rec
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

// page loads the landing page and returns it with its CSRF token.
func (b *browser) page() (*goquery.Document, string) {
	b.t.Helper()
	rec := b.get("/")
	require.Equal(b.t, http.StatusOK, rec.Code)
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(b.t, err)
	return doc, doc.Find(`input[name="_csrf"]`).AttrOr("value", "")
}

func (b *browser) post(path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return b.do(req)
}

type testApp struct {
	*App
	submitter *recordingSubmitter
	logs      *observer.ObservedLogs
}

func newTestApp(t *testing.T, content cms.LandingData, opts ...Option) (*testApp, *browser) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	sub := &recordingSubmitter{out: contact.Outcome{Success: true, Message: contact.MsgSuccess}}
	all := append([]Option{
		WithLogger(zap.New(core)),
		WithContentSource(staticContent{data: content}),
		WithSubmitter(sub),
		WithClock(func() time.Time { return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) }),
	}, opts...)
	app := New(SiteConfig{
		URL:           "https://nomasarriendo.cl",
		SessionSecret: "test-secret-0123456789abcdef",
	}, DefaultViews(), all...)
	t.Cleanup(func() { _ = app.Close() })
	return &testApp{App: app, submitter: sub, logs: logs},
		&browser{t: t, handler: app.Handler(), cookies: map[string]*http.Cookie{}}
}

func validValues(csrf, token string) url.Values {
	return url.Values{
		"_csrf":                 {csrf},
		"nombre":                {"Ana"},
		"apellido":              {"Pérez"},
		"rut":                   {"12345678-5"},
		"region":                {"Metropolitana"},
		"comuna":                {"Providencia"},
		"asunto":                {"Otros"},
		"telefono":              {"912345678"},
		"correo":                {"ana@example.cl"},
		"comentarios":           {"Hola"},
		"cf-turnstile-response": {token},
	}
}

func TestHomeRendersFallbackPageWithoutContent(t *testing.T) {
	_, b := newTestApp(t, cms.LandingData{})
	rec := b.get("/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "https://challenges.cloudflare.com")
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 8, doc.Find("main > section").Length())
	assert.Equal(t, "nomasarriendo.cl", doc.Find("title").Text())
	assert.Equal(t, defaultDescription, doc.Find(`meta[name="description"]`).AttrOr("content", ""))
	assert.NotEmpty(t, doc.Find(`input[name="_csrf"]`).AttrOr("value", ""))
	assert.Equal(t, contact.DefaultSiteKey, doc.Find("#contact-form").AttrOr("data-sitekey", ""))
	assert.Contains(t, doc.Find(".footer-bottom p").First().Text(), "2026")
}

func TestHomeRendersContentAndLogsDroppedModules(t *testing.T) {
	app, b := newTestApp(t, cms.LandingData{
		Menus: cms.Menus{Header: []cms.MenuItem{
			{Title: "Contacto", URL: "#contacto", Order: 2},
			{Title: "Proceso", URL: "#proceso", Order: 1},
		}},
		Options: cms.SiteOptions{"site_name": "No Más Arriendo"},
		Modules: []cms.Module{
			{"acf_fc_layout": "hero", "title": "Tu primera casa"},
			{"acf_fc_layout": "carousel"},
			{"acf_fc_layout": "faq"},
		},
	})
	doc, _ := b.page()

	assert.Equal(t, 2, doc.Find("main > section").Length())
	assert.Equal(t, "Tu primera casa", doc.Find(".hero h1").Text())
	assert.Equal(t, "Proceso", doc.Find(".site-header nav li").First().Text())
	assert.Equal(t, "No Más Arriendo", doc.Find(".brand span").Text())

	dropped := app.logs.FilterMessage("Dropped module with unknown layout").All()
	require.Len(t, dropped, 1)
	assert.Equal(t, "carousel", dropped[0].ContextMap()["layout"])
}

func TestContactSubmissionHTMX(t *testing.T) {
	app, b := newTestApp(t, cms.LandingData{})
	_, csrf := b.page()

	rec := b.post("/contacto/", validValues(csrf, "tok-1"), true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), contact.MsgSuccess)
	assert.Contains(t, rec.Body.String(), "result-success")

	require.Equal(t, 1, app.submitter.calls())
	assert.Equal(t, []string{"tok-1"}, app.submitter.tokens)
	assert.Equal(t, "12.345.678-5", app.submitter.forms[0].RUT)
	assert.Equal(t, "+56 9 1234 5678", app.submitter.forms[0].Phone)
}

func TestContactSubmissionFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(url.Values)
		want   string
	}{
		{"invalid rut", func(v url.Values) { v.Set("rut", "12345678-0") }, contact.MsgInvalidRUT},
		{"short phone", func(v url.Values) { v.Set("telefono", "1") }, contact.MsgInvalidPhone},
		{"missing challenge token", func(v url.Values) { v.Set("cf-turnstile-response", "") }, contact.MsgChallengeNotReady},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, b := newTestApp(t, cms.LandingData{})
			_, csrf := b.page()
			values := validValues(csrf, "tok")
			tt.mutate(values)

			rec := b.post("/contacto/", values, true)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
			assert.Contains(t, rec.Body.String(), "result-error")
			assert.Zero(t, app.submitter.calls())
		})
	}
}

func TestContactSubmissionEndpointRejection(t *testing.T) {
	app, b := newTestApp(t, cms.LandingData{})
	app.submitter.out = contact.Outcome{Message: "Revisa los campos."}
	_, csrf := b.page()

	rec := b.post("/contacto/", validValues(csrf, "tok"), true)
	assert.Contains(t, rec.Body.String(), "Revisa los campos.")
}

func TestContactSubmissionRequiresCSRF(t *testing.T) {
	app, b := newTestApp(t, cms.LandingData{})
	b.page()

	rec := b.post("/contacto/", validValues("forged", "tok"), false)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, app.submitter.calls())
}

func TestContactSubmissionWithoutJavaScriptUsesFlash(t *testing.T) {
	app, b := newTestApp(t, cms.LandingData{})
	app.submitter.out = contact.Outcome{Message: contact.MsgFailure}
	_, csrf := b.page()

	rec := b.post("/contacto/", validValues(csrf, "tok"), false)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/#contacto", rec.Header().Get("Location"))

	doc, _ := b.page()
	result := doc.Find("#contact-result .result")
	assert.Equal(t, contact.MsgFailure, result.Text())
	assert.Equal(t, "Ana", doc.Find("#nombre").AttrOr("value", ""), "values are kept after a failure")
	assert.Equal(t, "12.345.678-5", doc.Find("#rut").AttrOr("value", ""))

	doc, _ = b.page()
	assert.Equal(t, 0, doc.Find("#contact-result .result").Length(), "flash is shown once")
}

func TestContactSubmissionSuccessClearsValues(t *testing.T) {
	_, b := newTestApp(t, cms.LandingData{})
	_, csrf := b.page()

	b.post("/contacto/", validValues(csrf, "tok"), false)
	doc, _ := b.page()
	assert.Equal(t, contact.MsgSuccess, doc.Find("#contact-result .result").Text())
	assert.Empty(t, doc.Find("#nombre").AttrOr("value", ""))
}

// sessionFrom decodes the browser's session cookie with store.
func sessionFrom(t *testing.T, b *browser, store sessions.Store) (*sessions.Session, error) {
	t.Helper()
	cookie, ok := b.cookies[sessionName]
	require.True(t, ok, "session cookie is set")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	return store.Get(req, sessionName)
}

func TestFlashCookieIsEncryptedAndKeepsValuesOnlyOnFailure(t *testing.T) {
	app, b := newTestApp(t, cms.LandingData{})
	app.submitter.out = contact.Outcome{Message: contact.MsgFailure}
	_, csrf := b.page()
	b.post("/contacto/", validValues(csrf, "tok"), false)

	assert.NotContains(t, b.cookies[sessionName].Value, "12.345.678-5")
	hashKey, _ := sessionKeys(app.Config.SessionSecret)
	_, err := sessionFrom(t, b, sessions.NewCookieStore(hashKey))
	assert.Error(t, err, "a signing key alone cannot read the cookie")

	sess, err := sessionFrom(t, b, app.newSessionStore())
	require.NoError(t, err)
	assert.Equal(t, "12.345.678-5", sess.Values[flashVal+"rut"])

	b.page()
	app.submitter.out = contact.Outcome{Success: true, Message: contact.MsgSuccess}
	_, csrf = b.page()
	b.post("/contacto/", validValues(csrf, "tok"), false)

	sess, err = sessionFrom(t, b, app.newSessionStore())
	require.NoError(t, err)
	assert.Equal(t, contact.MsgSuccess, sess.Values[flashMsg])
	for key := range sess.Values {
		assert.False(t, strings.HasPrefix(key.(string), flashVal), "unexpected %v after success", key)
	}
}

func TestContactSubmissionRateLimited(t *testing.T) {
	app, b := newTestApp(t, cms.LandingData{})
	app.submitLimiter.Stop()
	app.submitLimiter = NewSubmitLimiter(1, time.Minute)
	_, csrf := b.page()

	b.post("/contacto/", validValues(csrf, "a"), true)
	rec := b.post("/contacto/", validValues(csrf, "b"), true)
	assert.Contains(t, rec.Body.String(), MsgTooManySubmissions)
	assert.Equal(t, 1, app.submitter.calls())
}

func TestSitemapRobotsAndHealth(t *testing.T) {
	_, b := newTestApp(t, cms.LandingData{})

	rec := b.get("/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/xml")
	assert.Contains(t, rec.Body.String(), "<loc>https://nomasarriendo.cl/</loc>")
	assert.Equal(t, "public, max-age=86400", rec.Header().Get("Cache-Control"))

	rec = b.get("/robots.txt")
	assert.Contains(t, rec.Body.String(), "Sitemap: https://nomasarriendo.cl/sitemap.xml")

	rec = b.get("/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestEmbeddedAssets(t *testing.T) {
	_, b := newTestApp(t, cms.LandingData{})
	for _, path := range []string{"/public/landing.css", "/public/contact.js", "/public/logo.svg", "/favicon.svg"} {
		rec := b.get(path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.NotZero(t, rec.Body.Len(), path)
	}
	rec := b.get("/public/missing.css")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContactScriptValidatesBeforeChallenge(t *testing.T) {
	_, b := newTestApp(t, cms.LandingData{})
	script := b.get("/public/contact.js").Body.String()

	// The browser shows the same messages as the server for the checks it
	// runs before asking for a challenge token.
	assert.Contains(t, script, strconv.Quote(contact.MsgInvalidRUT))
	assert.Contains(t, script, strconv.Quote(contact.MsgInvalidPhone))

	validate := strings.Index(script, "validationError();")
	execute := strings.Index(script, "turnstile.execute(")
	require.NotEqual(t, -1, validate)
	require.NotEqual(t, -1, execute)
	assert.Less(t, validate, execute)
}

func TestNotFoundPage(t *testing.T) {
	_, b := newTestApp(t, cms.LandingData{})
	rec := b.get("/blog/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Página no encontrada")
}

func TestStartRequiresSessionSecret(t *testing.T) {
	app := New(SiteConfig{}, DefaultViews(), WithContentSource(staticContent{}), WithSubmitter(&recordingSubmitter{}))
	defer app.Close()
	assert.Error(t, app.Start())
}

func TestSiteConfigDefaults(t *testing.T) {
	var cfg SiteConfig
	cfg.setDefaults()
	assert.Equal(t, "nomasarriendo.cl", cfg.Name)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, cms.DefaultRevalidate, cfg.Revalidate)
	assert.Equal(t, contact.DefaultCF7Endpoint, cfg.CF7Endpoint)
	assert.Equal(t, contact.DefaultSiteKey, cfg.TurnstileSiteKey)
	assert.Equal(t, 5, cfg.SubmitLimit)
}

func TestListenAddr(t *testing.T) {
	assert.Equal(t, "0.0.0.0:8080", ListenAddr("0.0.0.0", "8080"))
	assert.Equal(t, ":3000", ListenAddr("", ""))
}

func TestBuildURL(t *testing.T) {
	assert.Equal(t, "https://nomasarriendo.cl/", BuildURL("https://nomasarriendo.cl"))
	assert.Equal(t, "https://nomasarriendo.cl/a/b/", BuildURL("https://nomasarriendo.cl/", "a", "b"))
}
