package landing

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/nomasarriendo/landing/contact"
	"github.com/nomasarriendo/landing/sections"
	"github.com/nomasarriendo/landing/views"
)

// MsgTooManySubmissions is shown when a visitor exceeds the submission limit.
const MsgTooManySubmissions = "Has enviado demasiadas solicitudes. Intenta nuevamente más tarde."

const challengeToken = "cf-turnstile-response"

func (a *App) handleHome(c echo.Context) error {
	data := a.pageData(c.Request().Context())
	data.Form.CSRFToken = CsrfToken(c)
	if f, ok := popFlash(c); ok {
		data.Form.Result = &f.Outcome
		if !f.Outcome.Success {
			data.Form.Values = f.Values
		}
	}
	return Render(c, a.Views.Page(data))
}

// pageData fetches content and resolves it into the page model. It cannot
// fail: missing content falls back to the built-in copy.
func (a *App) pageData(ctx context.Context) views.PageData {
	content := a.Content.LandingData(ctx)
	secs := sections.Build(content.Modules, sections.WithDiagnostics(func(index int, layout string) {
		a.Log.Debug("Dropped module with unknown layout", zap.Int("index", index), zap.String("layout", layout))
	}))
	return views.PageData{
		Meta:     a.pageMeta(),
		Header:   sections.BuildHeader(content.Menus, content.Options),
		Sections: secs,
		Footer:   sections.BuildFooter(content.Menus, content.Options, a.now()),
		Form: views.FormView{
			Action:    "/contacto/",
			SiteKey:   a.Config.TurnstileSiteKey,
			ScriptURL: contact.ChallengeScriptURL,
			Container: "turnstile",
			Regions:   contact.Regions,
			Subjects:  contact.Subjects,
		},
	}
}

func (a *App) pageMeta() PageMeta {
	return PageMeta{
		Title:       a.Config.Name,
		Description: a.Config.Description,
		URL:         BuildURL(a.Config.URL),
		OGType:      "website",
		Lang:        "es",
	}
}

func (a *App) handleContact(c echo.Context) error {
	var form contact.Form
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	var out contact.Outcome
	if !a.submitLimiter.Allow(c.RealIP()) {
		a.Log.Warn("Contact submission rate limited", zap.String("ip", c.RealIP()))
		out = contact.Outcome{Message: MsgTooManySubmissions}
	} else {
		out = a.submit(c.Request().Context(), form, c.FormValue(challengeToken))
	}

	if isHTMX(c) {
		return Render(c, a.Views.ContactResult(out))
	}
	if err := setFlash(c, flash{Outcome: out, Values: form.Normalized()}); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/#contacto")
}

// submit runs one attempt through the submission state machine. The browser
// solves the challenge before posting, so the widget here only hands back the
// posted token.
func (a *App) submit(ctx context.Context, form contact.Form, token string) contact.Outcome {
	ctx, cancel := context.WithTimeout(ctx, a.Config.SubmitTimeout)
	defer cancel()

	m := contact.NewMachine(&postedChallenge{token: token}, a.Submitter,
		contact.WithSiteKey(a.Config.TurnstileSiteKey),
		contact.WithMachineLogger(a.Log.Named("contact")))
	m.Mount()
	if m.Submit(ctx, form) == contact.Done {
		return m.Outcome()
	}
	out, err := m.Wait(ctx)
	if err != nil {
		a.Log.Warn("Contact submission did not settle", zap.Error(err))
		return contact.Outcome{Message: contact.MsgFailure}
	}
	return out
}

// postedChallenge is the server side of the challenge widget: the token was
// already solved in the browser and arrives with the form.
type postedChallenge struct {
	token string
	opts  contact.ChallengeOptions
}

func (p *postedChallenge) Render(_ string, opts contact.ChallengeOptions) string {
	p.opts = opts
	return "posted"
}

func (p *postedChallenge) Reset(string) {
	p.token = ""
}

func (p *postedChallenge) Execute(string) {
	if p.token == "" {
		p.opts.OnError()
		return
	}
	p.opts.OnSuccess(p.token)
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c)
}

func (a *App) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleRobots(c echo.Context) error {
	body := "User-agent: *\nAllow: /\n\nSitemap: " + strings.TrimRight(a.Config.URL, "/") + "/sitemap.xml\n"
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Log.Error("server error", zap.String("uri", c.Request().RequestURI), zap.Error(err))
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
