// Package views renders the landing page. Markup lives in html/template files
// embedded in the binary; every exported renderer returns a templ.Component so
// handlers treat all output the same way.
package views

import (
	"embed"
	"html/template"

	"github.com/a-h/templ"

	"github.com/nomasarriendo/landing/contact"
	"github.com/nomasarriendo/landing/richtext"
	"github.com/nomasarriendo/landing/sections"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"richtext":  richtext.Render,
	"inline":    richtext.Inline,
	"sectionID": sectionID,
	"tel":       telURL,
	"mailto":    mailtoURL,
	"jsonld":    BusinessJsonLD,
	"inc":       func(i int) int { return i + 1 },
}

var tmpl = template.Must(template.New("views").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))

// Page renders the full landing page.
func Page(data PageData) templ.Component {
	if data.Meta.Lang == "" {
		data.Meta.Lang = "es"
	}
	return templ.FromGoHTML(tmpl.Lookup("page"), &data)
}

// ContactResult renders the outcome banner swapped in after an asynchronous
// submission.
func ContactResult(out contact.Outcome) templ.Component {
	return templ.FromGoHTML(tmpl.Lookup("contact-result"), out)
}

// section renders a single section without the page chrome. The contact
// section is rendered without its form.
func section(s sections.Section) templ.Component {
	return templ.FromGoHTML(tmpl.Lookup("section"), Slot{Section: s})
}

type errorCopy struct {
	Title   string
	Message string
}

func NotFound() templ.Component {
	return templ.FromGoHTML(tmpl.Lookup("error-page"), errorCopy{
		Title:   "Página no encontrada",
		Message: "La página que buscas no existe o fue movida.",
	})
}

func ServerError() templ.Component {
	return templ.FromGoHTML(tmpl.Lookup("error-page"), errorCopy{
		Title:   "Algo salió mal",
		Message: "Estamos teniendo problemas técnicos. Intenta nuevamente en unos minutos.",
	})
}
