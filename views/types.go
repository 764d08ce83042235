package views

import (
	"github.com/nomasarriendo/landing/contact"
	"github.com/nomasarriendo/landing/sections"
)

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string
	Lang        string
	Image       string
}

// FormView is everything the contact form needs besides the section copy.
type FormView struct {
	Action    string
	CSRFToken string
	SiteKey   string
	ScriptURL string
	Container string
	Regions   []string
	Subjects  []string
	Values    contact.Form
	// Result is set after a submission and shown above the form.
	Result *contact.Outcome
}

// PageData is the landing page model.
type PageData struct {
	Meta     PageMeta
	Header   sections.Header
	Sections []sections.Section
	Footer   sections.Footer
	Form     FormView
}

// Slot pairs a section with the page-wide form so the contact section can
// render it.
type Slot struct {
	Section sections.Section
	Form    *FormView
}

func (p *PageData) Slots() []Slot {
	out := make([]Slot, 0, len(p.Sections))
	for _, s := range p.Sections {
		out = append(out, Slot{Section: s, Form: &p.Form})
	}
	return out
}
