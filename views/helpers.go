package views

import (
	"encoding/json"
	"html/template"
	"net/url"
	"path"
	"strings"

	"github.com/nomasarriendo/landing/sections"
)

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// BusinessJsonLD produces a Schema.org RealEstateAgent JSON-LD block for the
// landing page.
func BusinessJsonLD(meta PageMeta, footer sections.Footer) template.JS {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "RealEstateAgent",
		"name":        meta.Title,
		"description": meta.Description,
		"areaServed":  "CL",
	}
	if meta.URL != "" {
		data["url"] = buildURL(meta.URL)
	}
	if footer.Email != "" {
		data["email"] = footer.Email
	}
	if footer.Phone != "" {
		data["telephone"] = footer.Phone
	}
	var sameAs []string
	for _, s := range footer.Social {
		if strings.HasPrefix(s.URL, "http") {
			sameAs = append(sameAs, s.URL)
		}
	}
	if len(sameAs) > 0 {
		data["sameAs"] = sameAs
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return template.JS(b)
}

// telURL turns a display phone number into a tel: link. Only digits and "+"
// survive, so the result is safe to mark as a URL.
func telURL(phone string) template.URL {
	var b strings.Builder
	for _, r := range phone {
		if r == '+' || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return template.URL("tel:" + b.String())
}

func mailtoURL(email string) string {
	if email == "" {
		return ""
	}
	return "mailto:" + email
}

// sectionID is the in-page anchor of a section kind.
func sectionID(kind string) string {
	switch kind {
	case sections.LayoutHero:
		return "inicio"
	case sections.LayoutSuccessStory:
		return "caso-exito"
	case sections.LayoutProcess:
		return "proceso"
	case sections.LayoutWhyTrust:
		return "por-que"
	case sections.LayoutWhatWeLookFor:
		return "requisitos"
	case sections.LayoutContact:
		return "contacto"
	case sections.LayoutFAQ:
		return "faq"
	}
	return ""
}
