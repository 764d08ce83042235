package sections

import (
	"time"

	"github.com/nomasarriendo/landing/cms"
	"github.com/nomasarriendo/landing/coerce"
)

// NavLink is one entry of a navigation list.
type NavLink struct {
	Label  string `yaml:"label"`
	URL    string `yaml:"url"`
	Target string `yaml:"target,omitempty"`
}

// External reports whether the link opens in a new window.
func (l NavLink) External() bool {
	return l.Target == "_blank"
}

type SocialLink struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
	Icon  Icon   `yaml:"icon"`
}

// Header is the sticky page header. Nav is empty when the header menu is.
type Header struct {
	Logo     string    `yaml:"logo"`
	SiteName string    `yaml:"site_name"`
	Nav      []NavLink `yaml:"nav,omitempty"`
	CTA      Link      `yaml:"cta"`
}

// Footer is the page footer. LegalLinks is empty unless configured.
type Footer struct {
	Logo          string       `yaml:"logo"`
	SiteName      string       `yaml:"site_name"`
	Description   string       `yaml:"description"`
	Email         string       `yaml:"email"`
	Phone         string       `yaml:"phone"`
	Notice        string       `yaml:"notice"`
	QuickLinks    []NavLink    `yaml:"quick_links"`
	LegalLinks    []NavLink    `yaml:"legal_links,omitempty"`
	ServicesTitle string       `yaml:"services_title"`
	Services      []string     `yaml:"services"`
	Social        []SocialLink `yaml:"social"`
	Year          int          `yaml:"year,omitempty"`
}

func navLinks(items []cms.MenuItem) []NavLink {
	if len(items) == 0 {
		return nil
	}
	sorted := cms.SortMenu(items)
	out := make([]NavLink, 0, len(sorted))
	for _, item := range sorted {
		out = append(out, NavLink{Label: item.Title, URL: item.URL, Target: item.Target})
	}
	return out
}

// BuildHeader resolves the header from the header menu and site options.
func BuildHeader(menus cms.Menus, opts cms.SiteOptions) Header {
	d := fallback.Header
	return Header{
		Logo:     coerce.FirstNonEmpty(coerce.Media(opts.Value("site_logo")), d.Logo),
		SiteName: coerce.FirstNonEmpty(opts.String("site_name"), d.SiteName),
		Nav:      navLinks(menus.Header),
		CTA: coerce.Link(coerce.LinkParams{
			Label:        opts.String("header_cta_label"),
			URL:          opts.String("header_cta_target"),
			Link:         opts.Value("header_cta"),
			DefaultLabel: d.CTA.Label,
			DefaultURL:   d.CTA.URL,
		}),
	}
}

// BuildFooter resolves the footer from the footer menu and site options. now
// supplies the copyright year.
func BuildFooter(menus cms.Menus, opts cms.SiteOptions, now time.Time) Footer {
	d := fallback.Footer
	f := Footer{
		Logo:          coerce.FirstNonEmpty(coerce.Media(opts.Value("site_logo")), d.Logo),
		SiteName:      coerce.FirstNonEmpty(opts.String("site_name"), d.SiteName),
		Description:   coerce.FirstNonEmpty(opts.String("footer_description"), d.Description),
		Email:         coerce.FirstNonEmpty(opts.String("footer_email"), d.Email),
		Phone:         coerce.FirstNonEmpty(opts.String("footer_phone"), d.Phone),
		Notice:        coerce.FirstNonEmpty(opts.String("footer_notice"), d.Notice),
		QuickLinks:    navLinks(menus.Footer),
		ServicesTitle: coerce.FirstNonEmpty(opts.String("footer_title_services"), d.ServicesTitle),
		Services:      d.Services,
		Social:        d.Social,
		Year:          now.Year(),
	}
	if f.QuickLinks == nil {
		f.QuickLinks = d.QuickLinks
	}
	for _, entry := range coerce.List(opts.Value("footer_legal_links")) {
		f.LegalLinks = append(f.LegalLinks, NavLink{
			Label: coerce.Field(entry, "label"),
			URL:   coerce.Field(entry, "url"),
		})
	}
	if raw := coerce.Strings(opts.Value("footer_services"), "service"); raw != nil {
		f.Services = make([]string, 0, len(raw))
		for _, s := range raw {
			if s != "" {
				f.Services = append(f.Services, s)
			}
		}
	}
	if raw := coerce.List(opts.Value("social_links")); len(raw) > 0 {
		f.Social = make([]SocialLink, 0, len(raw))
		for _, entry := range raw {
			f.Social = append(f.Social, SocialLink{
				Label: coerce.Field(entry, "label"),
				URL:   coerce.Field(entry, "url"),
				Icon:  socialIcons.resolve(coerce.Map(entry)["icon"]),
			})
		}
	}
	return f
}
