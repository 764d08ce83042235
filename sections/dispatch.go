package sections

import (
	"strconv"

	"github.com/nomasarriendo/landing/cms"
	"github.com/nomasarriendo/landing/coerce"
)

// keyPrefix maps layout tags to rendering-key prefixes.
var keyPrefix = map[string]string{
	LayoutHero:          "hero",
	LayoutStats:         "stats",
	LayoutSuccessStory:  "success",
	LayoutProcess:       "process",
	LayoutWhyTrust:      "why-trust",
	LayoutWhatWeLookFor: "what-we-look",
	LayoutContact:       "contact",
	LayoutFAQ:           "faq",
}

func sectionKey(layout string, index int) string {
	prefix, ok := keyPrefix[layout]
	if !ok {
		prefix = "unknown"
	}
	return prefix + "-" + strconv.Itoa(index)
}

// text returns the module field as a string, or fallback when it is empty.
func text(m cms.Module, key, fallback string) string {
	return coerce.FirstNonEmpty(coerce.String(m[key]), fallback)
}

// Dispatch builds the descriptor for one module. The layout tag is matched
// exactly; an unknown tag yields Unrecognized. Index only feeds the key.
func Dispatch(m cms.Module, index int) Section {
	layout := m.Layout()
	key := sectionKey(layout, index)
	switch layout {
	case LayoutHero:
		return buildHero(m, key)
	case LayoutStats:
		return buildStats(m, key)
	case LayoutSuccessStory:
		return buildTestimonial(m, key)
	case LayoutProcess:
		return buildProcess(m, key)
	case LayoutWhyTrust:
		return buildTrust(m, key)
	case LayoutWhatWeLookFor:
		return buildRequirements(m, key)
	case LayoutContact:
		return buildContact(m, key)
	case LayoutFAQ:
		return buildFAQ(m, key)
	default:
		return Unrecognized{Key: key, Layout: layout}
	}
}

// BuildOption configures Build.
type BuildOption func(*buildConfig)

type buildConfig struct {
	onDropped func(index int, layout string)
}

// WithDiagnostics registers a callback for every module Build drops because
// its layout tag is unknown.
func WithDiagnostics(fn func(index int, layout string)) BuildOption {
	return func(c *buildConfig) {
		c.onDropped = fn
	}
}

// Build dispatches every module in order and drops unrecognized ones. An
// empty or nil module list yields the static fallback page.
func Build(modules []cms.Module, opts ...BuildOption) []Section {
	var cfg buildConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(modules) == 0 {
		return Defaults()
	}
	out := make([]Section, 0, len(modules))
	for i, m := range modules {
		s := Dispatch(m, i)
		if u, ok := s.(Unrecognized); ok {
			if cfg.onDropped != nil {
				cfg.onDropped(i, u.Layout)
			}
			continue
		}
		out = append(out, s)
	}
	return out
}

// Defaults returns the static fallback page: one section per known layout in
// DefaultOrder, each built entirely from the fallback copy.
func Defaults() []Section {
	out := make([]Section, 0, len(DefaultOrder))
	for i, layout := range DefaultOrder {
		out = append(out, Dispatch(cms.Module{"acf_fc_layout": layout}, i))
	}
	return out
}

func buildHero(m cms.Module, key string) Hero {
	d := fallback.Hero
	return Hero{
		Key:      key,
		Title:    text(m, "title", d.Title),
		Subtitle: text(m, "subtitle", d.Subtitle),
		Primary: coerce.Link(coerce.LinkParams{
			Label:        coerce.String(m["cta_primary_label"]),
			URL:          coerce.String(m["cta_primary_target"]),
			DefaultLabel: d.Primary.Label,
			DefaultURL:   d.Primary.URL,
		}),
		Secondary: coerce.Link(coerce.LinkParams{
			Label:        coerce.String(m["cta_secondary_label"]),
			URL:          coerce.String(m["cta_secondary_target"]),
			DefaultLabel: d.Secondary.Label,
			DefaultURL:   d.Secondary.URL,
		}),
		BackgroundVideo: coerce.FirstNonEmpty(coerce.Media(m["background_video_url"]), d.BackgroundVideo),
		BackgroundImage: coerce.FirstNonEmpty(coerce.Media(m["background_image_url"]), d.BackgroundImage),
	}
}

func buildStats(m cms.Module, key string) Stats {
	raw := coerce.List(m["items"])
	if len(raw) == 0 {
		return Stats{Key: key, Items: fallback.Stats.Items}
	}
	items := make([]Stat, 0, len(raw))
	for _, entry := range raw {
		items = append(items, Stat{
			Icon:        statIcons.resolve(coerce.Map(entry)["icon"]),
			Number:      coerce.Field(entry, "number"),
			Label:       coerce.Field(entry, "label"),
			Description: coerce.Field(entry, "description"),
		})
	}
	return Stats{Key: key, Items: items}
}

func buildTestimonial(m cms.Module, key string) Testimonial {
	d := fallback.Testimonial
	video := m["video"]
	if video == nil {
		video = m["video_url"]
	}
	results := coerce.Strings(m["results"], "result")
	if results == nil {
		results = d.Results
	}
	return Testimonial{
		Key:        key,
		Title:      text(m, "title", d.Title),
		Subtitle:   text(m, "subtitle", d.Subtitle),
		Image:      coerce.FirstNonEmpty(coerce.Media(m["image"]), d.Image),
		VideoType:  coerce.String(m["video_type"]),
		VideoURL:   coerce.Media(video),
		YouTubeURL: coerce.String(m["video_youtube"]),
		Quote:      text(m, "quote", d.Quote),
		AuthorName: text(m, "author_name", d.AuthorName),
		AuthorMeta: text(m, "author_meta", d.AuthorMeta),
		Results:    results,
		CTA: coerce.Link(coerce.LinkParams{
			Label:        coerce.String(m["cta_label"]),
			URL:          coerce.String(m["cta_target"]),
			DefaultLabel: d.CTA.Label,
			DefaultURL:   d.CTA.URL,
		}),
	}
}

func buildProcess(m cms.Module, key string) Process {
	d := fallback.Process
	p := Process{
		Key:        key,
		Title:      text(m, "title", d.Title),
		Subtitle:   text(m, "subtitle", d.Subtitle),
		ScrollHint: text(m, "scroll_hint", d.ScrollHint),
		Steps:      d.Steps,
		CTATitle:   text(m, "cta_title", d.CTATitle),
		CTABody:    text(m, "cta_body", d.CTABody),
		Primary: coerce.Link(coerce.LinkParams{
			Label:        coerce.String(m["cta_primary_label"]),
			URL:          coerce.String(m["cta_primary_target"]),
			Link:         m["cta_primary"],
			DefaultLabel: d.Primary.Label,
			DefaultURL:   d.Primary.URL,
		}),
		Secondary: coerce.Link(coerce.LinkParams{
			Label:        coerce.String(m["cta_secondary_label"]),
			URL:          coerce.String(m["cta_secondary_target"]),
			Link:         m["cta_secondary"],
			DefaultLabel: d.Secondary.Label,
			DefaultURL:   d.Secondary.URL,
		}),
		CTAStats: d.CTAStats,
	}
	if raw := coerce.List(m["steps"]); len(raw) > 0 {
		p.Steps = make([]Step, 0, len(raw))
		for _, entry := range raw {
			step := coerce.Map(entry)
			features := coerce.Strings(step["features"], "feature")
			if features == nil {
				features = []string{}
			}
			p.Steps = append(p.Steps, Step{
				Icon:        stepIcons.resolve(step["icon"]),
				Title:       coerce.String(step["title"]),
				Subtitle:    coerce.String(step["subtitle"]),
				Description: coerce.String(step["description"]),
				Background:  coerce.Media(step["background"]),
				Features:    features,
			})
		}
	}
	if raw := coerce.List(m["cta_stats"]); len(raw) > 0 {
		p.CTAStats = make([]Figure, 0, len(raw))
		for _, entry := range raw {
			p.CTAStats = append(p.CTAStats, Figure{
				Value: coerce.Field(entry, "value"),
				Label: coerce.Field(entry, "label"),
			})
		}
	}
	return p
}

func buildTrust(m cms.Module, key string) Trust {
	d := fallback.Trust
	t := Trust{
		Key:             key,
		Title:           text(m, "title", d.Title),
		Subtitle:        text(m, "subtitle", d.Subtitle),
		AdvantagesTitle: text(m, "advantages_title", d.AdvantagesTitle),
		Advantages:      d.Advantages,
		GuaranteesTitle: text(m, "guarantees_title", d.GuaranteesTitle),
		Guarantees:      d.Guarantees,
		StoryTitle:      text(m, "story_title", d.StoryTitle),
		StoryBody:       text(m, "story_body", d.StoryBody),
		TeamImage:       coerce.FirstNonEmpty(coerce.Media(m["team_image"]), d.TeamImage),
		TeamTitle:       text(m, "team_title", d.TeamTitle),
		TeamText:        text(m, "team_text", d.TeamText),
		CTATitle:        text(m, "cta_title", d.CTATitle),
		CTABody:         text(m, "cta_description", d.CTABody),
		CTA: coerce.Link(coerce.LinkParams{
			Label:        coerce.String(m["cta_label"]),
			URL:          coerce.String(m["cta_target"]),
			Link:         m["cta_button"],
			DefaultLabel: d.CTA.Label,
			DefaultURL:   d.CTA.URL,
		}),
	}
	if raw := coerce.List(m["advantages"]); len(raw) > 0 {
		t.Advantages = make([]Advantage, 0, len(raw))
		for _, entry := range raw {
			t.Advantages = append(t.Advantages, Advantage{
				Icon:        advantageIcons.resolve(coerce.Map(entry)["icon"]),
				Title:       coerce.Field(entry, "title"),
				Description: coerce.Field(entry, "description"),
			})
		}
	}
	if g := coerce.Strings(m["guarantees"], "guarantee"); g != nil {
		t.Guarantees = g
	}
	return t
}

func buildRequirements(m cms.Module, key string) Requirements {
	d := fallback.Requirements
	r := Requirements{
		Key:              key,
		Title:            text(m, "title", d.Title),
		Subtitle:         text(m, "subtitle", d.Subtitle),
		Groups:           d.Groups,
		NoticeTitle:      text(m, "notice_title", d.NoticeTitle),
		NoticeLeftTitle:  text(m, "notice_left_title", d.NoticeLeftTitle),
		NoticeLeftBody:   text(m, "notice_left_body", d.NoticeLeftBody),
		NoticeRightTitle: text(m, "notice_right_title", d.NoticeRightTitle),
		NoticeRightBody:  text(m, "notice_right_body", d.NoticeRightBody),
		NoticeSummary:    text(m, "notice_summary", d.NoticeSummary),
		CTATitle:         text(m, "cta_title", d.CTATitle),
		// cta_target doubles as the link field: editors may store either a
		// bare URL or a link object there.
		CTA: coerce.Link(coerce.LinkParams{
			Label:        coerce.String(m["cta_label"]),
			URL:          coerce.String(m["cta_target"]),
			Link:         m["cta_target"],
			DefaultLabel: d.CTA.Label,
			DefaultURL:   d.CTA.URL,
		}),
	}
	if raw := coerce.List(m["requirements"]); len(raw) > 0 {
		r.Groups = make([]RequirementGroup, 0, len(raw))
		for _, entry := range raw {
			group := coerce.Map(entry)
			items := coerce.Strings(group["items"], "item")
			if items == nil {
				items = []string{}
			}
			r.Groups = append(r.Groups, RequirementGroup{
				Icon:  requirementIcons.resolve(group["icon"]),
				Title: coerce.String(group["title"]),
				Items: items,
			})
		}
	}
	return r
}

func buildContact(m cms.Module, key string) Contact {
	d := fallback.Contact
	c := Contact{
		Key:              key,
		Title:            text(m, "title", d.Title),
		Subtitle:         text(m, "subtitle", d.Subtitle),
		WhatsApp:         text(m, "whatsapp", d.WhatsApp),
		Email:            text(m, "email", d.Email),
		Phone:            text(m, "phone", d.Phone),
		HoursGuarantee:   text(m, "hours_guarantee", d.HoursGuarantee),
		PrivacyNoteTitle: text(m, "privacy_note_title", d.PrivacyNoteTitle),
		PrivacyNote:      text(m, "privacy_note", d.PrivacyNote),
	}
	c.WhatsAppURL = WhatsAppURL(c.WhatsApp)

	items, hoursText := coerce.TextOrList(m["hours"])
	switch {
	case len(items) > 0:
		c.Hours = make([]Hours, 0, len(items))
		for _, entry := range items {
			if line, ok := entry.(string); ok {
				c.Hours = append(c.Hours, Hours{Day: line})
				continue
			}
			c.Hours = append(c.Hours, Hours{
				Day:  coerce.Field(entry, "dia"),
				Time: coerce.Field(entry, "hora"),
			})
		}
	case hoursText != "":
		c.HoursText = hoursText
	default:
		c.Hours = d.Hours
	}
	return c
}

func buildFAQ(m cms.Module, key string) FAQ {
	d := fallback.FAQ
	f := FAQ{
		Key:      key,
		Title:    text(m, "title", d.Title),
		Subtitle: text(m, "subtitle", d.Subtitle),
		Items:    d.Items,
		CTATitle: text(m, "cta_titulo", d.CTATitle),
		CTABody:  text(m, "cta_description", d.CTABody),
		CTA: coerce.Link(coerce.LinkParams{
			Label:        coerce.String(m["cta_label"]),
			URL:          coerce.String(m["cta_target"]),
			Link:         m["cta_button"],
			DefaultLabel: d.CTA.Label,
			DefaultURL:   d.CTA.URL,
		}),
	}
	whatsapp := m["whatsapp_url"]
	waURL, _ := whatsapp.(string)
	f.WhatsApp = coerce.Link(coerce.LinkParams{
		URL:          waURL,
		Link:         whatsapp,
		DefaultLabel: d.WhatsApp.Label,
		DefaultURL:   d.WhatsApp.URL,
	})
	if f.WhatsApp.Target == "" {
		f.WhatsApp.Target = "_blank"
	}
	if raw := coerce.List(m["faqs"]); len(raw) > 0 {
		f.Items = make([]Question, 0, len(raw))
		for _, entry := range raw {
			if q, ok := entry.(string); ok {
				f.Items = append(f.Items, Question{Question: q})
				continue
			}
			f.Items = append(f.Items, Question{
				Question: coerce.Field(entry, "question"),
				Answer:   coerce.Field(entry, "answer"),
			})
		}
	}
	return f
}
