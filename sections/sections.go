// Package sections turns the loosely typed modules published by the content
// source into render-ready section descriptors.
//
// Every descriptor is fully populated: fields missing from the content are
// filled from the fallback copy in defaults.yaml. Descriptors built from the
// fallback copy share its slices, so callers must treat them as read-only.
package sections

import "github.com/nomasarriendo/landing/coerce"

// Layout tags recognized by Dispatch.
const (
	LayoutHero          = "hero"
	LayoutStats         = "stats"
	LayoutSuccessStory  = "success_story"
	LayoutProcess       = "process"
	LayoutWhyTrust      = "why_trust"
	LayoutWhatWeLookFor = "what_we_look_for"
	LayoutContact       = "contact"
	LayoutFAQ           = "faq"
)

// DefaultOrder is the layout sequence of the static fallback page.
var DefaultOrder = []string{
	LayoutHero,
	LayoutStats,
	LayoutSuccessStory,
	LayoutProcess,
	LayoutWhyTrust,
	LayoutWhatWeLookFor,
	LayoutContact,
	LayoutFAQ,
}

// Section is one renderable block of the landing page. The set of
// implementations is closed: Hero, Stats, Testimonial, Process, Trust,
// Requirements, Contact, FAQ and Unrecognized.
type Section interface {
	// SectionKey is a stable rendering key such as "hero-0".
	SectionKey() string
	// Kind is the layout tag the section was built from.
	Kind() string
	section()
}

// Link is a resolved call-to-action or navigation link.
type Link = coerce.ResolvedLink

// Icon is either a named glyph or an uploaded image. URL wins when both are
// set.
type Icon struct {
	Name string `yaml:"name,omitempty"`
	URL  string `yaml:"url,omitempty"`
}

type Hero struct {
	Key             string `yaml:"key,omitempty"`
	Title           string `yaml:"title"`
	Subtitle        string `yaml:"subtitle"`
	Primary         Link   `yaml:"primary"`
	Secondary       Link   `yaml:"secondary"`
	BackgroundVideo string `yaml:"background_video"`
	BackgroundImage string `yaml:"background_image"`
}

type Stat struct {
	Icon        Icon   `yaml:"icon"`
	Number      string `yaml:"number"`
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
}

type Stats struct {
	Key   string `yaml:"key,omitempty"`
	Items []Stat `yaml:"items"`
}

// Testimonial is the success-story section.
type Testimonial struct {
	Key        string   `yaml:"key,omitempty"`
	Title      string   `yaml:"title"`
	Subtitle   string   `yaml:"subtitle"`
	Image      string   `yaml:"image"`
	VideoType  string   `yaml:"video_type,omitempty"`
	VideoURL   string   `yaml:"video_url,omitempty"`
	YouTubeURL string   `yaml:"youtube_url,omitempty"`
	Quote      string   `yaml:"quote"`
	AuthorName string   `yaml:"author_name"`
	AuthorMeta string   `yaml:"author_meta"`
	Results    []string `yaml:"results"`
	CTA        Link     `yaml:"cta"`
}

// EmbedURL returns the autoplaying embed URL for the YouTube video, or "".
func (t Testimonial) EmbedURL() string {
	return YouTubeEmbedURL(t.YouTubeURL)
}

// HasVideo reports whether the section has any playable video.
func (t Testimonial) HasVideo() bool {
	return t.VideoURL != "" || t.EmbedURL() != ""
}

// PlaysYouTube reports whether the video dialog should embed YouTube rather
// than play the uploaded file.
func (t Testimonial) PlaysYouTube() bool {
	return t.VideoType == "youtube" && t.EmbedURL() != ""
}

type Step struct {
	Icon        Icon     `yaml:"icon"`
	Title       string   `yaml:"title"`
	Subtitle    string   `yaml:"subtitle"`
	Description string   `yaml:"description"`
	Background  string   `yaml:"background"`
	Features    []string `yaml:"features"`
}

// Figure is a highlighted value with a caption.
type Figure struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

type Process struct {
	Key        string   `yaml:"key,omitempty"`
	Title      string   `yaml:"title"`
	Subtitle   string   `yaml:"subtitle"`
	ScrollHint string   `yaml:"scroll_hint"`
	Steps      []Step   `yaml:"steps"`
	CTATitle   string   `yaml:"cta_title"`
	CTABody    string   `yaml:"cta_body"`
	Primary    Link     `yaml:"primary"`
	Secondary  Link     `yaml:"secondary"`
	CTAStats   []Figure `yaml:"cta_stats"`
}

type Advantage struct {
	Icon        Icon   `yaml:"icon"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Trust is the why-trust-us section.
type Trust struct {
	Key             string      `yaml:"key,omitempty"`
	Title           string      `yaml:"title"`
	Subtitle        string      `yaml:"subtitle"`
	AdvantagesTitle string      `yaml:"advantages_title"`
	Advantages      []Advantage `yaml:"advantages"`
	GuaranteesTitle string      `yaml:"guarantees_title"`
	Guarantees      []string    `yaml:"guarantees"`
	StoryTitle      string      `yaml:"story_title"`
	StoryBody       string      `yaml:"story_body"`
	TeamImage       string      `yaml:"team_image"`
	TeamTitle       string      `yaml:"team_title"`
	TeamText        string      `yaml:"team_text"`
	CTATitle        string      `yaml:"cta_title"`
	CTABody         string      `yaml:"cta_body"`
	CTA             Link        `yaml:"cta"`
}

type RequirementGroup struct {
	Icon  Icon     `yaml:"icon"`
	Title string   `yaml:"title"`
	Items []string `yaml:"items"`
}

// Requirements is the what-we-look-for section.
type Requirements struct {
	Key              string             `yaml:"key,omitempty"`
	Title            string             `yaml:"title"`
	Subtitle         string             `yaml:"subtitle"`
	Groups           []RequirementGroup `yaml:"groups"`
	NoticeTitle      string             `yaml:"notice_title"`
	NoticeLeftTitle  string             `yaml:"notice_left_title"`
	NoticeLeftBody   string             `yaml:"notice_left_body"`
	NoticeRightTitle string             `yaml:"notice_right_title"`
	NoticeRightBody  string             `yaml:"notice_right_body"`
	NoticeSummary    string             `yaml:"notice_summary"`
	CTATitle         string             `yaml:"cta_title"`
	CTA              Link               `yaml:"cta"`
}

type Hours struct {
	Day  string `yaml:"day"`
	Time string `yaml:"time"`
}

// Contact describes the contact section around the form. Exactly one of
// Hours and HoursText is set.
type Contact struct {
	Key              string  `yaml:"key,omitempty"`
	Title            string  `yaml:"title"`
	Subtitle         string  `yaml:"subtitle"`
	WhatsApp         string  `yaml:"whatsapp"`
	WhatsAppURL      string  `yaml:"whatsapp_url,omitempty"`
	Email            string  `yaml:"email"`
	Phone            string  `yaml:"phone"`
	Hours            []Hours `yaml:"hours,omitempty"`
	HoursText        string  `yaml:"hours_text,omitempty"`
	HoursGuarantee   string  `yaml:"hours_guarantee"`
	PrivacyNoteTitle string  `yaml:"privacy_note_title"`
	PrivacyNote      string  `yaml:"privacy_note"`
}

type Question struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

type FAQ struct {
	Key      string     `yaml:"key,omitempty"`
	Title    string     `yaml:"title"`
	Subtitle string     `yaml:"subtitle"`
	Items    []Question `yaml:"items"`
	CTATitle string     `yaml:"cta_title"`
	CTABody  string     `yaml:"cta_body"`
	CTA      Link       `yaml:"cta"`
	WhatsApp Link       `yaml:"whatsapp"`
}

// Unrecognized is produced for a module whose layout tag is not known. Build
// drops it.
type Unrecognized struct {
	Key    string `yaml:"key,omitempty"`
	Layout string `yaml:"layout"`
}

func (s Hero) SectionKey() string         { return s.Key }
func (s Stats) SectionKey() string        { return s.Key }
func (s Testimonial) SectionKey() string  { return s.Key }
func (s Process) SectionKey() string      { return s.Key }
func (s Trust) SectionKey() string        { return s.Key }
func (s Requirements) SectionKey() string { return s.Key }
func (s Contact) SectionKey() string      { return s.Key }
func (s FAQ) SectionKey() string          { return s.Key }
func (s Unrecognized) SectionKey() string { return s.Key }

func (Hero) Kind() string           { return LayoutHero }
func (Stats) Kind() string          { return LayoutStats }
func (Testimonial) Kind() string    { return LayoutSuccessStory }
func (Process) Kind() string        { return LayoutProcess }
func (Trust) Kind() string          { return LayoutWhyTrust }
func (Requirements) Kind() string   { return LayoutWhatWeLookFor }
func (Contact) Kind() string        { return LayoutContact }
func (FAQ) Kind() string            { return LayoutFAQ }
func (s Unrecognized) Kind() string { return s.Layout }

func (Hero) section()         {}
func (Stats) section()        {}
func (Testimonial) section()  {}
func (Process) section()      {}
func (Trust) section()        {}
func (Requirements) section() {}
func (Contact) section()      {}
func (FAQ) section()          {}
func (Unrecognized) section() {}
