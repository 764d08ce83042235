package sections

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/nomasarriendo/landing/coerce"
)

// iconSet is the glyph vocabulary of one section kind.
type iconSet struct {
	names    map[string]bool
	fallback string
}

func newIconSet(fallback string, names ...string) iconSet {
	s := iconSet{names: make(map[string]bool, len(names)), fallback: fallback}
	for _, n := range names {
		s.names[n] = true
	}
	return s
}

var (
	statIcons        = newIconSet("users", "users", "calendar", "award", "trendingup")
	stepIcons        = newIconSet("search", "search", "filetext", "calculator", "home", "handheart")
	advantageIcons   = newIconSet("shield", "shield", "users", "award", "trendingup")
	requirementIcons = newIconSet("user", "user", "dollarsign", "heart")
	socialIcons      = newIconSet("facebook", "facebook", "instagram", "linkedin")
)

// resolve reads an icon field. Editors store either a glyph name such as
// "TrendingUp", an uploaded image (URL string or media object), or a list
// whose first element is one of those.
func (s iconSet) resolve(v any) Icon {
	if l := coerce.List(v); len(l) > 0 {
		v = l[0]
	}
	if name, ok := v.(string); ok && !looksLikeURL(name) {
		key := strings.ToLower(strings.TrimSpace(name))
		if s.names[key] {
			return Icon{Name: key}
		}
		return Icon{Name: s.fallback}
	}
	return Icon{Name: s.fallback, URL: coerce.Media(v)}
}

func looksLikeURL(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, ".")
}

// YouTubeEmbedURL converts a youtu.be, watch or embed link into an
// autoplaying embed URL. Anything else yields "".
func YouTubeEmbedURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	switch {
	case strings.Contains(host, "youtu.be"):
		id := strings.TrimPrefix(u.Path, "/")
		if id == "" {
			return ""
		}
		return "https://www.youtube.com/embed/" + id + "?autoplay=1"
	case strings.Contains(host, "youtube.com"):
		if id := u.Query().Get("v"); id != "" {
			return "https://www.youtube.com/embed/" + id + "?autoplay=1"
		}
		if strings.HasPrefix(u.Path, "/embed/") {
			return "https://www.youtube.com" + u.Path + "?autoplay=1"
		}
	}
	return ""
}

var nonDigits = regexp.MustCompile(`\D`)

// WhatsAppURL returns a chat link for a WhatsApp number. A value that is
// already an http(s) URL is returned unchanged.
func WhatsAppURL(number string) string {
	n := strings.TrimSpace(number)
	if strings.HasPrefix(n, "https://") || strings.HasPrefix(n, "http://") {
		return n
	}
	digits := nonDigits.ReplaceAllString(n, "")
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits
}
