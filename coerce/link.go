package coerce

// LinkParams describes a link-bearing field. Label and URL are the flat
// label/target pair some layouts carry; Link is the raw link value, which may
// be absent, a bare URL string, or a {title, url, target} mapping.
type LinkParams struct {
	Label        string
	URL          string
	Link         any
	DefaultLabel string
	DefaultURL   string
}

// ResolvedLink is a render-ready link. Target is empty when the content did
// not specify one.
type ResolvedLink struct {
	Label  string
	URL    string
	Target string
}

// External reports whether the link should open in a new window.
func (l ResolvedLink) External() bool {
	return l.Target == "_blank"
}

// Link resolves p into a ResolvedLink. Empty strings count as absent, so the
// result carries a non-empty label and URL whenever the defaults are non-empty.
func Link(p LinkParams) ResolvedLink {
	fallback := ResolvedLink{
		Label: FirstNonEmpty(p.Label, p.DefaultLabel),
		URL:   FirstNonEmpty(p.URL, p.DefaultURL),
	}
	switch t := p.Link.(type) {
	case string:
		if t != "" {
			fallback.URL = t
		}
		return fallback
	case map[string]any:
		return ResolvedLink{
			Label:  FirstNonEmpty(String(t["title"]), fallback.Label),
			URL:    FirstNonEmpty(String(t["url"]), fallback.URL),
			Target: String(t["target"]),
		}
	default:
		return fallback
	}
}
