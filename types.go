package landing

import "github.com/nomasarriendo/landing/views"

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta = views.PageMeta
