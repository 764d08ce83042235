package cms

import (
	"sort"

	"github.com/nomasarriendo/landing/coerce"
)

// MenuItem is one navigation entry as published by the menus endpoint.
type MenuItem struct {
	ID     int     `json:"id" yaml:"id"`
	Title  string  `json:"title" yaml:"title"`
	URL    string  `json:"url" yaml:"url"`
	Parent int     `json:"parent" yaml:"parent"`
	Order  float64 `json:"order" yaml:"order"`
	Target string  `json:"target" yaml:"target"`
}

// Menus holds the header and footer navigation. Both slices are non-nil.
type Menus struct {
	Header []MenuItem `json:"header" yaml:"header"`
	Footer []MenuItem `json:"footer" yaml:"footer"`
}

func emptyMenus() Menus {
	return Menus{Header: []MenuItem{}, Footer: []MenuItem{}}
}

// SortMenu returns a copy of items ordered by ascending Order. Items with the
// same Order keep their fetch order.
func SortMenu(items []MenuItem) []MenuItem {
	out := make([]MenuItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

func decodeMenu(v any) []MenuItem {
	raw := coerce.List(v)
	items := make([]MenuItem, 0, len(raw))
	for _, entry := range raw {
		m := coerce.Map(entry)
		if m == nil {
			continue
		}
		items = append(items, MenuItem{
			ID:     coerce.Int(m["id"]),
			Title:  coerce.String(m["title"]),
			URL:    coerce.String(m["url"]),
			Parent: coerce.Int(m["parent"]),
			Order:  coerce.Float(m["order"]),
			Target: coerce.String(m["target"]),
		})
	}
	return items
}

// SiteOptions is the flat site-wide options document. A missing key reads as
// the zero value; the map is never nil when returned by Client.
type SiteOptions map[string]any

// Value returns the raw option value, or nil.
func (o SiteOptions) Value(key string) any {
	if o == nil {
		return nil
	}
	return o[key]
}

// String returns the option coerced to text.
func (o SiteOptions) String(key string) string {
	return coerce.String(o.Value(key))
}

// Has reports whether the option is present and non-null.
func (o SiteOptions) Has(key string) bool {
	return o.Value(key) != nil
}

// Module is one entry of the front page's flexible-content list. Only the
// layout tag is structured; every other field is kind specific.
type Module map[string]any

// Layout returns the module's layout tag. The content source publishes it as
// acf_fc_layout; a plain layout key is accepted when that is absent.
func (m Module) Layout() string {
	if m == nil {
		return ""
	}
	if v, ok := m["acf_fc_layout"].(string); ok {
		return v
	}
	if v, ok := m["layout"].(string); ok {
		return v
	}
	return ""
}

// LandingData is everything the landing page needs from the content source.
type LandingData struct {
	Menus   Menus       `json:"menus" yaml:"menus"`
	Options SiteOptions `json:"options" yaml:"options"`
	Modules []Module    `json:"modules" yaml:"modules"`
}
