package sections

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomasarriendo/landing/cms"
)

func kinds(sections []Section) []string {
	out := make([]string, 0, len(sections))
	for _, s := range sections {
		out = append(out, s.Kind())
	}
	return out
}

func TestBuildEmptyYieldsDefaultPage(t *testing.T) {
	for _, modules := range [][]cms.Module{nil, {}} {
		got := Build(modules)
		if diff := cmp.Diff(DefaultOrder, kinds(got)); diff != "" {
			t.Fatalf("default page order mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestDefaultPageIsFullyPopulated(t *testing.T) {
	for _, s := range Defaults() {
		switch v := s.(type) {
		case Hero:
			assert.NotEmpty(t, v.Title)
			assert.Equal(t, "#contacto", v.Primary.URL)
			assert.NotEmpty(t, v.BackgroundImage)
		case Stats:
			assert.Len(t, v.Items, 4)
		case Testimonial:
			assert.Len(t, v.Results, 3)
			assert.False(t, v.HasVideo())
		case Process:
			assert.Len(t, v.Steps, 5)
			assert.Len(t, v.CTAStats, 3)
			assert.Equal(t, "#caso-exito", v.Secondary.URL)
		case Trust:
			assert.Len(t, v.Advantages, 4)
			assert.Len(t, v.Guarantees, 3)
			assert.Contains(t, v.StoryBody, "\n\n")
		case Requirements:
			assert.Len(t, v.Groups, 3)
			assert.Equal(t, "Importante: Lo que NO somos", v.NoticeTitle)
		case Contact:
			assert.Equal(t, "https://wa.me/56912345678", v.WhatsAppURL)
			assert.Len(t, v.Hours, 3)
			assert.Empty(t, v.HoursText)
		case FAQ:
			assert.Len(t, v.Items, 6)
			assert.Equal(t, "https://wa.me/56912345678", v.WhatsApp.URL)
			assert.Equal(t, "_blank", v.WhatsApp.Target)
		default:
			t.Fatalf("unexpected section %T", s)
		}
	}
}

func TestDispatchStatsUsesProvidedItems(t *testing.T) {
	m := cms.Module{
		"layout": "stats",
		"items": []any{
			map[string]any{"number": "+200", "label": "Familias", "description": "d", "icon": "Calendar"},
			map[string]any{"number": 3.0, "icon": map[string]any{"url": "https://cdn.test/i.svg"}},
		},
	}
	s, ok := Dispatch(m, 1).(Stats)
	require.True(t, ok)
	want := Stats{
		Key: "stats-1",
		Items: []Stat{
			{Icon: Icon{Name: "calendar"}, Number: "+200", Label: "Familias", Description: "d"},
			{Icon: Icon{Name: "users", URL: "https://cdn.test/i.svg"}, Number: "3"},
		},
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildDropsUnknownLayouts(t *testing.T) {
	var dropped []string
	got := Build([]cms.Module{
		{"acf_fc_layout": "hero"},
		{"acf_fc_layout": "unknown_kind"},
		{"acf_fc_layout": "Hero"},
		{"acf_fc_layout": "faq"},
	}, WithDiagnostics(func(index int, layout string) {
		dropped = append(dropped, layout)
	}))
	assert.Equal(t, []string{LayoutHero, LayoutFAQ}, kinds(got))
	assert.Equal(t, []string{"unknown_kind", "Hero"}, dropped)
	assert.Equal(t, "faq-3", got[1].SectionKey())
}

func TestBuildAllUnknownRendersNothing(t *testing.T) {
	got := Build([]cms.Module{{"acf_fc_layout": "banner"}})
	assert.Empty(t, got)
}

func TestBuildAllowsDuplicateLayouts(t *testing.T) {
	got := Build([]cms.Module{
		{"acf_fc_layout": "hero", "title": "Uno"},
		{"acf_fc_layout": "hero", "title": "Dos"},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "Uno", got[0].(Hero).Title)
	assert.Equal(t, "Dos", got[1].(Hero).Title)
	assert.Equal(t, "hero-0", got[0].SectionKey())
	assert.Equal(t, "hero-1", got[1].SectionKey())
}

func TestDispatchFieldsDefaultIndependently(t *testing.T) {
	h := Dispatch(cms.Module{
		"acf_fc_layout":      "hero",
		"subtitle":           "Propio",
		"cta_primary_target": "https://wa.me/1",
		"title":              "",
	}, 0).(Hero)
	assert.Equal(t, fallback.Hero.Title, h.Title)
	assert.Equal(t, "Propio", h.Subtitle)
	assert.Equal(t, Link{Label: "Analicemos tu caso", URL: "https://wa.me/1"}, h.Primary)
	assert.Equal(t, fallback.Hero.Secondary, h.Secondary)
}

func TestDispatchTestimonial(t *testing.T) {
	s := Dispatch(cms.Module{
		"acf_fc_layout": "success_story",
		"video_type":    "youtube",
		"video_youtube": "https://youtu.be/abc123",
		"video_url":     map[string]any{"url": "https://cdn.test/v.mp4"},
		"results":       []any{"uno", map[string]any{"result": "dos"}},
		"image":         map[string]any{"url": "https://cdn.test/a.jpg"},
	}, 2).(Testimonial)

	assert.Equal(t, "success-2", s.Key)
	assert.Equal(t, "https://cdn.test/v.mp4", s.VideoURL)
	assert.Equal(t, "https://www.youtube.com/embed/abc123?autoplay=1", s.EmbedURL())
	assert.True(t, s.PlaysYouTube())
	assert.Equal(t, []string{"uno", "dos"}, s.Results)
	assert.Equal(t, "https://cdn.test/a.jpg", s.Image)
	assert.Equal(t, "Ver más casos de éxito", s.CTA.Label)
	assert.Empty(t, s.CTA.URL)
}

func TestDispatchTestimonialVideoPrecedence(t *testing.T) {
	s := Dispatch(cms.Module{
		"acf_fc_layout": "success_story",
		"video":         "https://cdn.test/primary.mp4",
		"video_url":     "https://cdn.test/secondary.mp4",
	}, 0).(Testimonial)
	assert.Equal(t, "https://cdn.test/primary.mp4", s.VideoURL)
	assert.False(t, s.PlaysYouTube())
	assert.True(t, s.HasVideo())
}

func TestDispatchProcess(t *testing.T) {
	p := Dispatch(cms.Module{
		"acf_fc_layout": "process",
		"steps": []any{
			map[string]any{
				"title":      "Paso",
				"icon":       []any{map[string]any{"url": "https://cdn.test/s.png"}},
				"background": map[string]any{"url": "https://cdn.test/bg.jpg"},
				"features":   []any{"a", map[string]any{"feature": "b"}},
			},
			map[string]any{"title": "Otro", "icon": "Calculator"},
		},
		"cta_primary":   map[string]any{"title": "Empezar", "url": "https://x.test", "target": "_blank"},
		"cta_secondary": "https://y.test",
		"cta_stats":     []any{map[string]any{"value": "1", "label": "uno"}},
	}, 0).(Process)

	require.Len(t, p.Steps, 2)
	assert.Equal(t, Icon{Name: "search", URL: "https://cdn.test/s.png"}, p.Steps[0].Icon)
	assert.Equal(t, "https://cdn.test/bg.jpg", p.Steps[0].Background)
	assert.Equal(t, []string{"a", "b"}, p.Steps[0].Features)
	assert.Equal(t, Icon{Name: "calculator"}, p.Steps[1].Icon)
	assert.NotNil(t, p.Steps[1].Features)
	assert.Empty(t, p.Steps[1].Features)
	assert.Equal(t, Link{Label: "Empezar", URL: "https://x.test", Target: "_blank"}, p.Primary)
	assert.Equal(t, Link{Label: "Ver casos de éxito", URL: "https://y.test"}, p.Secondary)
	assert.Equal(t, []Figure{{Value: "1", Label: "uno"}}, p.CTAStats)
	assert.Equal(t, fallback.Process.Title, p.Title)
}

func TestDispatchTrust(t *testing.T) {
	tr := Dispatch(cms.Module{
		"acf_fc_layout":   "why_trust",
		"advantages":      []any{map[string]any{"title": "A", "icon": "Unknown"}},
		"guarantees":      []any{map[string]any{"guarantee": "G"}},
		"cta_description": "Cuerpo",
		"cta_button":      map[string]any{"url": "/agenda"},
	}, 4).(Trust)

	assert.Equal(t, "why-trust-4", tr.Key)
	assert.Equal(t, []Advantage{{Title: "A", Icon: Icon{Name: "shield"}}}, tr.Advantages)
	assert.Equal(t, []string{"G"}, tr.Guarantees)
	assert.Equal(t, "Cuerpo", tr.CTABody)
	assert.Equal(t, Link{Label: "Agendar reunión", URL: "/agenda"}, tr.CTA)
}

func TestDispatchRequirementsLinkInTarget(t *testing.T) {
	r := Dispatch(cms.Module{
		"acf_fc_layout": "what_we_look_for",
		"cta_target":    map[string]any{"title": "Evaluar", "url": "/evaluar"},
		"requirements": []any{
			map[string]any{"title": "Perfil", "icon": "Heart", "items": []any{map[string]any{"item": "x"}, "y"}},
		},
	}, 0).(Requirements)

	assert.Equal(t, Link{Label: "Evaluar", URL: "/evaluar"}, r.CTA)
	require.Len(t, r.Groups, 1)
	assert.Equal(t, RequirementGroup{Title: "Perfil", Icon: Icon{Name: "heart"}, Items: []string{"x", "y"}}, r.Groups[0])
}

func TestDispatchContactHours(t *testing.T) {
	tests := []struct {
		name      string
		hours     any
		wantHours []Hours
		wantText  string
	}{
		{
			name:      "list",
			hours:     []any{map[string]any{"dia": "Lunes", "hora": "9-18"}},
			wantHours: []Hours{{Day: "Lunes", Time: "9-18"}},
		},
		{
			name:  "list of strings",
			hours: []any{"Lunes a viernes: 9 a 18", map[string]any{"dia": "Sábado", "hora": "10-14"}},
			wantHours: []Hours{
				{Day: "Lunes a viernes: 9 a 18"},
				{Day: "Sábado", Time: "10-14"},
			},
		},
		{
			name:     "text",
			hours:    "Lunes a viernes, 9 a 18",
			wantText: "Lunes a viernes, 9 a 18",
		},
		{
			name:      "missing",
			hours:     nil,
			wantHours: fallback.Contact.Hours,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Dispatch(cms.Module{"acf_fc_layout": "contact", "hours": tt.hours}, 0).(Contact)
			assert.Equal(t, tt.wantHours, c.Hours)
			assert.Equal(t, tt.wantText, c.HoursText)
		})
	}
}

func TestDispatchContactWhatsApp(t *testing.T) {
	c := Dispatch(cms.Module{"acf_fc_layout": "contact", "whatsapp": "+56 9 8765 4321"}, 0).(Contact)
	assert.Equal(t, "+56 9 8765 4321", c.WhatsApp)
	assert.Equal(t, "https://wa.me/56987654321", c.WhatsAppURL)
}

func TestDispatchFAQ(t *testing.T) {
	f := Dispatch(cms.Module{
		"acf_fc_layout": "faq",
		"faqs":          []any{"¿Solo pregunta?", map[string]any{"question": "Q", "answer": "A"}},
		"cta_titulo":    "¿Dudas?",
		"whatsapp_url":  map[string]any{"title": "Escríbenos", "url": "https://wa.me/1", "target": "_self"},
	}, 7).(FAQ)

	assert.Equal(t, []Question{{Question: "¿Solo pregunta?"}, {Question: "Q", Answer: "A"}}, f.Items)
	assert.Equal(t, "¿Dudas?", f.CTATitle)
	assert.Equal(t, Link{Label: "Escríbenos", URL: "https://wa.me/1", Target: "_self"}, f.WhatsApp)

	plain := Dispatch(cms.Module{"acf_fc_layout": "faq", "whatsapp_url": "https://wa.me/2"}, 0).(FAQ)
	assert.Equal(t, Link{Label: "WhatsApp directo", URL: "https://wa.me/2", Target: "_blank"}, plain.WhatsApp)
}

func TestDispatchIgnoresWrongTypedFields(t *testing.T) {
	s := Dispatch(cms.Module{
		"acf_fc_layout": "process",
		"title":         map[string]any{"nested": true},
		"steps":         "not a list",
		"cta_stats":     42.0,
	}, 0).(Process)
	assert.Equal(t, fallback.Process.Title, s.Title)
	assert.Equal(t, fallback.Process.Steps, s.Steps)
	assert.Equal(t, fallback.Process.CTAStats, s.CTAStats)
}

func TestLoadFallbackRejectsUnknownKeys(t *testing.T) {
	_, err := loadFallback([]byte("hero:\n  headline: x\n"))
	require.Error(t, err)
}

func TestIconResolve(t *testing.T) {
	tests := []struct {
		in   any
		want Icon
	}{
		{"TrendingUp", Icon{Name: "trendingup"}},
		{"nope", Icon{Name: "users"}},
		{"https://cdn.test/x.svg", Icon{Name: "users", URL: "https://cdn.test/x.svg"}},
		{map[string]any{"url": "/i.png"}, Icon{Name: "users", URL: "/i.png"}},
		{[]any{"Award"}, Icon{Name: "award"}},
		{nil, Icon{Name: "users"}},
	}
	for _, tt := range tests {
		if got := statIcons.resolve(tt.in); got != tt.want {
			t.Errorf("resolve(%#v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestYouTubeEmbedURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://youtu.be/abc", "https://www.youtube.com/embed/abc?autoplay=1"},
		{"https://www.youtube.com/watch?v=xyz&t=3", "https://www.youtube.com/embed/xyz?autoplay=1"},
		{"https://www.youtube.com/embed/qq", "https://www.youtube.com/embed/qq?autoplay=1"},
		{"https://vimeo.com/1", ""},
		{"not a url", ""},
		{"https://youtu.be/", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := YouTubeEmbedURL(tt.in); got != tt.want {
			t.Errorf("YouTubeEmbedURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWhatsAppURL(t *testing.T) {
	assert.Equal(t, "https://wa.me/56912345678", WhatsAppURL("+56 9 1234 5678"))
	assert.Equal(t, "https://api.whatsapp.com/send?phone=1", WhatsAppURL("https://api.whatsapp.com/send?phone=1"))
	assert.Equal(t, "", WhatsAppURL("sin número"))
}
