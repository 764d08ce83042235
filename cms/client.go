// Package cms fetches the landing page content from the WordPress content API.
//
// Each resource degrades independently: a failed request is logged and
// replaced by an empty value, so callers never handle content errors.
package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nomasarriendo/landing/coerce"
)

const (
	DefaultAPIBase      = "https://wp.nomasarriendo.cl/wp-json"
	DefaultMenuEndpoint = "https://wp.nomasarriendo.cl/wp-json/nomasarriendo/v1/menus"
	DefaultRevalidate   = 60 * time.Second

	defaultTimeout = 5 * time.Second
)

// Endpoints locates the content resources. Empty fields take the production
// defaults; FrontPage and SiteOptions derive from APIBase.
type Endpoints struct {
	APIBase     string `mapstructure:"wp_api_base" yaml:"wp_api_base"`
	Menus       string `mapstructure:"wp_menu_endpoint" yaml:"wp_menu_endpoint"`
	FrontPage   string `mapstructure:"wp_front_page_endpoint" yaml:"wp_front_page_endpoint"`
	SiteOptions string `mapstructure:"wp_site_options_endpoint" yaml:"wp_site_options_endpoint"`
}

func (e Endpoints) withDefaults() Endpoints {
	e.APIBase = strings.TrimRight(coerce.FirstNonEmpty(strings.TrimSpace(e.APIBase), DefaultAPIBase), "/")
	if strings.TrimSpace(e.Menus) == "" {
		e.Menus = DefaultMenuEndpoint
	}
	if strings.TrimSpace(e.FrontPage) == "" {
		e.FrontPage = e.APIBase + "/nomasarriendo/v1/front-page"
	}
	if strings.TrimSpace(e.SiteOptions) == "" {
		e.SiteOptions = e.APIBase + "/nomasarriendo/v1/site-options"
	}
	return e
}

// PageURL returns the page-content resource for a front page id.
func (e Endpoints) PageURL(id int) string {
	return fmt.Sprintf("%s/wp/v2/pages/%d?acf_format=standard", e.APIBase, id)
}

// Client issues content requests against the configured endpoints.
type Client struct {
	endpoints Endpoints
	http      *resty.Client
	log       *zap.Logger
	cache     *ResponseCache
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for fetch warnings.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithHTTPClient replaces the underlying resty client.
func WithHTTPClient(h *resty.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithRevalidate sets how long successful responses are reused. Zero or a
// negative duration disables reuse.
func WithRevalidate(d time.Duration) Option {
	return func(c *Client) {
		c.cache = NewResponseCache(d)
	}
}

// NewClient constructs a content client.
func NewClient(endpoints Endpoints, opts ...Option) *Client {
	c := &Client{
		endpoints: endpoints.withDefaults(),
		http:      resty.New().SetTimeout(defaultTimeout),
		log:       zap.NewNop(),
		cache:     NewResponseCache(DefaultRevalidate),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoints returns the resolved endpoints.
func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}

// Invalidate drops every cached response.
func (c *Client) Invalidate() {
	c.cache.Invalidate()
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	if body, ok := c.cache.Get(url); ok {
		return json.Unmarshal(body, out)
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(url)
	if err != nil {
		return fmt.Errorf("cms: request %s: %w", url, err)
	}
	if code := resp.StatusCode(); code < 200 || code > 299 {
		return fmt.Errorf("cms: request failed: %d %s", code, url)
	}
	body := resp.Body()
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("cms: decode %s: %w", url, err)
	}
	c.cache.Store(url, body)
	return nil
}

// Menus returns the header and footer menus, or two empty menus when the
// resource cannot be loaded.
func (c *Client) Menus(ctx context.Context) Menus {
	var raw map[string]any
	if err := c.getJSON(ctx, c.endpoints.Menus, &raw); err != nil {
		c.log.Warn("Failed to load menus", zap.String("url", c.endpoints.Menus), zap.Error(err))
		return emptyMenus()
	}
	return Menus{
		Header: decodeMenu(raw["header"]),
		Footer: decodeMenu(raw["footer"]),
	}
}

// SiteOptions returns the site-wide options, or an empty mapping when the
// resource cannot be loaded or is not an object.
func (c *Client) SiteOptions(ctx context.Context) SiteOptions {
	var raw any
	if err := c.getJSON(ctx, c.endpoints.SiteOptions, &raw); err != nil {
		c.log.Warn("Failed to load site options", zap.String("url", c.endpoints.SiteOptions), zap.Error(err))
		return SiteOptions{}
	}
	switch t := raw.(type) {
	case map[string]any:
		return SiteOptions(t)
	case nil:
		return SiteOptions{}
	default:
		c.log.Warn("Unexpected site options document", zap.String("url", c.endpoints.SiteOptions), zap.String("type", fmt.Sprintf("%T", raw)))
		return SiteOptions{}
	}
}

// FrontPageID resolves the id of the page holding the landing modules. It
// returns 0 when the lookup fails or carries no id.
func (c *Client) FrontPageID(ctx context.Context) int {
	var raw map[string]any
	if err := c.getJSON(ctx, c.endpoints.FrontPage, &raw); err != nil {
		c.log.Warn("Failed to load front page id", zap.String("url", c.endpoints.FrontPage), zap.Error(err))
		return 0
	}
	id := coerce.Int(raw["id"])
	if id == 0 {
		id = coerce.Int(raw["page_id"])
	}
	if id == 0 {
		c.log.Warn("Front page id missing", zap.String("url", c.endpoints.FrontPage))
	}
	return id
}

// LandingModules returns the front page's ordered module list. The page
// fetch only happens once the front page id has resolved; either failure
// yields an empty list.
func (c *Client) LandingModules(ctx context.Context) []Module {
	id := c.FrontPageID(ctx)
	if id == 0 {
		return []Module{}
	}
	pageURL := c.endpoints.PageURL(id)
	var page map[string]any
	if err := c.getJSON(ctx, pageURL, &page); err != nil {
		c.log.Warn("Failed to load landing modules", zap.String("url", pageURL), zap.Error(err))
		return []Module{}
	}
	raw := coerce.List(coerce.Map(page["acf"])["modules"])
	modules := make([]Module, 0, len(raw))
	for _, entry := range raw {
		modules = append(modules, Module(coerce.Map(entry)))
	}
	return modules
}

// LandingData loads menus, options and modules concurrently. Every branch
// absorbs its own failure, so the aggregate always completes with whatever
// succeeded.
func (c *Client) LandingData(ctx context.Context) LandingData {
	var (
		data LandingData
		g    errgroup.Group
	)
	g.Go(func() error {
		data.Menus = c.Menus(ctx)
		return nil
	})
	g.Go(func() error {
		data.Options = c.SiteOptions(ctx)
		return nil
	})
	g.Go(func() error {
		data.Modules = c.LandingModules(ctx)
		return nil
	})
	_ = g.Wait()
	c.log.Debug("Landing data loaded",
		zap.Int("header_items", len(data.Menus.Header)),
		zap.Int("footer_items", len(data.Menus.Footer)),
		zap.Int("options", len(data.Options)),
		zap.Int("modules", len(data.Modules)))
	return data
}
