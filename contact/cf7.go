package contact

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// DefaultCF7Endpoint is the Contact Form 7 feedback endpoint of the landing
// form.
const DefaultCF7Endpoint = "https://wp.nomasarriendo.cl/wp-json/contact-form-7/v1/contact-forms/164/feedback"

const mailSent = "mail_sent"

// Submitter delivers a validated form with its challenge token. It never
// returns an error: every failure maps to an Outcome carrying the user-facing
// message.
type Submitter interface {
	Submit(ctx context.Context, f Form, token string) Outcome
}

// CF7Client posts forms to a Contact Form 7 feedback endpoint. It does not
// retry.
type CF7Client struct {
	endpoint string
	http     *resty.Client
	log      *zap.Logger
}

type CF7Option func(*CF7Client)

func WithCF7HTTPClient(h *resty.Client) CF7Option {
	return func(c *CF7Client) {
		if h != nil {
			c.http = h
		}
	}
}

func WithCF7Logger(l *zap.Logger) CF7Option {
	return func(c *CF7Client) {
		if l != nil {
			c.log = l
		}
	}
}

// NewCF7Client creates a client for endpoint, or DefaultCF7Endpoint when it is
// empty.
func NewCF7Client(endpoint string, opts ...CF7Option) *CF7Client {
	if endpoint == "" {
		endpoint = DefaultCF7Endpoint
	}
	c := &CF7Client{
		endpoint: endpoint,
		http:     resty.New().SetTimeout(10 * time.Second),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type cf7Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Submit posts f as multipart form data.
func (c *CF7Client) Submit(ctx context.Context, f Form, token string) Outcome {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetMultipartFormData(f.Fields(token)).
		Post(c.endpoint)
	if err != nil {
		c.log.Warn("Contact submission failed", zap.String("url", c.endpoint), zap.Error(err))
		return Outcome{Message: MsgFailure}
	}
	if !resp.IsSuccess() {
		c.log.Warn("Contact submission rejected",
			zap.String("url", c.endpoint),
			zap.Int("status", resp.StatusCode()),
			zap.ByteString("body", resp.Body()))
		return Outcome{Message: MsgFailure}
	}
	var body cf7Response
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		c.log.Warn("Contact submission returned malformed JSON", zap.String("url", c.endpoint), zap.Error(err))
		return Outcome{Message: MsgFailure}
	}
	if body.Status == mailSent {
		return Outcome{Success: true, Message: MsgSuccess}
	}
	c.log.Info("Contact submission not accepted", zap.String("status", body.Status))
	if body.Message != "" {
		return Outcome{Message: body.Message}
	}
	return Outcome{Message: MsgFailure}
}
