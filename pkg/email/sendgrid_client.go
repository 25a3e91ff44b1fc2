package email

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
)

const defaultAPIHost = "https://api.sendgrid.com"

// Version is the content of one template version.
type Version struct {
	Name    string
	Subject string
	HTML    string
}

// PublishOptions selects how Publish finds the target template.
type PublishOptions struct {
	// Create makes a new dynamic template named after the slug first.
	Create bool
	// TemplateID is the existing template to add a version to.
	TemplateID string
}

// PublishResult identifies what Publish created.
type PublishResult struct {
	TemplateID      string
	VersionID       string
	TemplateCreated bool
}

// SendGridClient manages dynamic templates through the SendGrid v3 API.
// It never retries: every non-2xx reply is returned as *RemoteAPIError.
type SendGridClient struct {
	apiKey string
	host   string
	client *rest.Client
	now    func() time.Time
	logger *slog.Logger
}

// SendGridOption configures SendGridClient.
type SendGridOption func(*SendGridClient)

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(hc *http.Client) SendGridOption {
	return func(c *SendGridClient) {
		if hc != nil {
			c.client = &rest.Client{HTTPClient: hc}
		}
	}
}

// WithClock sets the time source used for version names.
func WithClock(now func() time.Time) SendGridOption {
	return func(c *SendGridClient) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) SendGridOption {
	return func(c *SendGridClient) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewSendGridClient creates a client from cfg. A missing API key is not an
// error here; each call reports ErrMissingCredential before touching the network.
func NewSendGridClient(cfg Config, opts ...SendGridOption) *SendGridClient {
	host := strings.TrimSuffix(cfg.APIHost, "/")
	if host == "" {
		host = defaultAPIHost
	}
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &SendGridClient{
		apiKey: cfg.APIKey,
		host:   host,
		client: &rest.Client{HTTPClient: &http.Client{Timeout: timeout}},
		now:    time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// VersionName is the name given to versions created for slug at t.
func VersionName(slug string, t time.Time) string {
	return slug + " " + t.UTC().Format(time.RFC3339)
}

// CreateTemplate creates a dynamic template and returns its id.
func (c *SendGridClient) CreateTemplate(ctx context.Context, name string) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	err := c.do(ctx, rest.Post, "/v3/templates", map[string]any{
		"name":       name,
		"generation": "dynamic",
	}, &out)
	if err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("%w: template id missing", ErrUnexpectedReply)
	}
	c.logger.InfoContext(ctx, "template created", slog.String("template_id", out.ID), slog.String("name", name))
	return out.ID, nil
}

// CreateVersion adds a version to templateID and makes it active.
func (c *SendGridClient) CreateVersion(ctx context.Context, templateID string, v Version) (string, error) {
	if templateID == "" {
		return "", ErrMissingTemplateID
	}

	var out struct {
		ID string `json:"id"`
	}
	err := c.do(ctx, rest.Post, "/v3/templates/"+templateID+"/versions", map[string]any{
		"name":          v.Name,
		"subject":       v.Subject,
		"html_content":  v.HTML,
		"plain_content": "",
		"active":        1,
	}, &out)
	if err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("%w: version id missing", ErrUnexpectedReply)
	}
	c.logger.InfoContext(ctx, "version created",
		slog.String("template_id", templateID),
		slog.String("version_id", out.ID),
	)
	return out.ID, nil
}

// UpdateVersion replaces subject and content of an existing version.
// templateID may be empty, in which case the version-only path is used.
func (c *SendGridClient) UpdateVersion(ctx context.Context, templateID, versionID string, v Version) error {
	if versionID == "" {
		return ErrMissingVersionID
	}

	endpoint := "/v3/templates/versions/" + versionID
	if templateID != "" {
		endpoint = "/v3/templates/" + templateID + "/versions/" + versionID
	}

	body := map[string]any{
		"subject":       v.Subject,
		"html_content":  v.HTML,
		"plain_content": "",
	}
	if v.Name != "" {
		body["name"] = v.Name
	}
	if err := c.do(ctx, rest.Patch, endpoint, body, nil); err != nil {
		return err
	}
	c.logger.InfoContext(ctx, "version updated", slog.String("version_id", versionID))
	return nil
}

// Publish creates a new active version of slug's template, creating the
// template first when opts.Create is set.
func (c *SendGridClient) Publish(ctx context.Context, slug string, opts PublishOptions, html, subject string) (PublishResult, error) {
	if c.apiKey == "" {
		return PublishResult{}, ErrMissingCredential
	}

	res := PublishResult{TemplateID: opts.TemplateID}
	if opts.Create {
		id, err := c.CreateTemplate(ctx, slug)
		if err != nil {
			return res, err
		}
		res.TemplateID = id
		res.TemplateCreated = true
	}
	if res.TemplateID == "" {
		return res, fmt.Errorf("%w: provide a template id or create one", ErrMissingTemplateID)
	}

	versionID, err := c.CreateVersion(ctx, res.TemplateID, Version{
		Name:    VersionName(slug, c.now()),
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return res, err
	}
	res.VersionID = versionID
	return res, nil
}

func (c *SendGridClient) do(ctx context.Context, method rest.Method, endpoint string, body any, out any) error {
	if c.apiKey == "" {
		return ErrMissingCredential
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("email: encode request: %w", err)
	}

	req := sendgrid.GetRequest(c.apiKey, endpoint, c.host)
	req.Method = method
	req.Body = payload
	req.Headers["Content-Type"] = "application/json"

	resp, err := c.client.SendWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("email: %s %s: %w", method, endpoint, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RemoteAPIError{StatusCode: resp.StatusCode, Body: resp.Body}
	}

	if out == nil || strings.TrimSpace(resp.Body) == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(resp.Body), out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedReply, err)
	}
	return nil
}
