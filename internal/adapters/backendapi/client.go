package backendapi

// Package backendapi is the shared HTTP client for the hosted backend's auth and data
// REST APIs. It attaches the project API key, sends bearer tokens through an oauth2
// transport and turns error bodies into application errors.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	apperrors "github.com/sentinellock/sentinel-web/internal/errors"
)

const maxResponseBodyBytes = 1 << 20

// Config holds connection settings for the backend.
type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration // default 15s when zero
	HTTPClient *http.Client  // Optional; its Transport is reused as the base transport
}

// Client issues requests against the backend.
// It is safe for concurrent use.
type Client struct {
	baseURL *url.URL
	apiKey  string
	base    http.RoundTripper
	timeout time.Duration
	tokens  oauth2.TokenSource
	http    *http.Client
}

// Request describes one backend call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   any
}

// New constructs a Client. Requests authenticate with the API key until WithTokenSource
// supplies user tokens.
func New(cfg Config) (*Client, error) {
	raw := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if raw == "" {
		return nil, errors.New("backend base URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend base URL %q", cfg.BaseURL)
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("backend API key is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	base := http.DefaultTransport
	if cfg.HTTPClient != nil && cfg.HTTPClient.Transport != nil {
		base = cfg.HTTPClient.Transport
	}

	c := &Client{
		baseURL: u,
		apiKey:  strings.TrimSpace(cfg.APIKey),
		base:    base,
		timeout: timeout,
	}
	return c.WithTokenSource(nil), nil
}

// WithTokenSource returns a copy of the client that sends bearer tokens from ts.
// A nil ts falls back to the API key.
func (c *Client) WithTokenSource(ts oauth2.TokenSource) *Client {
	cp := *c
	if ts == nil {
		ts = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.apiKey, TokenType: "Bearer"})
	}
	cp.tokens = ts
	cp.http = &http.Client{
		Timeout:   c.timeout,
		Transport: &oauth2.Transport{Source: ts, Base: c.base},
	}
	return &cp
}

// APIKey returns the project key sent with every request.
func (c *Client) APIKey() string { return c.apiKey }

// URL resolves path and query against the base URL.
func (c *Client) URL(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	u.RawQuery = query.Encode()
	return u.String()
}

// Do sends req and decodes a successful JSON body into out when out is non-nil.
// Non-2xx responses become *apperrors.AppError wrapping an *APIError.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return fromRetrieveError(retrieveErr)
		}
		return apperrors.Unavailable(err, "backend unreachable")
	}

	body, readErr := readBody(resp.Body)
	if closeErr := resp.Body.Close(); readErr == nil && closeErr != nil {
		readErr = closeErr
	}
	if readErr != nil {
		return apperrors.Unavailable(readErr, "read backend response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return FromResponse(resp.StatusCode, body)
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "decode backend response")
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode backend request")
		}
		body = bytes.NewReader(payload)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, c.URL(req.Path, req.Query), body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build backend request")
	}
	for k, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("apikey", c.apiKey)
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	return httpReq, nil
}

func readBody(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxResponseBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxResponseBodyBytes {
		if _, drainErr := io.Copy(io.Discard, r); drainErr != nil {
			return nil, drainErr
		}
		data = data[:maxResponseBodyBytes]
	}
	return data, nil
}
