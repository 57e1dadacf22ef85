// Package transport implements the Transport port over net/http with a cookie-based session.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/genie/internal/core/domain"
	"go.trai.ch/genie/internal/core/ports"
	"go.trai.ch/zerr"
)

const tracerName = "go.trai.ch/genie/transport"

// Client implements ports.Transport.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	navigator  ports.Navigator
	logger     ports.Logger
	tracer     trace.Tracer

	// redirectMu makes the login check and redirect one step across concurrent failures.
	redirectMu sync.Mutex
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A cookie jar is attached when it has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTracer sets the tracer used for per-call spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) {
		c.tracer = tracer
	}
}

// New creates a Client for the configured base URL. A configured session is seeded into the
// cookie jar so it accompanies every request.
func New(cfg *domain.Config, navigator ports.Navigator, logger ports.Logger, opts ...Option) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Host == "" || (base.Scheme != "http" && base.Scheme != "https") {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidBaseURL, "failed to create transport"), "base_url", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultTimeout
	}

	c := &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
		navigator:  navigator,
		logger:     logger,
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient.Jar == nil {
		// cookiejar.New only fails on a broken PublicSuffixList, and none is set.
		jar, _ := cookiejar.New(nil)
		c.httpClient.Jar = jar
	}

	if cfg.Session != "" {
		c.httpClient.Jar.SetCookies(c.baseURL, []*http.Cookie{{
			Name:  domain.SessionCookieName,
			Value: cfg.Session,
			Path:  "/",
		}})
	}

	return c, nil
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return c.Do(ctx, domain.Get(path, query))
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, domain.Post(path, body))
}

// Do executes req and returns the envelope's data. Every failure is a *domain.RequestError.
// Calls are never retried.
func (c *Client) Do(ctx context.Context, req domain.Request) (json.RawMessage, error) {
	ctx, span := c.tracer.Start(ctx, req.Method+" "+req.Path, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	data, status, err := c.do(ctx, req)
	span.SetAttributes(
		attribute.String("http.method", req.Method),
		attribute.String("http.path", req.Path),
	)
	if status != 0 {
		span.SetAttributes(attribute.Int("http.status_code", status))
	}

	if err != nil {
		kind := domain.KindOf(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, kind.String())
		c.report(req, err, kind)
		return nil, err
	}

	return data, nil
}

func (c *Client) do(ctx context.Context, req domain.Request) (json.RawMessage, int, error) {
	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, 0, &domain.RequestError{
				Kind:   domain.KindUnknown,
				Reason: domain.ErrRequestEncodeFailed.Error(),
				Err:    err,
			}
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.URL(req.Path, req.Query), body)
	if err != nil {
		return nil, 0, &domain.RequestError{
			Kind:   domain.KindUnknown,
			Reason: domain.ErrRequestBuildFailed.Error(),
			Err:    err,
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, 0, &domain.RequestError{Kind: domain.KindNetwork, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &domain.RequestError{Kind: domain.KindNetwork, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, classifyStatus(resp.StatusCode, raw)
	}

	var env domain.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, resp.StatusCode, &domain.RequestError{
			Kind:       domain.KindProtocolDecode,
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}

	if !env.OK() {
		return nil, resp.StatusCode, &domain.RequestError{
			Kind:   domain.KindApplication,
			Code:   env.Code,
			Reason: env.Message,
		}
	}

	return env.Data, resp.StatusCode, nil
}

// classifyStatus builds the error for a non-2xx response, keeping the body's message if it has one.
func classifyStatus(status int, raw []byte) *domain.RequestError {
	reqErr := &domain.RequestError{
		Kind:       domain.KindForStatus(status),
		StatusCode: status,
	}

	var env domain.Envelope
	if json.Unmarshal(raw, &env) == nil && env.Message != "" {
		reqErr.Reason = env.Message
		reqErr.Code = env.Code
	}

	return reqErr
}

// report logs a classified failure and performs the Unauthorized redirect.
func (c *Client) report(req domain.Request, err error, kind domain.ErrorKind) {
	if kind == domain.KindUnauthorized && c.navigator != nil {
		c.redirectToLogin()
	}

	if c.logger == nil {
		return
	}

	msg := err.Error()
	var reqErr *domain.RequestError
	if errors.As(err, &reqErr) {
		msg = reqErr.Message()
	}
	c.logger.Warn(fmt.Sprintf("%s %s: %s", req.Method, req.Path, msg))
}

func (c *Client) redirectToLogin() {
	c.redirectMu.Lock()
	defer c.redirectMu.Unlock()

	if !strings.Contains(c.navigator.CurrentPath(), domain.LoginPath) {
		c.navigator.Navigate(domain.LoginPath)
	}
}

// URL returns the absolute URL of path against the base URL.
func (c *Client) URL(path string, query url.Values) string {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// HTTPClient returns the credentialed client.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// SessionCookie returns the current session cookie value, or an empty string.
func (c *Client) SessionCookie() string {
	for _, cookie := range c.httpClient.Jar.Cookies(c.baseURL) {
		if cookie.Name == domain.SessionCookieName {
			return cookie.Value
		}
	}
	return ""
}

// Decode unmarshals an envelope's data into T. Empty or null data yields the zero value.
func Decode[T any](raw json.RawMessage) (T, error) {
	var v T
	if len(raw) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, &domain.RequestError{Kind: domain.KindProtocolDecode, Err: err}
	}
	return v, nil
}
