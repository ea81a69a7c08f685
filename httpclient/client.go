package httpclient

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kyildiz/restkit/errors"
	"github.com/kyildiz/restkit/logger"
	"github.com/kyildiz/restkit/resilience"
)

const tracerName = "github.com/kyildiz/restkit/httpclient"

// Client executes HTTP requests against one base URL with retry and error
// classification. A configured client is safe for concurrent use; all
// per-request state lives inside Do.
type Client struct {
	baseURL *url.URL
	cfg     Config
	log     *logger.Logger
	tracer  trace.Tracer
}

// New creates a client for the given base URL with defaults: 10s timeout,
// 10 max attempts, 30s retry delay, TLS verification on, restkit
// User-Agent. A trailing slash on the base URL is trimmed.
func New(baseURL string) (*Client, error) {
	cfg := Config{BaseURL: baseURL}
	cfg.ApplyDefaults()
	return NewWithConfig(cfg)
}

// NewWithConfig creates a client from an explicit configuration.
func NewWithConfig(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.New(errors.KindClientBuilder).
			WithMessage(fmt.Sprintf("invalid client configuration: %v", err))
	}

	trimmed := strings.TrimRight(cfg.BaseURL, "/")
	root, err := url.Parse(trimmed)
	if err != nil || !root.IsAbs() || root.Opaque != "" || root.Host == "" {
		return nil, errors.New(errors.KindInvalidURL).
			WithMessage(fmt.Sprintf("failed to parse base url: %v", err)).
			WithDetail("url", cfg.BaseURL)
	}
	cfg.BaseURL = trimmed

	return &Client{
		baseURL: root,
		cfg:     cfg,
		log:     logger.GetGlobalLogger().WithComponent("httpclient"),
		tracer:  otel.Tracer(tracerName),
	}, nil
}

// WithTimeout sets the default per-attempt timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.cfg.Timeout = timeout
	return c
}

// WithHeaders merges headers into the client defaults; new values win.
func (c *Client) WithHeaders(headers map[string]string) *Client {
	c.cfg.Headers = MergeHeaders(c.cfg.Headers, headers)
	return c
}

// WithAuth sets the authentication scheme.
func (c *Client) WithAuth(auth Authentication) *Client {
	c.cfg.Auth = auth
	return c
}

// WithSSLVerify enables or disables TLS certificate verification.
func (c *Client) WithSSLVerify(verify bool) *Client {
	c.cfg.InsecureSkipVerify = !verify
	return c
}

// WithMaxAttempts sets the total number of attempts per request.
// Panics if attempts is not positive: a client that never sends is a
// programming error, not a runtime condition.
func (c *Client) WithMaxAttempts(attempts int) *Client {
	if attempts < 1 {
		panic("httpclient: max attempts must be > 0")
	}
	c.cfg.MaxAttempts = attempts
	return c
}

// WithRetryDelay sets the fixed sleep between attempts.
func (c *Client) WithRetryDelay(delay time.Duration) *Client {
	c.cfg.RetryDelay = delay
	return c
}

// WithLogger replaces the client's logger.
func (c *Client) WithLogger(log *logger.Logger) *Client {
	c.log = log.WithComponent("httpclient")
	return c
}

// Config returns a copy of the client configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// Request describes one outbound call.
type Request struct {
	// Method is the HTTP method.
	Method string
	// Path is appended to the client's base URL.
	Path string
	// Query are URL query parameters, encoded sorted by key.
	Query map[string]string
	// Body is the request payload; empty means no body.
	Body string
	// Headers override the client defaults for this request.
	Headers map[string]string
	// Timeout overrides the per-attempt timeout; zero keeps the default.
	Timeout time.Duration
	// NoRetryOn lists status kinds that return immediately instead of
	// consuming further attempts.
	NoRetryOn []errors.Kind
	// Context carries caller-supplied diagnostic fields into any error.
	Context errors.Context
}

// RequestOption configures a single request.
type RequestOption func(*Request)

// WithQuery merges query parameters into the request.
func WithQuery(params map[string]string) RequestOption {
	return func(r *Request) {
		if r.Query == nil {
			r.Query = make(map[string]string, len(params))
		}
		for k, v := range params {
			r.Query[k] = v
		}
	}
}

// WithQueryParam adds one query parameter.
func WithQueryParam(key, value string) RequestOption {
	return func(r *Request) {
		if r.Query == nil {
			r.Query = make(map[string]string)
		}
		r.Query[key] = value
	}
}

// WithHeader adds one request header.
func WithHeader(key, value string) RequestOption {
	return func(r *Request) {
		if r.Headers == nil {
			r.Headers = make(map[string]string)
		}
		r.Headers[key] = value
	}
}

// WithRequestHeaders merges headers into the request.
func WithRequestHeaders(headers map[string]string) RequestOption {
	return func(r *Request) {
		if r.Headers == nil {
			r.Headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			r.Headers[k] = v
		}
	}
}

// WithBody sets the request payload.
func WithBody(body string) RequestOption {
	return func(r *Request) { r.Body = body }
}

// WithRequestTimeout overrides the per-attempt timeout for this request.
func WithRequestTimeout(timeout time.Duration) RequestOption {
	return func(r *Request) { r.Timeout = timeout }
}

// WithNoRetryOn exempts status kinds from retry for this request.
func WithNoRetryOn(kinds ...errors.Kind) RequestOption {
	return func(r *Request) { r.NoRetryOn = append(r.NoRetryOn, kinds...) }
}

// WithContext attaches caller diagnostic fields to the request.
func WithContext(ectx errors.Context) RequestOption {
	return func(r *Request) { r.Context = ectx }
}

// Get performs a GET request and returns the response body.
func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (string, error) {
	return c.Do(ctx, newRequest(http.MethodGet, path, "", opts))
}

// Post performs a POST request with the given body and returns the
// response body. An empty body sends no payload.
func (c *Client) Post(ctx context.Context, path, body string, opts ...RequestOption) (string, error) {
	return c.Do(ctx, newRequest(http.MethodPost, path, body, opts))
}

// Put performs a PUT request with the given body and returns the response
// body.
func (c *Client) Put(ctx context.Context, path, body string, opts ...RequestOption) (string, error) {
	return c.Do(ctx, newRequest(http.MethodPut, path, body, opts))
}

// Delete performs a DELETE request and returns the response body.
func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) (string, error) {
	return c.Do(ctx, newRequest(http.MethodDelete, path, "", opts))
}

// Head performs a HEAD request; no body is returned.
func (c *Client) Head(ctx context.Context, path string, opts ...RequestOption) error {
	_, err := c.Do(ctx, newRequest(http.MethodHead, path, "", opts))
	return err
}

func newRequest(method, path, body string, opts []RequestOption) Request {
	req := Request{Method: method, Path: path, Body: body}
	for _, opt := range opts {
		opt(&req)
	}
	return req
}

// Do executes a request: build URL, merge headers, attach auth, send,
// classify, retry. On success the response body is returned as text; every
// failure is an *errors.Error carrying the execution context.
func (c *Client) Do(ctx context.Context, req Request) (string, error) {
	start := time.Now()

	u, berr := BuildURL(c.baseURL, req.Path, req.Query)
	if berr != nil {
		return "", berr.WithContext(req.Context)
	}

	ectx := errors.Context{}
	ectx.Merge(req.Context)
	ectx.Set("url", u.String()).
		Set("method", req.Method).
		Set(logger.FieldRequestID, uuid.NewString())

	ctx, span := c.tracer.Start(ctx, "httpclient.do",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.full", u.String()),
		))
	defer span.End()

	httpc := c.transportClient(req.Timeout)
	headers := MergeHeaders(c.cfg.Headers, req.Headers)

	log := c.log.WithFields(logger.Fields(
		logger.FieldMethod, req.Method,
		logger.FieldURL, u.String(),
		logger.FieldRequestID, ectx[logger.FieldRequestID],
	))
	log.Debug("request prepared")

	body, err := resilience.Retry(ctx, resilience.Config{
		MaxAttempts: c.cfg.MaxAttempts,
		Delay:       c.cfg.RetryDelay,
		RetryIf: func(err error) bool {
			return isRetryable(err, req.NoRetryOn)
		},
		OnRetry: func(attempt int, err error) {
			log.Warn("attempt failed, retrying", logger.Fields(
				logger.FieldAttempt, attempt,
				logger.FieldError, err.Error(),
				"retry_delay", c.cfg.RetryDelay.String(),
			))
		},
	}, func(attempt int) (string, error) {
		return c.attempt(ctx, httpc, req, u, headers, ectx, attempt, start, log)
	})

	if err != nil {
		classified, ok := errors.AsError(err)
		if !ok {
			// Zero attempts or cancellation before the first send: the
			// environment violated the executor's contract.
			classified = errors.New(errors.KindUnexpected).
				WithMessage(err.Error()).
				WithContext(ectx)
		}
		span.RecordError(classified)
		span.SetStatus(codes.Error, classified.Kind.MsgID)
		log.Error("request failed", logger.Fields(
			logger.FieldError, classified.Error(),
			logger.FieldDuration, time.Since(start).Milliseconds(),
		))
		return "", classified
	}

	span.SetStatus(codes.Ok, "")
	return body, nil
}

// attempt performs one transport call and classifies its outcome.
func (c *Client) attempt(ctx context.Context, httpc *http.Client, req Request, u *url.URL,
	headers map[string]string, ectx errors.Context, attempt int, start time.Time, log *logger.Logger) (string, error) {

	log.Info("sending request", logger.Fields(logger.FieldAttempt, attempt))

	var payload io.Reader
	if req.Body != "" {
		payload = strings.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), payload)
	if err != nil {
		return "", errors.New(errors.KindClientBuilder).
			WithMessage(fmt.Sprintf("failed to build request: %v", err)).
			WithContext(ectx)
	}
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}
	if c.cfg.Auth != nil {
		if name, value, ok := c.cfg.Auth.Header(); ok {
			httpReq.Header.Set(name, value)
		}
	}

	resp, err := httpc.Do(httpReq)
	if err != nil {
		return "", classifyTransport(err, ectx)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	if err != nil {
		return "", errors.New(errors.KindInvalidContent).
			WithMessage(fmt.Sprintf("failed to read response body: %v", err)).
			WithContext(ectx).
			WithDetail("attempt", attempt)
	}

	fields := logger.Fields(
		logger.FieldStatus, resp.StatusCode,
		logger.FieldBytes, len(data),
		logger.FieldDuration, elapsed.Milliseconds(),
		logger.FieldAttempt, attempt,
	)
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		log.Info("request succeeded", fields)
		return string(data), nil
	}

	log.Error("request returned error status", fields)
	return "", ClassifyStatus(resp.StatusCode, data, ectx).WithDetail("attempt", attempt)
}

// transportClient builds the per-call transport client with the effective
// timeout and TLS settings.
func (c *Client) transportClient(override time.Duration) *http.Client {
	timeout := c.cfg.Timeout
	if override > 0 {
		timeout = override
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if c.cfg.InsecureSkipVerify {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{}
		}
		transport.TLSClientConfig.InsecureSkipVerify = true
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}

// isRetryable reports whether a classified failure may consume another
// attempt: only HTTP status kinds retry, and only when not exempted.
func isRetryable(err error, exempt []errors.Kind) bool {
	e, ok := errors.AsError(err)
	if !ok {
		return false
	}
	if !e.Kind.IsHTTPStatus() {
		return false
	}
	for _, kind := range exempt {
		if e.Kind == kind {
			return false
		}
	}
	return true
}
