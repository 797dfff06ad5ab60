package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/fivetwenty-io/gcs-client/internal/constants"
	"github.com/fivetwenty-io/gcs-client/pkg/gcs"
)

const (
	tracerName       = "github.com/fivetwenty-io/gcs-client"
	defaultUserAgent = "gcs-client/1.0"
	contentTypeJSON  = "application/json"
)

// Client sends gcs.Request values. It is immutable after construction and safe
// for concurrent use.
type Client struct {
	baseURL      *url.URL
	httpClient   *retryablehttp.Client
	auth         gcs.HeaderProvider
	logger       gcs.Logger
	debug        bool
	userAgent    string
	interceptors *gcs.InterceptorChain
	tracer       trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger gcs.Logger) Option {
	return func(c *Client) {
		c.logger = logger
		if logger != nil {
			c.httpClient.Logger = &leveledLogger{logger: logger}
		}
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithRetryConfig enables retries of 429, 5xx and connection errors.
func WithRetryConfig(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = maxRetries
		if waitMin > 0 {
			c.httpClient.RetryWaitMin = waitMin
		}

		if waitMax > 0 {
			c.httpClient.RetryWaitMax = waitMax
		}
	}
}

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient.HTTPClient = httpClient
		}
	}
}

// WithTimeout sets the timeout of the underlying transport client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithInterceptors runs chain around every exchange.
func WithInterceptors(chain *gcs.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// WithTracerProvider traces exchanges with tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		if tp != nil {
			c.tracer = tp.Tracer(tracerName)
		}
	}
}

// NewClient creates a dispatcher for the API rooted at baseURL. auth may be
// nil for anonymous access.
func NewClient(baseURL string, auth gcs.HeaderProvider, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, &gcs.InvalidResourceURLError{URL: baseURL, Reason: err.Error()}
	}

	if base.Opaque != "" || base.Scheme == "" || base.Host == "" {
		return nil, &gcs.InvalidResourceURLError{URL: baseURL, Reason: "base url must be absolute"}
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = &http.Client{Timeout: constants.DefaultHTTPTimeout}
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.Logger = nil
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:    base,
		httpClient: retryClient,
		auth:       auth,
		userAgent:  defaultUserAgent,
		tracer:     otel.GetTracerProvider().Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// BaseURL returns a copy of the API root.
func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL

	return &u
}

// Send performs one exchange for req. It implements gcs.Dispatcher.
func (c *Client) Send(ctx context.Context, req gcs.Request) (*gcs.RawResponse, error) {
	method := req.Method()

	target, err := req.URL(c.baseURL)
	if err != nil {
		if errors.Is(err, gcs.ErrInvalidResourceURL) {
			return nil, err
		}

		return nil, &gcs.InvalidResourceURLError{URL: c.baseURL.String(), Reason: err.Error()}
	}

	query, body := req.Assemble()
	target.RawQuery = query.Encode()
	targetURL := target.String()

	payload, contentType, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	scope := gcs.ScopeOf(req)
	headers := http.Header{}

	for key, values := range req.Header() {
		headers[key] = append(headers[key], values...)
	}

	if c.auth != nil {
		authHeaders, err := c.auth.Headers(ctx, scope)
		if err != nil {
			return nil, &gcs.AuthError{Scope: scope, Err: err}
		}

		for key, values := range authHeaders {
			headers[key] = values
		}
	}

	ctx, span := c.tracer.Start(ctx, "gcs.send",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.full", targetURL),
			attribute.String("gcs.scope", string(scope)),
		),
	)
	defer span.End()

	raw, err := c.exchange(ctx, method, targetURL, scope, headers, payload, contentType)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		if status := gcs.StatusCode(err); status != 0 {
			span.SetAttributes(attribute.Int("http.response.status_code", status))
		}

		return nil, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", raw.StatusCode))

	return raw, nil
}

func (c *Client) exchange(
	ctx context.Context,
	method, targetURL string,
	scope gcs.Scope,
	headers http.Header,
	payload []byte,
	contentType string,
) (*gcs.RawResponse, error) {
	intercepted := &gcs.InterceptedRequest{
		Method:  method,
		URL:     targetURL,
		Scope:   scope,
		Headers: headers,
	}

	err := c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
	if err != nil {
		return nil, &gcs.TransportError{Method: method, URL: targetURL, Err: err}
	}

	var rawBody interface{}
	if payload != nil {
		rawBody = payload
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, method, targetURL, rawBody)
	if err != nil {
		return nil, &gcs.TransportError{Method: method, URL: targetURL, Err: err}
	}

	httpReq.Header.Set("User-Agent", c.userAgent)

	if intercepted.Headers.Get("Accept") == "" {
		httpReq.Header.Set("Accept", contentTypeJSON)
	}

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	for key, values := range intercepted.Headers {
		httpReq.Header[key] = values
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method":  method,
			"url":     targetURL,
			"headers": redactHeaders(httpReq.Header),
			"body":    len(payload),
		})
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	duration := time.Since(start)

	if err != nil {
		return nil, c.transportFailure(ctx, intercepted, duration, err)
	}

	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.transportFailure(ctx, intercepted, duration, fmt.Errorf("reading response body: %w", err))
	}

	if c.debug && c.logger != nil {
		fields := map[string]interface{}{
			"status":   resp.StatusCode,
			"duration": duration.String(),
			"size":     len(respBody),
		}

		if resp.StatusCode >= http.StatusBadRequest {
			fields["body"] = truncate(respBody, constants.MaxErrorBodyLog)
		}

		c.logger.Debug("HTTP Response", fields)
	}

	err = c.interceptors.ExecuteResponseInterceptors(ctx, intercepted, &gcs.InterceptedResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
		Duration:   duration,
	})
	if err != nil {
		return nil, &gcs.TransportError{Method: method, URL: targetURL, Err: err}
	}

	return classify(method, targetURL, resp.StatusCode, resp.Header, respBody)
}

func (c *Client) transportFailure(ctx context.Context, req *gcs.InterceptedRequest, duration time.Duration, cause error) error {
	_ = c.interceptors.ExecuteResponseInterceptors(ctx, req, &gcs.InterceptedResponse{
		Error:    cause,
		Duration: duration,
	})

	return &gcs.TransportError{Method: req.Method, URL: req.URL, Err: cause}
}

// encodeBody returns the bytes and content type of a request body. nil means no
// body; *gcs.Media is sent as is; anything else is JSON encoded.
func encodeBody(body any) ([]byte, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case *gcs.Media:
		if b.Data == nil {
			return []byte{}, b.ContentType, nil
		}

		return b.Data, b.ContentType, nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", &gcs.SerializationError{Op: "encoding request body", Err: err}
		}

		return data, contentTypeJSON, nil
	}
}

func redactHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))

	for key := range h {
		switch {
		case strings.EqualFold(key, "Authorization"),
			strings.HasSuffix(strings.ToLower(key), "-key"):
			out[key] = constants.MaskedSecret
		default:
			out[key] = h.Get(key)
		}
	}

	return out
}

func truncate(b []byte, limit int) string {
	if len(b) <= limit {
		return string(b)
	}

	return string(b[:limit]) + "..."
}
