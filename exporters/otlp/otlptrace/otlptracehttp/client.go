// Package otlptracehttp implements the OTLP/HTTP trace client, sending
// protobuf-encoded ExportTraceServiceRequest payloads via plain POST
// (§4.8: "Content-Type: application/x-protobuf", optionally gzipped).
package otlptracehttp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/signalcore/otelsdk/exporters/otlp/otlpcommon"
	"github.com/signalcore/otelsdk/internal/otellog"
)

const defaultEndpoint = "http://localhost:4318"
const tracesPath = "/v1/traces"

// Option configures a Client.
type Option func(*config)

type config struct {
	endpoint    string
	insecure    bool
	compression bool
	headers     map[string]string
	timeout     time.Duration
	retry       otlpcommon.RetryPolicy
	httpClient  *http.Client
}

// WithEndpoint sets the collector base URL (scheme+host[:port], no path).
func WithEndpoint(endpoint string) Option {
	return func(c *config) { c.endpoint = endpoint }
}

// WithCompression enables gzip request compression.
func WithCompression() Option {
	return func(c *config) { c.compression = true }
}

// WithHeaders sets extra headers sent with every export request.
func WithHeaders(headers map[string]string) Option {
	return func(c *config) { c.headers = headers }
}

// WithTimeout bounds a single export attempt's round trip.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// WithRetryPolicy overrides the default retry policy.
func WithRetryPolicy(p otlpcommon.RetryPolicy) Option {
	return func(c *config) { c.retry = p }
}

// Client is the OTLP/HTTP trace transport.
type Client struct {
	cfg config
}

// NewClient builds a Client from opts, defaulting the endpoint to
// localhost:4318 and the retry policy to otlpcommon.DefaultRetryPolicy.
func NewClient(opts ...Option) (*Client, error) {
	cfg := config{
		endpoint:   defaultEndpoint,
		timeout:    10 * time.Second,
		retry:      otlpcommon.DefaultRetryPolicy(),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := otlpcommon.ValidateClientConfig(cfg.endpoint, int64(cfg.timeout)); err != nil {
		return nil, err
	}
	return &Client{cfg: cfg}, nil
}

// UploadTraces POSTs protoRequest to {endpoint}/v1/traces, retrying
// transient failures per the configured RetryPolicy.
func (c *Client) UploadTraces(ctx context.Context, protoRequest []byte) error {
	url := c.cfg.endpoint + tracesPath
	return c.cfg.retry.Do(ctx, func(ctx context.Context) (time.Duration, error) {
		return c.send(ctx, url, protoRequest)
	})
}

func (c *Client) send(ctx context.Context, url string, payload []byte) (time.Duration, error) {
	body := payload
	contentEncoding := ""
	if c.cfg.compression {
		gz, err := otlpcommon.Compress(payload)
		if err != nil {
			return 0, fmt.Errorf("otlptracehttp: compressing payload: %w", err)
		}
		body = gz
		contentEncoding = "gzip"
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if c.cfg.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, c.cfg.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/x-protobuf")
	if contentEncoding != "" {
		req.Header.Set("Content-Encoding", contentEncoding)
	}
	for k, v := range c.cfg.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.cfg.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode/100 == 2 {
		return 0, nil
	}

	retryAfter := otlpcommon.ParseRetryAfter(resp.Header.Get("Retry-After"))
	otellog.Debugf("otlptracehttp: export failed with status %d", resp.StatusCode)
	return retryAfter, &otlpcommon.HTTPStatusError{StatusCode: resp.StatusCode, RetryAfter: retryAfter}
}

// Shutdown releases the underlying HTTP transport's idle connections.
func (c *Client) Shutdown(ctx context.Context) error {
	c.cfg.httpClient.CloseIdleConnections()
	return nil
}
