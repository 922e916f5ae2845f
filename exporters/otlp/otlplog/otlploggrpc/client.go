// Package otlploggrpc implements the OTLP/gRPC logs client, mirroring
// otlptracegrpc's raw-codec approach against LogsService/Export.
package otlploggrpc

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/signalcore/otelsdk/exporters/otlp/otlpcommon"
)

const defaultEndpoint = "localhost:4317"
const exportMethod = "/opentelemetry.proto.collector.logs.v1.LogsService/Export"

type rawFrame []byte

type rawCodec struct{}

func (rawCodec) Marshal(v interface{}) ([]byte, error) {
	f, ok := v.(rawFrame)
	if !ok {
		return nil, fmt.Errorf("otlploggrpc: unexpected message type %T", v)
	}
	return f, nil
}

func (rawCodec) Unmarshal(data []byte, v interface{}) error {
	f, ok := v.(*rawFrame)
	if !ok {
		return fmt.Errorf("otlploggrpc: unexpected message type %T", v)
	}
	*f = append((*f)[:0], data...)
	return nil
}

func (rawCodec) Name() string { return "otlpraw" }

// Option configures a Client.
type Option func(*config)

type config struct {
	endpoint string
	insecure bool
	headers  map[string]string
	timeout  time.Duration
	retry    otlpcommon.RetryPolicy
	dialOpts []grpc.DialOption
}

func WithEndpoint(endpoint string) Option { return func(c *config) { c.endpoint = endpoint } }
func WithInsecure() Option                { return func(c *config) { c.insecure = true } }
func WithHeaders(headers map[string]string) Option {
	return func(c *config) { c.headers = headers }
}
func WithTimeout(d time.Duration) Option { return func(c *config) { c.timeout = d } }
func WithRetryPolicy(p otlpcommon.RetryPolicy) Option {
	return func(c *config) { c.retry = p }
}
func WithDialOption(opts ...grpc.DialOption) Option {
	return func(c *config) { c.dialOpts = append(c.dialOpts, opts...) }
}

// Client is the OTLP/gRPC logs transport.
type Client struct {
	cfg  config
	conn *grpc.ClientConn
}

// NewClient dials the collector and returns a ready Client.
func NewClient(opts ...Option) (*Client, error) {
	cfg := config{
		endpoint: defaultEndpoint,
		timeout:  10 * time.Second,
		retry:    otlpcommon.DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := otlpcommon.ValidateClientConfig(cfg.endpoint, int64(cfg.timeout)); err != nil {
		return nil, err
	}

	var creds credentials.TransportCredentials
	if cfg.insecure {
		creds = insecure.NewCredentials()
	} else {
		creds = credentials.NewTLS(nil)
	}
	dialOpts := append([]grpc.DialOption{grpc.WithTransportCredentials(creds)}, cfg.dialOpts...)

	conn, err := grpc.NewClient(cfg.endpoint, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("otlploggrpc: dialing %s: %w", cfg.endpoint, err)
	}
	return &Client{cfg: cfg, conn: conn}, nil
}

// UploadLogs invokes LogsService/Export with protoRequest.
func (c *Client) UploadLogs(ctx context.Context, protoRequest []byte) error {
	return c.cfg.retry.Do(ctx, func(ctx context.Context) (time.Duration, error) {
		return c.send(ctx, protoRequest)
	})
}

func (c *Client) send(ctx context.Context, payload []byte) (time.Duration, error) {
	reqCtx := ctx
	var cancel context.CancelFunc
	if c.cfg.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, c.cfg.timeout)
		defer cancel()
	}
	if len(c.cfg.headers) > 0 {
		reqCtx = metadata.NewOutgoingContext(reqCtx, metadata.New(c.cfg.headers))
	}

	var resp rawFrame
	err := c.conn.Invoke(reqCtx, exportMethod, rawFrame(payload), &resp, grpc.ForceCodec(rawCodec{}))
	if err != nil {
		return 0, err
	}
	return 0, nil
}

// Shutdown closes the underlying gRPC channel.
func (c *Client) Shutdown(ctx context.Context) error {
	return c.conn.Close()
}
