// Package otlptrace implements the SpanExporter that ships spans to an
// OTLP collector over a pluggable client transport (§4.8).
package otlptrace

import (
	"context"

	"github.com/signalcore/otelsdk/exporters/otlp/otlptrace/internal/tracetransform"
	sdktrace "github.com/signalcore/otelsdk/sdk/trace"
)

// Client abstracts the wire transport (gRPC or HTTP/protobuf) so a single
// Exporter implementation drives either.
type Client interface {
	// UploadTraces sends a pre-encoded ExportTraceServiceRequest payload,
	// applying its own retry policy before giving up.
	UploadTraces(ctx context.Context, protoRequest []byte) error
	Shutdown(ctx context.Context) error
}

// Exporter implements sdk/trace.SpanExporter against a Client.
type Exporter struct {
	client Client
}

// New wraps client in a sdk/trace.SpanExporter.
func New(client Client) *Exporter {
	return &Exporter{client: client}
}

var _ sdktrace.SpanExporter = (*Exporter)(nil)

// ExportSpans encodes spans as a single ExportTraceServiceRequest and
// hands it to the client.
func (e *Exporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	if len(spans) == 0 {
		return nil
	}
	req := tracetransform.EncodeRequest(spans)
	return e.client.UploadTraces(ctx, req)
}

// Shutdown releases the underlying client's resources.
func (e *Exporter) Shutdown(ctx context.Context) error {
	return e.client.Shutdown(ctx)
}
