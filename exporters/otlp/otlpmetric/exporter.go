// Package otlpmetric implements the MetricExporter that ships collected
// metric points to an OTLP collector over a pluggable client transport
// (§4.8), mirroring otlptrace's shape.
package otlpmetric

import (
	"context"

	"github.com/signalcore/otelsdk/exporters/otlp/otlpmetric/internal/metrictransform"
	sdkmetric "github.com/signalcore/otelsdk/sdk/metric"
)

// Client abstracts the wire transport (gRPC or HTTP/protobuf).
type Client interface {
	UploadMetrics(ctx context.Context, protoRequest []byte) error
	Shutdown(ctx context.Context) error
}

// Exporter implements sdk/metric.MetricExporter against a Client.
type Exporter struct {
	client Client
}

// New wraps client in a sdk/metric.MetricExporter.
func New(client Client) *Exporter {
	return &Exporter{client: client}
}

var _ sdkmetric.MetricExporter = (*Exporter)(nil)

// Export encodes rm as a single ExportMetricsServiceRequest and hands it
// to the client.
func (e *Exporter) Export(ctx context.Context, rm sdkmetric.ResourceMetrics) error {
	req := metrictransform.EncodeRequest(rm)
	return e.client.UploadMetrics(ctx, req)
}

// Shutdown releases the underlying client's resources.
func (e *Exporter) Shutdown(ctx context.Context) error {
	return e.client.Shutdown(ctx)
}
