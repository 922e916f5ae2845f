// Package otlplog implements the Exporter that ships log records to an
// OTLP collector over a pluggable client transport (§4.8), mirroring
// otlptrace/otlpmetric's shape.
package otlplog

import (
	"context"

	"github.com/signalcore/otelsdk/exporters/otlp/otlplog/internal/logtransform"
	sdklog "github.com/signalcore/otelsdk/sdk/log"
)

// Client abstracts the wire transport (gRPC or HTTP/protobuf).
type Client interface {
	UploadLogs(ctx context.Context, protoRequest []byte) error
	Shutdown(ctx context.Context) error
}

// Exporter implements sdk/log.Exporter against a Client.
type Exporter struct {
	client Client
}

// New wraps client in a sdk/log.Exporter.
func New(client Client) *Exporter {
	return &Exporter{client: client}
}

var _ sdklog.Exporter = (*Exporter)(nil)

// Export encodes records as a single ExportLogsServiceRequest and hands
// it to the client.
func (e *Exporter) Export(ctx context.Context, records []sdklog.Record) error {
	if len(records) == 0 {
		return nil
	}
	req := logtransform.EncodeRequest(records)
	return e.client.UploadLogs(ctx, req)
}

// Shutdown releases the underlying client's resources.
func (e *Exporter) Shutdown(ctx context.Context) error {
	return e.client.Shutdown(ctx)
}
