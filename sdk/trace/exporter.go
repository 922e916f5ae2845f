package trace

import "context"

// SpanExporter sends finished span snapshots to a telemetry backend
// (§4.4). Implementations must not panic; export failures are reported
// via the returned error and logged by the processor, never raised to
// instrumentation code (§7).
type SpanExporter interface {
	ExportSpans(ctx context.Context, spans []ReadOnlySpan) error
	Shutdown(ctx context.Context) error
}
