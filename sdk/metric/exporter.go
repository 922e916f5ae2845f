package metric

import "context"

// MetricExporter sends a collected ResourceMetrics snapshot to a backend
// (§4.6). Implementations must not panic.
type MetricExporter interface {
	Export(ctx context.Context, metrics ResourceMetrics) error
	Shutdown(ctx context.Context) error
}
