package log

import "context"

// Exporter sends emitted Records to a telemetry backend (§4.7).
type Exporter interface {
	Export(ctx context.Context, records []Record) error
	Shutdown(ctx context.Context) error
}
