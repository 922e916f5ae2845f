// Package selfmetrics exposes the SDK's own operational health — dropped
// records, export failures, retries — as Prometheus metrics (SPEC_FULL.md
// §4.10). This is metrics about the pipeline itself, not a second wire
// protocol for user telemetry, so it does not compete with the Non-goal
// excluding Prometheus as a user-facing exporter.
package selfmetrics

import "github.com/prometheus/client_golang/prometheus"

// Registry bundles the self-observability instruments. The zero value is
// not usable; construct with New.
type Registry struct {
	DroppedSpans      *prometheus.CounterVec
	DroppedLogRecords *prometheus.CounterVec
	ExportFailures    *prometheus.CounterVec
	ExportRetries     *prometheus.CounterVec
	LastSuccess       *prometheus.GaugeVec
}

// New registers the self-metrics against reg. Passing nil uses a private
// registry (no global state, safe for multiple SDK instances in one
// process, e.g. under test).
func New(reg prometheus.Registerer) *Registry {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	r := &Registry{
		DroppedSpans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "otelsdk_dropped_spans_total",
			Help: "Spans dropped by a SpanProcessor before reaching an exporter.",
		}, []string{"reason"}),
		DroppedLogRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "otelsdk_dropped_log_records_total",
			Help: "Log records dropped by a LogRecordProcessor before reaching an exporter.",
		}, []string{"reason"}),
		ExportFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "otelsdk_export_failures_total",
			Help: "Export calls that failed permanently after retry.",
		}, []string{"signal", "transport"}),
		ExportRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "otelsdk_export_retries_total",
			Help: "Export retry attempts issued by an OTLP exporter.",
		}, []string{"signal", "transport"}),
		LastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "otelsdk_exporter_last_success_timestamp_seconds",
			Help: "Unix timestamp of the last successful export per signal.",
		}, []string{"signal"}),
	}
	reg.MustRegister(r.DroppedSpans, r.DroppedLogRecords, r.ExportFailures, r.ExportRetries, r.LastSuccess)
	return r
}

const (
	ReasonQueueFull       = "queue_full"
	ReasonAttributeLimit  = "attribute_limit"
	SignalTraces          = "traces"
	SignalMetrics         = "metrics"
	SignalLogs            = "logs"
	TransportGRPC         = "grpc"
	TransportHTTPProtobuf = "http"
)
