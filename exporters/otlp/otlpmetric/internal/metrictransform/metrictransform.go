// Package metrictransform assembles OTLP ExportMetricsServiceRequest
// bytes from sdk/metric.ResourceMetrics, mirroring tracetransform's
// shape (§4.8).
package metrictransform

import (
	"math"

	"github.com/signalcore/otelsdk/attribute"
	sdkmetric "github.com/signalcore/otelsdk/sdk/metric"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/signalcore/otelsdk/exporters/otlp/otlpcommon"
)

// ExportMetricsServiceRequest field number.
const fieldRequestResourceMetrics = 1

// ResourceMetrics / ScopeMetrics field numbers.
const (
	fieldResourceMetricsResource     = 1
	fieldResourceMetricsScopeMetrics = 2

	fieldScopeMetricsScope   = 1
	fieldScopeMetricsMetrics = 2
)

// Metric message field numbers (opentelemetry.proto.metrics.v1.Metric).
const (
	fieldMetricName        = 1
	fieldMetricDescription = 2
	fieldMetricUnit        = 3
	fieldMetricGauge       = 5
	fieldMetricSum         = 7
	fieldMetricHistogram   = 9
)

// Gauge / Sum / Histogram field numbers.
const (
	fieldGaugeDataPoints = 1

	fieldSumDataPoints          = 1
	fieldSumAggregationTempo    = 2
	fieldSumIsMonotonic         = 3

	fieldHistogramDataPoints       = 1
	fieldHistogramAggregationTempo = 2
)

// NumberDataPoint field numbers.
const (
	fieldNumberDPStartTime  = 2
	fieldNumberDPTime       = 3
	fieldNumberDPAsDouble   = 4
	fieldNumberDPAttributes = 7
)

// HistogramDataPoint field numbers.
const (
	fieldHistDPStartTime       = 2
	fieldHistDPTime            = 3
	fieldHistDPCount           = 4
	fieldHistDPSum             = 5
	fieldHistDPBucketCounts    = 6
	fieldHistDPExplicitBounds  = 7
	fieldHistDPAttributes      = 9
	fieldHistDPMin             = 11
	fieldHistDPMax             = 12
)

const (
	aggTemporalityDelta      = 1
	aggTemporalityCumulative = 2
)

// EncodeRequest builds a complete ExportMetricsServiceRequest for rm.
func EncodeRequest(rm sdkmetric.ResourceMetrics) []byte {
	var rb []byte
	rb = protowire.AppendTag(rb, fieldResourceMetricsResource, protowire.BytesType)
	rb = protowire.AppendBytes(rb, otlpcommon.EncodeResource(rm.Resource))

	for _, scope := range rm.Scopes {
		var sb []byte
		sb = protowire.AppendTag(sb, fieldScopeMetricsScope, protowire.BytesType)
		sb = protowire.AppendBytes(sb, otlpcommon.EncodeScope(scope.Scope.Name, scope.Scope.Version, nil))
		for _, point := range scope.Metrics {
			sb = protowire.AppendTag(sb, fieldScopeMetricsMetrics, protowire.BytesType)
			sb = protowire.AppendBytes(sb, encodeMetric(point))
		}
		rb = protowire.AppendTag(rb, fieldResourceMetricsScopeMetrics, protowire.BytesType)
		rb = protowire.AppendBytes(rb, sb)
	}

	var b []byte
	b = protowire.AppendTag(b, fieldRequestResourceMetrics, protowire.BytesType)
	b = protowire.AppendBytes(b, rb)
	return b
}

func encodeMetric(p sdkmetric.Point) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldMetricName, protowire.BytesType)
	b = protowire.AppendString(b, p.Descriptor.Name)
	if p.Descriptor.Description != "" {
		b = protowire.AppendTag(b, fieldMetricDescription, protowire.BytesType)
		b = protowire.AppendString(b, p.Descriptor.Description)
	}
	if p.Descriptor.Unit != "" {
		b = protowire.AppendTag(b, fieldMetricUnit, protowire.BytesType)
		b = protowire.AppendString(b, p.Descriptor.Unit)
	}

	switch {
	case p.Gauge != nil:
		b = protowire.AppendTag(b, fieldMetricGauge, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeGauge(p.Gauge))
	case p.Histogram != nil:
		b = protowire.AppendTag(b, fieldMetricHistogram, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeHistogram(p.Histogram, p.Temporality))
	default:
		b = protowire.AppendTag(b, fieldMetricSum, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeSum(p.Sum, p.Temporality, p.Monotonic))
	}
	return b
}

func encodeGauge(points []sdkmetric.GaugePoint) []byte {
	var b []byte
	for _, pt := range points {
		b = protowire.AppendTag(b, fieldGaugeDataPoints, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeNumberDataPoint(pt.Attributes.ToSlice(), pt.Value))
	}
	return b
}

func encodeSum(points []sdkmetric.SumPoint, temp sdkmetric.Temporality, monotonic bool) []byte {
	var b []byte
	for _, pt := range points {
		b = protowire.AppendTag(b, fieldSumDataPoints, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeNumberDataPoint(pt.Attributes.ToSlice(), pt.Value))
	}
	b = protowire.AppendTag(b, fieldSumAggregationTempo, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(aggTemporality(temp)))
	b = protowire.AppendTag(b, fieldSumIsMonotonic, protowire.VarintType)
	v := uint64(0)
	if monotonic {
		v = 1
	}
	b = protowire.AppendVarint(b, v)
	return b
}

func encodeHistogram(points []sdkmetric.HistogramPoint, temp sdkmetric.Temporality) []byte {
	var b []byte
	for _, pt := range points {
		b = protowire.AppendTag(b, fieldHistogramDataPoints, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeHistogramDataPoint(pt))
	}
	b = protowire.AppendTag(b, fieldHistogramAggregationTempo, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(aggTemporality(temp)))
	return b
}

func aggTemporality(t sdkmetric.Temporality) int {
	if t == sdkmetric.DeltaTemporality {
		return aggTemporalityDelta
	}
	return aggTemporalityCumulative
}

func encodeNumberDataPoint(attrs []attribute.KeyValue, value float64) []byte {
	var b []byte
	b = otlpcommon.EncodeAttributes(b, fieldNumberDPAttributes, attrs)
	b = appendDouble(b, fieldNumberDPAsDouble, value)
	b = protowire.AppendTag(b, fieldNumberDPTime, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, 0)
	return b
}

func encodeHistogramDataPoint(pt sdkmetric.HistogramPoint) []byte {
	var b []byte
	b = otlpcommon.EncodeAttributes(b, fieldHistDPAttributes, pt.Attributes.ToSlice())
	b = protowire.AppendTag(b, fieldHistDPTime, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, 0)
	b = protowire.AppendTag(b, fieldHistDPCount, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, pt.Count)
	b = appendDouble(b, fieldHistDPSum, pt.Sum)
	for _, c := range pt.BucketCounts {
		b = protowire.AppendTag(b, fieldHistDPBucketCounts, protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, c)
	}
	b = appendDouble(b, fieldHistDPMin, pt.Min)
	b = appendDouble(b, fieldHistDPMax, pt.Max)
	return b
}

// appendDouble appends a proto3 `double` field, matching otlpcommon's
// unexported helper of the same shape (duplicated here since that one is
// package-private).
func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}
