package metrictransform

import (
	"testing"

	"github.com/signalcore/otelsdk/attribute"
	"github.com/signalcore/otelsdk/resource"
	sdkmetric "github.com/signalcore/otelsdk/sdk/metric"
)

func TestEncodeRequestCoversSumHistogramGauge(t *testing.T) {
	rm := sdkmetric.ResourceMetrics{
		Resource: resource.NewWithAttributes(attribute.String("service.name", "svc")),
		Scopes: []sdkmetric.ScopeMetrics{
			{
				Scope: sdkmetric.InstrumentationScope{Name: "meter"},
				Metrics: []sdkmetric.Point{
					{
						Descriptor: sdkmetric.Descriptor{Name: "requests", Kind: sdkmetric.KindCounter},
						Sum:        []sdkmetric.SumPoint{{Value: 3}},
						Monotonic:  true,
					},
					{
						Descriptor: sdkmetric.Descriptor{Name: "latency", Kind: sdkmetric.KindHistogram},
						Histogram: []sdkmetric.HistogramPoint{
							{Count: 4, Sum: 47, Min: 3, Max: 30, BucketCounts: []uint64{0, 1, 2, 0, 1}},
						},
					},
					{
						Descriptor: sdkmetric.Descriptor{Name: "queue_depth", Kind: sdkmetric.KindGauge},
						Gauge:      []sdkmetric.GaugePoint{{Value: 5}},
					},
				},
			},
		},
	}

	out := EncodeRequest(rm)
	if len(out) == 0 {
		t.Fatal("EncodeRequest produced empty output for a non-empty snapshot")
	}
}

func TestEncodeRequestEmptySnapshot(t *testing.T) {
	rm := sdkmetric.ResourceMetrics{Resource: resource.Empty()}
	out := EncodeRequest(rm)
	if len(out) == 0 {
		t.Fatal("EncodeRequest should still emit the (empty) Resource field")
	}
}
