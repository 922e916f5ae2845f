package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/signalcore/otelsdk/otelerror"
	sdktrace "github.com/signalcore/otelsdk/trace"
)

func mustTraceID(t *testing.T, h string) sdktrace.TraceID {
	t.Helper()
	id, err := sdktrace.TraceIDFromHex(h)
	if err != nil {
		t.Fatalf("bad trace id %q: %v", h, err)
	}
	return id
}

func TestTraceIDRatioDeterministic(t *testing.T) {
	s, err := TraceIDRatioBased(0.5)
	assert.NoError(t, err)
	id := mustTraceID(t, "4bf92f3577b34da6a3ce929d0e0e4736")
	r1 := s.ShouldSample(SamplingParameters{TraceID: id})
	r2 := s.ShouldSample(SamplingParameters{TraceID: id})
	assert.Equal(t, r1.Decision, r2.Decision)
}

func TestTraceIDRatioZeroAlwaysDrops(t *testing.T) {
	s, err := TraceIDRatioBased(0)
	assert.NoError(t, err)
	id := mustTraceID(t, "ffffffffffffffffffffffffffffffff")
	r := s.ShouldSample(SamplingParameters{TraceID: id})
	assert.Equal(t, Drop, r.Decision)
}

func TestTraceIDRatioOneAlwaysSamples(t *testing.T) {
	s, err := TraceIDRatioBased(1)
	assert.NoError(t, err)
	full := mustTraceID(t, "4bf92f3577b34da6a3ce929d0e0e4736")
	r := s.ShouldSample(SamplingParameters{TraceID: full})
	assert.Equal(t, RecordAndSample, r.Decision)
}

func TestTraceIDRatioOutOfRangeIsConfigurationError(t *testing.T) {
	_, err := TraceIDRatioBased(1.5)
	var cfgErr *otelerror.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestParentBasedNoParentUsesRoot(t *testing.T) {
	s := ParentBased(AlwaysOn())
	r := s.ShouldSample(SamplingParameters{})
	assert.Equal(t, RecordAndSample, r.Decision)
}

func TestParentBasedRemoteNotSampledDrops(t *testing.T) {
	s := ParentBased(AlwaysOn())
	parent := sdktrace.NewSpanContext(sdktrace.SpanContextConfig{
		TraceID: mustTraceID(t, "4bf92f3577b34da6a3ce929d0e0e4736"),
		SpanID:  sdktrace.SpanID{1},
		Remote:  true,
	})
	r := s.ShouldSample(SamplingParameters{ParentContext: parent})
	assert.Equal(t, Drop, r.Decision)
}

func TestCompositeANDShortCircuitsOnDrop(t *testing.T) {
	s := Composite(CompositeAND, AlwaysOn(), AlwaysOff())
	r := s.ShouldSample(SamplingParameters{})
	assert.Equal(t, Drop, r.Decision)
}

func TestCompositeORShortCircuitsOnSample(t *testing.T) {
	s := Composite(CompositeOR, AlwaysOff(), AlwaysOn())
	r := s.ShouldSample(SamplingParameters{})
	assert.Equal(t, RecordAndSample, r.Decision)
}

func TestCountingSamplesEveryNth(t *testing.T) {
	s := Counting(3)
	var decisions []SamplingDecision
	for i := 0; i < 6; i++ {
		decisions = append(decisions, s.ShouldSample(SamplingParameters{}).Decision)
	}
	assert.Equal(t, []SamplingDecision{Drop, Drop, RecordAndSample, Drop, Drop, RecordAndSample}, decisions)
}

func TestCountingOverrideForcesSample(t *testing.T) {
	s := Counting(1000, NamePatternOverride(func(name string) bool { return name == "critical" }))
	r := s.ShouldSample(SamplingParameters{Name: "critical"})
	assert.Equal(t, RecordAndSample, r.Decision)
}
