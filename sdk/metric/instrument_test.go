package metric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidInstrumentName(t *testing.T) {
	assert.True(t, ValidInstrumentName("http.server.request.duration"))
	assert.True(t, ValidInstrumentName("queue_depth"))
	assert.False(t, ValidInstrumentName(""))
	assert.False(t, ValidInstrumentName("1invalid"))
	assert.False(t, ValidInstrumentName("has space"))
}

func TestMeterIsStablePerScope(t *testing.T) {
	p := NewMeterProvider()
	m1 := p.Meter("svc")
	m2 := p.Meter("svc")
	assert.Same(t, m1, m2)

	m3 := p.Meter("svc", WithMeterInstrumentationVersion("2.0"))
	assert.NotSame(t, m1, m3)
}

func TestObservableCounterMonotonicDelta(t *testing.T) {
	p := NewMeterProvider()
	m := p.Meter("svc")
	oc := m.ObservableCounter("requests")

	value := 10.0
	oc.RegisterCallback(func(r *ObservableResult) { r.Observe(value) })

	snap := p.CollectAllMetrics()
	assert.Equal(t, 10.0, snap.Scopes[0].Metrics[0].Sum[0].Value)

	value = 15.0
	snap = p.CollectAllMetrics()
	assert.Equal(t, 15.0, snap.Scopes[0].Metrics[0].Sum[0].Value)
}
