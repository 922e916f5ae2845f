package metric

import (
	"context"
	"sync"

	"github.com/signalcore/otelsdk/attribute"
	"github.com/signalcore/otelsdk/internal/global"
	"github.com/signalcore/otelsdk/otelerror"
)

// Counter is a monotonic synchronous instrument (§4.5).
type Counter struct {
	desc    Descriptor
	storage *SumStorage
}

func (c *Counter) Add(ctx context.Context, value float64, attrs ...attribute.KeyValue) {
	if value < 0 {
		global.Handle(otelerror.NewInvalidArgument(
			"metric: Counter %q.Add called with negative value %v", c.desc.Name, value))
		return
	}
	c.storage.Add(attribute.NewSet(attrs...), value)
}

// UpDownCounter is a signed-delta synchronous instrument (§4.5).
type UpDownCounter struct {
	desc    Descriptor
	storage *SumStorage
}

func (c *UpDownCounter) Add(ctx context.Context, value float64, attrs ...attribute.KeyValue) {
	c.storage.Add(attribute.NewSet(attrs...), value)
}

// Histogram is a distribution-recording synchronous instrument (§4.5).
type Histogram struct {
	desc    Descriptor
	storage *HistogramStorage
}

func (h *Histogram) Record(ctx context.Context, value float64, attrs ...attribute.KeyValue) {
	h.storage.Record(attribute.NewSet(attrs...), value)
}

// Gauge is a last-value synchronous instrument (§4.5).
type Gauge struct {
	desc    Descriptor
	storage *GaugeStorage
}

func (g *Gauge) Record(ctx context.Context, value float64, attrs ...attribute.KeyValue) {
	g.storage.Record(attribute.NewSet(attrs...), value)
}

// ObservableCounter is a callback-driven monotonic instrument (§4.5).
type ObservableCounter struct {
	desc     Descriptor
	storage  *SumStorage
	registry *observableRegistry
}

func (o *ObservableCounter) RegisterCallback(cb Callback) Unregister { return o.registry.register(cb) }

// ObservableUpDownCounter is a callback-driven signed instrument (§4.5).
type ObservableUpDownCounter struct {
	desc     Descriptor
	storage  *SumStorage
	registry *observableRegistry
}

func (o *ObservableUpDownCounter) RegisterCallback(cb Callback) Unregister {
	return o.registry.register(cb)
}

// ObservableGauge is a callback-driven last-value instrument (§4.5).
type ObservableGauge struct {
	desc     Descriptor
	storage  *GaugeStorage
	registry *observableRegistry
}

func (o *ObservableGauge) RegisterCallback(cb Callback) Unregister { return o.registry.register(cb) }

// instrumentEntry bundles whatever a Meter needs to collect one
// instrument, regardless of kind.
type instrumentEntry struct {
	desc     Descriptor
	collect  func() Point
	registry *observableRegistry // nil for synchronous instruments
}

// Point is one collected instrument's data, ready for the OTLP transform.
type Point struct {
	Descriptor Descriptor
	Sum        []SumPoint
	Histogram  []HistogramPoint
	Gauge      []GaugePoint
	Monotonic  bool
	Temporality Temporality
}

// Meter creates instruments under one (name,version,schemaUrl) scope
// (§4.6).
type Meter struct {
	scope    InstrumentationScope
	provider *MeterProvider

	mu          sync.Mutex
	instruments map[string]*instrumentEntry
}

// InstrumentationScope names the Meter that produced an instrument
// (§4.6's (name,version,schemaUrl) tuple).
type InstrumentationScope struct {
	Name      string
	Version   string
	SchemaURL string
}

func newMeter(scope InstrumentationScope, provider *MeterProvider) *Meter {
	return &Meter{scope: scope, provider: provider, instruments: make(map[string]*instrumentEntry)}
}

func (m *Meter) register(desc Descriptor, collect func() Point, registry *observableRegistry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.instruments[desc.Name] = &instrumentEntry{desc: desc, collect: collect, registry: registry}
}

// Int64Counter creates (or returns the existing) Counter named name.
func (m *Meter) Int64Counter(name string, opts ...InstrumentOption) *Counter {
	desc := newDescriptor(name, KindCounter, opts...)
	storage := NewSumStorage(true)
	c := &Counter{desc: desc, storage: storage}
	m.register(desc, func() Point {
		return Point{Descriptor: desc, Sum: storage.Collect(m.provider.temporality), Monotonic: true, Temporality: m.provider.temporality}
	}, nil)
	return c
}

// Float64Counter is an alias of Int64Counter; the storage is float64
// internally regardless of the instrument's declared numeric type.
func (m *Meter) Float64Counter(name string, opts ...InstrumentOption) *Counter {
	return m.Int64Counter(name, opts...)
}

func (m *Meter) UpDownCounter(name string, opts ...InstrumentOption) *UpDownCounter {
	desc := newDescriptor(name, KindUpDownCounter, opts...)
	storage := NewSumStorage(false)
	c := &UpDownCounter{desc: desc, storage: storage}
	m.register(desc, func() Point {
		return Point{Descriptor: desc, Sum: storage.Collect(m.provider.temporality), Monotonic: false, Temporality: m.provider.temporality}
	}, nil)
	return c
}

// defaultHistogramBounds mirrors the real SDK's default explicit bucket
// boundaries, used as the fallback when a caller supplies malformed bounds
// to Histogram (see histogramStorageOrFallback).
var defaultHistogramBounds = []float64{0, 5, 10, 25, 50, 75, 100, 250, 500, 750, 1000, 2500, 5000, 7500, 10000}

func (m *Meter) Histogram(name string, bounds []float64, opts ...InstrumentOption) *Histogram {
	desc := newDescriptor(name, KindHistogram, opts...)
	storage := histogramStorageOrFallback(name, bounds)
	h := &Histogram{desc: desc, storage: storage}
	m.register(desc, func() Point {
		return Point{Descriptor: desc, Histogram: storage.Collect(m.provider.temporality), Temporality: m.provider.temporality}
	}, nil)
	return h
}

// histogramStorageOrFallback resolves Meter.Histogram's bounds the same way
// samplerFromEnv resolves a malformed OTEL_TRACES_SAMPLER_ARG: Histogram has
// no error return to preserve the instrumentation surface, so the message
// of the ConfigurationError from out-of-order bounds is routed to the
// process-wide handler as an InvalidArgument and defaultHistogramBounds is used instead of misfiling every
// recorded value into the wrong bucket.
func histogramStorageOrFallback(name string, bounds []float64) *HistogramStorage {
	storage, err := NewHistogramStorage(bounds, true)
	if err != nil {
		global.Handle(otelerror.NewInvalidArgument("metric: Histogram %q: %s", name, err.Error()))
		storage, _ = NewHistogramStorage(defaultHistogramBounds, true)
	}
	return storage
}

func (m *Meter) Gauge(name string, opts ...InstrumentOption) *Gauge {
	desc := newDescriptor(name, KindGauge, opts...)
	storage := NewGaugeStorage()
	g := &Gauge{desc: desc, storage: storage}
	m.register(desc, func() Point {
		return Point{Descriptor: desc, Gauge: storage.Collect()}
	}, nil)
	return g
}

func (m *Meter) ObservableCounter(name string, opts ...InstrumentOption) *ObservableCounter {
	desc := newDescriptor(name, KindObservableCounter, opts...)
	storage := NewSumStorage(true)
	registry := newObservableRegistry()
	o := &ObservableCounter{desc: desc, storage: storage, registry: registry}
	m.register(desc, func() Point {
		collectObservableSum(registry, storage, true)
		return Point{Descriptor: desc, Sum: storage.Collect(m.provider.temporality), Monotonic: true, Temporality: m.provider.temporality}
	}, registry)
	return o
}

func (m *Meter) ObservableUpDownCounter(name string, opts ...InstrumentOption) *ObservableUpDownCounter {
	desc := newDescriptor(name, KindObservableUpDownCounter, opts...)
	storage := NewSumStorage(false)
	registry := newObservableRegistry()
	o := &ObservableUpDownCounter{desc: desc, storage: storage, registry: registry}
	m.register(desc, func() Point {
		collectObservableSum(registry, storage, false)
		return Point{Descriptor: desc, Sum: storage.Collect(m.provider.temporality), Monotonic: false, Temporality: m.provider.temporality}
	}, registry)
	return o
}

func (m *Meter) ObservableGauge(name string, opts ...InstrumentOption) *ObservableGauge {
	desc := newDescriptor(name, KindObservableGauge, opts...)
	storage := NewGaugeStorage()
	registry := newObservableRegistry()
	o := &ObservableGauge{desc: desc, storage: storage, registry: registry}
	m.register(desc, func() Point {
		for _, obs := range registry.collect() {
			storage.Record(obs.set, obs.value)
		}
		return Point{Descriptor: desc, Gauge: storage.Collect()}
	}, registry)
	return o
}

// collectObservableSum applies each fresh observation to storage: for a
// monotonic (Counter) instrument, the monotonic-checked-delta rule from
// §4.5; for UpDownCounter, the observed value replaces the running sum
// (absolute semantics).
func collectObservableSum(registry *observableRegistry, storage *SumStorage, monotonic bool) {
	for _, obs := range registry.collect() {
		if monotonic {
			delta := registry.counterDelta(obs.set, obs.value)
			storage.Add(obs.set, delta)
			continue
		}
		storage.reset(obs.set)
		storage.Add(obs.set, obs.value)
	}
}

// InstrumentOption configures instrument creation.
type InstrumentOption func(*Descriptor)

func WithDescription(d string) InstrumentOption { return func(desc *Descriptor) { desc.Description = d } }
func WithUnit(u string) InstrumentOption        { return func(desc *Descriptor) { desc.Unit = u } }

func newDescriptor(name string, kind InstrumentKind, opts ...InstrumentOption) Descriptor {
	d := Descriptor{Name: name, Kind: kind}
	for _, o := range opts {
		o(&d)
	}
	return d
}
