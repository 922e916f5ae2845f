package metric

import (
	"sync"

	"github.com/signalcore/otelsdk/resource"
)

type meterScopeKey struct{ name, version, schemaURL string }

// MeterProvider hands out stable Meters per (name,version,schemaUrl) and
// iterates every registered instrument on collection (§4.6).
type MeterProvider struct {
	resource    *resource.Resource
	temporality Temporality

	mu     sync.Mutex
	meters map[meterScopeKey]*Meter
}

// MeterProviderOption configures NewMeterProvider.
type MeterProviderOption func(*MeterProvider)

func WithMeterResource(r *resource.Resource) MeterProviderOption {
	return func(p *MeterProvider) { p.resource = r }
}

func WithTemporality(t Temporality) MeterProviderOption {
	return func(p *MeterProvider) { p.temporality = t }
}

func NewMeterProvider(opts ...MeterProviderOption) *MeterProvider {
	p := &MeterProvider{
		resource:    resource.Default(),
		temporality: CumulativeTemporality,
		meters:      make(map[meterScopeKey]*Meter),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Meter returns a stable Meter per (name,version,schemaUrl) (§4.6).
func (p *MeterProvider) Meter(name string, opts ...MeterOption) *Meter {
	cfg := newMeterConfig(opts...)
	key := meterScopeKey{name: name, version: cfg.Version, schemaURL: cfg.SchemaURL}

	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := p.meters[key]; ok {
		return m
	}
	m := newMeter(InstrumentationScope{Name: name, Version: cfg.Version, SchemaURL: cfg.SchemaURL}, p)
	p.meters[key] = m
	return m
}

// ScopeMetrics groups a scope's collected Points (§4.8 grouping rules).
type ScopeMetrics struct {
	Scope   InstrumentationScope
	Metrics []Point
}

// ResourceMetrics is one collection's full output: the provider's
// Resource plus every scope's points.
type ResourceMetrics struct {
	Resource *resource.Resource
	Scopes   []ScopeMetrics
}

// CollectAllMetrics iterates every instrument across every Meter,
// invoking observable callbacks, and returns a Resource-annotated
// snapshot (§4.6 collectAllMetrics()).
func (p *MeterProvider) CollectAllMetrics() ResourceMetrics {
	p.mu.Lock()
	meters := make([]*Meter, 0, len(p.meters))
	for _, m := range p.meters {
		meters = append(meters, m)
	}
	p.mu.Unlock()

	out := ResourceMetrics{Resource: p.resource}
	for _, m := range meters {
		m.mu.Lock()
		entries := make([]*instrumentEntry, 0, len(m.instruments))
		for _, e := range m.instruments {
			entries = append(entries, e)
		}
		scope := m.scope
		m.mu.Unlock()

		points := make([]Point, 0, len(entries))
		for _, e := range entries {
			points = append(points, e.collect())
		}
		out.Scopes = append(out.Scopes, ScopeMetrics{Scope: scope, Metrics: points})
	}
	return out
}

// MeterOption configures MeterProvider.Meter.
type MeterOption func(*meterConfig)

type meterConfig struct {
	Version   string
	SchemaURL string
}

func newMeterConfig(opts ...MeterOption) meterConfig {
	var c meterConfig
	for _, o := range opts {
		o(&c)
	}
	return c
}

func WithMeterInstrumentationVersion(v string) MeterOption {
	return func(c *meterConfig) { c.Version = v }
}

func WithMeterSchemaURL(url string) MeterOption {
	return func(c *meterConfig) { c.SchemaURL = url }
}
