package trace

import (
	"context"
	"sync"

	"github.com/signalcore/otelsdk/idgenerator"
	"github.com/signalcore/otelsdk/internal/global"
	"github.com/signalcore/otelsdk/internal/otelenv"
	"github.com/signalcore/otelsdk/resource"
	sdktrace "github.com/signalcore/otelsdk/trace"
)

// SpanProcessor observes a span's lifecycle (§4.4).
type SpanProcessor interface {
	OnStart(parent context.Context, span ReadOnlySpan)
	OnEnd(span ReadOnlySpan)
	ForceFlush(ctx context.Context) bool
	Shutdown(ctx context.Context) bool
}

// TracerProvider hands out stable Tracers and owns the Sampler, Resource,
// IDGenerator and SpanProcessor chain shared by every Tracer it creates
// (§4.3, §4.6, §9 "never allow a new provider to silently replace running
// ones" — enforced by internal/global, not here).
type TracerProvider struct {
	mu         sync.RWMutex
	sampler    Sampler
	resource   *resource.Resource
	idGenerator idgenerator.IDGenerator
	spanLimits SpanLimits
	processors []SpanProcessor
	tracers    map[scopeKey]*tracer
	shutdown   bool
}

type scopeKey struct {
	name, version, schemaURL string
}

var _ sdktrace.TracerProvider = (*TracerProvider)(nil)

// TracerProviderOption configures NewTracerProvider.
type TracerProviderOption func(*TracerProvider)

func WithSampler(s Sampler) TracerProviderOption {
	return func(p *TracerProvider) { p.sampler = s }
}

func WithResource(r *resource.Resource) TracerProviderOption {
	return func(p *TracerProvider) { p.resource = r }
}

func WithIDGenerator(g idgenerator.IDGenerator) TracerProviderOption {
	return func(p *TracerProvider) { p.idGenerator = g }
}

func WithSpanLimits(l SpanLimits) TracerProviderOption {
	return func(p *TracerProvider) { p.spanLimits = l }
}

func WithSpanProcessor(sp SpanProcessor) TracerProviderOption {
	return func(p *TracerProvider) { p.processors = append(p.processors, sp) }
}

// NewTracerProvider builds a TracerProvider. Defaults: ParentBased(AlwaysOn)
// (or the sampler named by OTEL_TRACES_SAMPLER if set), the environment
// Resource, and a random IDGenerator.
func NewTracerProvider(opts ...TracerProviderOption) *TracerProvider {
	p := &TracerProvider{
		sampler:     samplerFromEnv(),
		resource:    resource.Default(),
		idGenerator: idgenerator.NewDefault(),
		spanLimits:  DefaultSpanLimits(),
		tracers:     make(map[scopeKey]*tracer),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

func samplerFromEnv() Sampler {
	name := otelenv.String("OTEL_TRACES_SAMPLER", "parentbased_always_on")
	arg := otelenv.Float64("OTEL_TRACES_SAMPLER_ARG", 1.0)
	switch name {
	case "always_on":
		return AlwaysOn()
	case "always_off":
		return AlwaysOff()
	case "traceidratio":
		return ratioSamplerOrFallback(arg, AlwaysOn())
	case "parentbased_always_off":
		return ParentBased(AlwaysOff())
	case "parentbased_traceidratio":
		return ParentBased(ratioSamplerOrFallback(arg, AlwaysOn()))
	default:
		return ParentBased(AlwaysOn())
	}
}

// ratioSamplerOrFallback resolves OTEL_TRACES_SAMPLER_ARG the same way the
// rest of §6's environment configuration is resolved: a malformed value
// cannot abort NewTracerProvider (it has no error return), so the
// ConfigurationError is routed to the process-wide handler and fallback is
// used instead, rather than silently clamping the ratio.
func ratioSamplerOrFallback(ratio float64, fallback Sampler) Sampler {
	s, err := TraceIDRatioBased(ratio)
	if err != nil {
		global.Handle(err)
		return fallback
	}
	return s
}

// Tracer returns a stable Tracer per (name,version,schemaUrl) (§4.6).
func (p *TracerProvider) Tracer(name string, opts ...sdktrace.TracerOption) sdktrace.Tracer {
	cfg := sdktrace.NewTracerConfig(opts...)
	key := scopeKey{name: name, version: cfg.Version, schemaURL: cfg.SchemaURL}

	p.mu.Lock()
	defer p.mu.Unlock()
	if t, ok := p.tracers[key]; ok {
		return t
	}
	t := &tracer{
		provider: p,
		scope:    InstrumentationScope{Name: name, Version: cfg.Version, SchemaURL: cfg.SchemaURL},
	}
	p.tracers[key] = t
	return t
}

func (p *TracerProvider) onSpanEnd(s ReadOnlySpan) {
	p.mu.RLock()
	procs := p.processors
	p.mu.RUnlock()
	for _, proc := range procs {
		proc.OnEnd(s)
	}
}

// ForceFlush flushes every registered SpanProcessor.
func (p *TracerProvider) ForceFlush(ctx context.Context) bool {
	p.mu.RLock()
	procs := p.processors
	p.mu.RUnlock()
	ok := true
	for _, proc := range procs {
		if !proc.ForceFlush(ctx) {
			ok = false
		}
	}
	return ok
}

// Shutdown flushes and shuts down every registered SpanProcessor. Idempotent
// (§5 "shutdown() is idempotent").
func (p *TracerProvider) Shutdown(ctx context.Context) bool {
	p.mu.Lock()
	if p.shutdown {
		p.mu.Unlock()
		return true
	}
	p.shutdown = true
	procs := p.processors
	p.mu.Unlock()

	ok := true
	for _, proc := range procs {
		if !proc.Shutdown(ctx) {
			ok = false
		}
	}
	return ok
}
