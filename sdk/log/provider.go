package log

import (
	"context"
	"sync"

	"github.com/signalcore/otelsdk/resource"
)

// LogRecordProcessor observes every emitted Record (§4.7).
type LogRecordProcessor interface {
	OnEmit(ctx context.Context, record Record)
	ForceFlush(ctx context.Context) bool
	Shutdown(ctx context.Context) bool
}

type loggerScopeKey struct{ name, version, schemaURL string }

// LoggerProvider hands out stable Loggers and owns the Resource, limits
// and LogRecordProcessor chain shared by every Logger it creates (§4.7).
type LoggerProvider struct {
	mu     sync.RWMutex
	resource *resource.Resource
	limits RecordLimits
	procs  []LogRecordProcessor
	loggers map[loggerScopeKey]*Logger
	shutdown bool
}

// LoggerProviderOption configures NewLoggerProvider.
type LoggerProviderOption func(*LoggerProvider)

func WithLoggerResource(r *resource.Resource) LoggerProviderOption {
	return func(p *LoggerProvider) { p.resource = r }
}

func WithRecordLimits(l RecordLimits) LoggerProviderOption {
	return func(p *LoggerProvider) { p.limits = l }
}

func WithLogRecordProcessor(proc LogRecordProcessor) LoggerProviderOption {
	return func(p *LoggerProvider) { p.procs = append(p.procs, proc) }
}

func NewLoggerProvider(opts ...LoggerProviderOption) *LoggerProvider {
	p := &LoggerProvider{
		resource: resource.Default(),
		limits:   DefaultRecordLimits(),
		loggers:  make(map[loggerScopeKey]*Logger),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// LoggerOption configures LoggerProvider.Logger.
type LoggerOption func(*loggerConfig)

type loggerConfig struct{ Version, SchemaURL string }

func WithLoggerInstrumentationVersion(v string) LoggerOption {
	return func(c *loggerConfig) { c.Version = v }
}
func WithLoggerSchemaURL(u string) LoggerOption { return func(c *loggerConfig) { c.SchemaURL = u } }

// Logger returns a stable Logger per (name,version,schemaUrl).
func (p *LoggerProvider) Logger(name string, opts ...LoggerOption) *Logger {
	var cfg loggerConfig
	for _, o := range opts {
		o(&cfg)
	}
	key := loggerScopeKey{name: name, version: cfg.Version, schemaURL: cfg.SchemaURL}

	p.mu.Lock()
	defer p.mu.Unlock()
	if l, ok := p.loggers[key]; ok {
		return l
	}
	l := &Logger{
		scope:    InstrumentationScope{Name: name, Version: cfg.Version, SchemaURL: cfg.SchemaURL},
		provider: p,
	}
	p.loggers[key] = l
	return l
}

func (p *LoggerProvider) processors() []LogRecordProcessor {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.procs
}

// ForceFlush flushes every registered LogRecordProcessor.
func (p *LoggerProvider) ForceFlush(ctx context.Context) bool {
	ok := true
	for _, proc := range p.processors() {
		if !proc.ForceFlush(ctx) {
			ok = false
		}
	}
	return ok
}

// Shutdown flushes and shuts down every registered LogRecordProcessor.
// Idempotent (§5).
func (p *LoggerProvider) Shutdown(ctx context.Context) bool {
	p.mu.Lock()
	if p.shutdown {
		p.mu.Unlock()
		return true
	}
	p.shutdown = true
	procs := p.procs
	p.mu.Unlock()

	ok := true
	for _, proc := range procs {
		if !proc.Shutdown(ctx) {
			ok = false
		}
	}
	return ok
}
