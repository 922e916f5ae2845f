// Package global is the process-wide singleton entry point (§5 "Shared
// resource policy", §9 redesign flag on global mutable state): default
// TracerProvider/MeterProvider/LoggerProvider/TextMapPropagator, with an
// explicit ResetForTest. The TracerProvider is installed at most once
// between resets; SetMeterProvider, SetLoggerProvider and
// SetTextMapPropagator replace the stored value on every call and do not
// stop the value they replace. Grounded on the teacher's
// globaltracer_test.go atomic.Value pattern (old instance Stop() on
// replace).
package global

import (
	"context"
	"sync/atomic"

	"github.com/signalcore/otelsdk/internal/otellog"
	"github.com/signalcore/otelsdk/otelerror"
	"github.com/signalcore/otelsdk/propagation"
	sdktrace "github.com/signalcore/otelsdk/trace"
)

// MeterProvider and LoggerProvider are declared as minimal interfaces here
// (rather than imported from sdk/metric and sdk/log) to avoid a dependency
// cycle: sdk/metric and sdk/log depend on nothing in internal/global, and
// internal/global must not depend down into sdk/*.
type MeterProvider interface {
	// Meter is intentionally untyped (interface{}) at this layer; callers
	// type-assert to *metric.MeterProvider via otel.MeterProvider().
}

type LoggerProvider interface{}

type noopTracerProvider struct{}

func (noopTracerProvider) Tracer(string, ...sdktrace.TracerOption) sdktrace.Tracer {
	return noopTracer{}
}

type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, name string, opts ...sdktrace.SpanStartOption) (context.Context, sdktrace.Span) {
	sc := sdktrace.SpanContextFromContext(ctx)
	span := sdktrace.NewNoopSpan(sc)
	return sdktrace.ContextWithSpan(ctx, span), span
}

var (
	tracerProvider atomic.Value // sdktrace.TracerProvider
	meterProvider  atomic.Value // MeterProvider
	loggerProvider atomic.Value // LoggerProvider
	propagator     atomic.Value // propagation.TextMapPropagator
	errorHandler   atomic.Value // otelerror.Handler

	tracerProviderSet atomic.Bool // SetTracerProvider has run since init or ResetForTest
)

func init() {
	tracerProvider.Store(wrapTP(noopTracerProvider{}))
	propagator.Store(wrapProp(propagation.NewComposite(propagation.TraceContext{}, propagation.Baggage{})))
	errorHandler.Store(wrapEH(defaultErrorHandler{}))
}

// defaultErrorHandler logs through the SDK's own diagnostic logger (§7:
// "internally swallowed errors... are logged through the SDK's diagnostic
// log at an appropriate severity").
type defaultErrorHandler struct{}

func (defaultErrorHandler) Handle(err error) {
	if err == nil {
		return
	}
	otellog.Errorf("%s", err)
}

// wrap* indirections let us store interface values in atomic.Value, which
// requires the concrete dynamic type to be consistent across Store calls.
type tpBox struct{ sdktrace.TracerProvider }
type mpBox struct{ MeterProvider }
type lpBox struct{ LoggerProvider }
type propBox struct{ propagation.TextMapPropagator }
type ehBox struct{ otelerror.Handler }

func wrapTP(tp sdktrace.TracerProvider) tpBox          { return tpBox{tp} }
func wrapMP(mp MeterProvider) mpBox                    { return mpBox{mp} }
func wrapLP(lp LoggerProvider) lpBox                   { return lpBox{lp} }
func wrapProp(p propagation.TextMapPropagator) propBox { return propBox{p} }
func wrapEH(h otelerror.Handler) ehBox                  { return ehBox{h} }

// SetTracerProvider installs tp as the global TracerProvider. Only the
// first call after start-up or after ResetForTest takes effect: a later
// call is reported to the error handler as a ConfigurationError and leaves
// the installed provider in place and running.
func SetTracerProvider(tp sdktrace.TracerProvider) {
	if !tracerProviderSet.CompareAndSwap(false, true) {
		Handle(otelerror.NewConfigurationError("global: a TracerProvider is already installed; call ResetForTest before installing another"))
		return
	}
	tracerProvider.Store(wrapTP(tp))
}

func GetTracerProvider() sdktrace.TracerProvider {
	return tracerProvider.Load().(tpBox).TracerProvider
}

func SetMeterProvider(mp MeterProvider) { meterProvider.Store(wrapMP(mp)) }

func GetMeterProvider() MeterProvider {
	if v := meterProvider.Load(); v != nil {
		return v.(mpBox).MeterProvider
	}
	return nil
}

func SetLoggerProvider(lp LoggerProvider) { loggerProvider.Store(wrapLP(lp)) }

func GetLoggerProvider() LoggerProvider {
	if v := loggerProvider.Load(); v != nil {
		return v.(lpBox).LoggerProvider
	}
	return nil
}

func SetTextMapPropagator(p propagation.TextMapPropagator) {
	propagator.Store(wrapProp(p))
}

func GetTextMapPropagator() propagation.TextMapPropagator {
	return propagator.Load().(propBox).TextMapPropagator
}

// SetErrorHandler installs h as the process-wide handler for errors that
// internal SDK code cannot surface to an immediate caller (§7
// InvalidArgument).
func SetErrorHandler(h otelerror.Handler) { errorHandler.Store(wrapEH(h)) }

// Handle routes err to the installed error handler, a no-op if err is nil.
func Handle(err error) {
	errorHandler.Load().(ehBox).Handler.Handle(err)
}

// ResetForTest restores every global to its initial no-op state. Tests
// must call this in a defer to avoid leaking state across test cases (§5).
func ResetForTest() {
	tracerProvider.Store(wrapTP(noopTracerProvider{}))
	tracerProviderSet.Store(false)
	meterProvider.Store(mpBox{})
	loggerProvider.Store(lpBox{})
	propagator.Store(wrapProp(propagation.NewComposite(propagation.TraceContext{}, propagation.Baggage{})))
	errorHandler.Store(wrapEH(defaultErrorHandler{}))
}
