// Package otel is the module's public convenience entry point: the
// global TracerProvider/MeterProvider/LoggerProvider/TextMapPropagator
// instrumentation code reaches for when it isn't otherwise wired a
// specific provider (§5 "Shared resource policy"). It is a thin wrapper
// over internal/global, mirroring the teacher's top-level package acting
// as a facade over its internal tracer singleton.
package otel

import (
	"github.com/signalcore/otelsdk/internal/global"
	"github.com/signalcore/otelsdk/otelerror"
	"github.com/signalcore/otelsdk/propagation"
	sdklog "github.com/signalcore/otelsdk/sdk/log"
	sdkmetric "github.com/signalcore/otelsdk/sdk/metric"
	sdktrace "github.com/signalcore/otelsdk/trace"
)

// SetTracerProvider installs tp as the global TracerProvider. Only the
// first call takes effect; a later call is reported to the error handler
// and leaves the installed provider in place.
func SetTracerProvider(tp sdktrace.TracerProvider) { global.SetTracerProvider(tp) }

// GetTracerProvider returns the globally installed TracerProvider,
// defaulting to a no-op implementation before any is set.
func GetTracerProvider() sdktrace.TracerProvider { return global.GetTracerProvider() }

// Tracer is a shorthand for GetTracerProvider().Tracer(name, opts...).
func Tracer(name string, opts ...sdktrace.TracerOption) sdktrace.Tracer {
	return GetTracerProvider().Tracer(name, opts...)
}

// SetMeterProvider installs mp as the global MeterProvider.
func SetMeterProvider(mp *sdkmetric.MeterProvider) { global.SetMeterProvider(mp) }

// GetMeterProvider returns the globally installed MeterProvider, or nil
// if none has been set.
func GetMeterProvider() *sdkmetric.MeterProvider {
	mp, _ := global.GetMeterProvider().(*sdkmetric.MeterProvider)
	return mp
}

// Meter is a shorthand for GetMeterProvider().Meter(name, opts...). It
// returns nil if no MeterProvider has been installed.
func Meter(name string, opts ...sdkmetric.MeterOption) *sdkmetric.Meter {
	mp := GetMeterProvider()
	if mp == nil {
		return nil
	}
	return mp.Meter(name, opts...)
}

// SetLoggerProvider installs lp as the global LoggerProvider.
func SetLoggerProvider(lp *sdklog.LoggerProvider) { global.SetLoggerProvider(lp) }

// GetLoggerProvider returns the globally installed LoggerProvider, or
// nil if none has been set.
func GetLoggerProvider() *sdklog.LoggerProvider {
	lp, _ := global.GetLoggerProvider().(*sdklog.LoggerProvider)
	return lp
}

// Logger is a shorthand for GetLoggerProvider().Logger(name, opts...).
// It returns nil if no LoggerProvider has been installed.
func Logger(name string, opts ...sdklog.LoggerOption) *sdklog.Logger {
	lp := GetLoggerProvider()
	if lp == nil {
		return nil
	}
	return lp.Logger(name, opts...)
}

// SetTextMapPropagator installs p as the global TextMapPropagator.
func SetTextMapPropagator(p propagation.TextMapPropagator) { global.SetTextMapPropagator(p) }

// GetTextMapPropagator returns the globally installed TextMapPropagator,
// defaulting to TraceContext+Baggage composite before any is set.
func GetTextMapPropagator() propagation.TextMapPropagator {
	return global.GetTextMapPropagator()
}

// SetErrorHandler installs h as the process-wide otelerror.Handler (§7).
// The default handler logs through the SDK's diagnostic logger.
func SetErrorHandler(h otelerror.Handler) { global.SetErrorHandler(h) }

// Handle routes err to the installed otelerror.Handler. It is the channel
// internal SDK code uses to surface InvalidArgument occurrences from APIs
// that cannot change their return signature (e.g. Span.Start, Counter.Add)
// without breaking the instrumentation surface.
func Handle(err error) { global.Handle(err) }
