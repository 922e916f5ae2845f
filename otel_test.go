package otel

import (
	"context"
	"testing"

	"github.com/signalcore/otelsdk/internal/global"
	sdklog "github.com/signalcore/otelsdk/sdk/log"
	sdkmetric "github.com/signalcore/otelsdk/sdk/metric"
)

func TestTracerFallsBackToNoop(t *testing.T) {
	defer global.ResetForTest()

	tracer := Tracer("test")
	_, span := tracer.Start(context.Background(), "op")
	if span.IsRecording() {
		t.Fatal("default Tracer should be a no-op before any TracerProvider is installed")
	}
}

func TestMeterIsNilBeforeProviderInstalled(t *testing.T) {
	defer global.ResetForTest()

	if m := Meter("test"); m != nil {
		t.Fatal("Meter() should be nil before a MeterProvider is installed")
	}
}

func TestMeterDelegatesToInstalledProvider(t *testing.T) {
	defer global.ResetForTest()

	SetMeterProvider(sdkmetric.NewMeterProvider())
	if m := Meter("test"); m == nil {
		t.Fatal("Meter() should delegate to the installed MeterProvider")
	}
}

func TestLoggerDelegatesToInstalledProvider(t *testing.T) {
	defer global.ResetForTest()

	SetLoggerProvider(sdklog.NewLoggerProvider())
	if l := Logger("test"); l == nil {
		t.Fatal("Logger() should delegate to the installed LoggerProvider")
	}
}
