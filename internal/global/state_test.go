package global

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTracerProviderNeverNil(t *testing.T) {
	defer ResetForTest()
	assert.NotNil(t, GetTracerProvider())
	tracer := GetTracerProvider().Tracer("test")
	_, span := tracer.Start(context.Background(), "op")
	assert.False(t, span.IsRecording())
}

func TestSetTracerProviderReplacesGlobal(t *testing.T) {
	defer ResetForTest()
	SetTracerProvider(noopTracerProvider{})
	assert.NotNil(t, GetTracerProvider())
}

func TestResetForTestRestoresDefaults(t *testing.T) {
	SetTracerProvider(noopTracerProvider{})
	ResetForTest()
	_, span := GetTracerProvider().Tracer("x").Start(context.Background(), "op")
	assert.False(t, span.IsRecording())
}
