package otelenv

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHeadersSplitsOnFirstEquals(t *testing.T) {
	got := ParseHeaders("Authorization=Basic abc==xyz,X-Tenant=t1")
	assert.Equal(t, map[string]string{
		"Authorization": "Basic abc==xyz",
		"X-Tenant":      "t1",
	}, got)
}

func TestDefinesOutranksEnv(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "env-svc")
	SetDefines(map[string]string{"OTEL_SERVICE_NAME": "define-svc"})
	defer SetDefines(nil)

	v, ok := Lookup("OTEL_SERVICE_NAME")
	assert.True(t, ok)
	assert.Equal(t, "define-svc", v)
}

func TestEnvUsedWhenNoDefine(t *testing.T) {
	SetDefines(nil)
	t.Setenv("OTEL_SERVICE_NAME", "env-svc")
	v, ok := Lookup("OTEL_SERVICE_NAME")
	assert.True(t, ok)
	assert.Equal(t, "env-svc", v)
}

func TestCommaBearingDefineRoundTrip(t *testing.T) {
	SetDefines(map[string]string{
		"OTEL_RESOURCE_ATTRIBUTES": "service.name=attr-svc;deployment.environment=prod",
	})
	defer SetDefines(nil)
	v, ok := Lookup("OTEL_RESOURCE_ATTRIBUTES")
	assert.True(t, ok)
	assert.Equal(t, "service.name=attr-svc,deployment.environment=prod", v)
}

func TestBoolDefault(t *testing.T) {
	os.Unsetenv("OTEL_SDK_DISABLED")
	assert.False(t, Bool("OTEL_SDK_DISABLED", false))
	t.Setenv("OTEL_SDK_DISABLED", "true")
	assert.True(t, Bool("OTEL_SDK_DISABLED", false))
}
