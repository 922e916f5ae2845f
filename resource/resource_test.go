package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/signalcore/otelsdk/attribute"
)

func TestMergeFavorsSecondOperand(t *testing.T) {
	a := NewWithAttributes(attribute.String("k", "a"), attribute.String("only_a", "x"))
	b := NewWithAttributes(attribute.String("k", "b"))
	merged := Merge(a, b)
	v, ok := attrMapOf(merged)["k"]
	assert.True(t, ok)
	assert.Equal(t, "b", v)
	assert.Equal(t, "x", attrMapOf(merged)["only_a"])
}

func attrMapOf(r *Resource) map[string]string {
	out := map[string]string{}
	for _, kv := range r.Attributes() {
		out[string(kv.Key)] = kv.Value.AsString()
	}
	return out
}

func TestExplicitServiceNameOutranksEnv(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "env-svc")
	r := WithServiceName(FromEnv(), "explicit")
	assert.Equal(t, "explicit", attrMapOf(r)["service.name"])
}

func TestEnvServiceNameOutranksResourceAttributes(t *testing.T) {
	t.Setenv("OTEL_RESOURCE_ATTRIBUTES", "service.name=attr-svc")
	t.Setenv("OTEL_SERVICE_NAME", "env-svc")
	r := FromEnv()
	assert.Equal(t, "env-svc", attrMapOf(r)["service.name"])
}
