package otlpcommon

import (
	"testing"
)

func TestValidateClientConfigRejectsEmptyEndpoint(t *testing.T) {
	if err := ValidateClientConfig("", int64(0)); err == nil {
		t.Fatal("ValidateClientConfig(\"\", 0) = nil, want ConfigurationError")
	}
}

func TestValidateClientConfigRejectsNegativeTimeout(t *testing.T) {
	if err := ValidateClientConfig("localhost:4317", int64(-1)); err == nil {
		t.Fatal("ValidateClientConfig(endpoint, -1) = nil, want ConfigurationError")
	}
}

func TestValidateClientConfigAcceptsValidConfig(t *testing.T) {
	if err := ValidateClientConfig("localhost:4317", int64(1e9)); err != nil {
		t.Fatalf("ValidateClientConfig(valid) = %v, want nil", err)
	}
}
