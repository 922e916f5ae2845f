package otlpcommon

import (
	"github.com/go-playground/validator/v10"

	"github.com/signalcore/otelsdk/otelerror"
)

// clientConfig wraps the fields every OTLP transport's config shares, so
// go-playground/validator can check them once against the same tags
// instead of each of the six transports (otlptracegrpc, otlptracehttp,
// otlpmetricgrpc, otlpmetrichttp, otlploggrpc, otlploghttp) hand-rolling
// its own endpoint/timeout checks (§4.8, §7 ConfigurationError).
type clientConfig struct {
	Endpoint string `validate:"required"`
	Timeout  int64  `validate:"gte=0"`
}

var clientConfigValidate = validator.New()

// ValidateClientConfig reports a ConfigurationError when endpoint is empty
// or timeout is negative. Every NewClient across the OTLP transports calls
// this before dialing, so a caller's WithEndpoint("") or negative
// WithTimeout fails fast at construction instead of surfacing as an
// inscrutable dial error.
func ValidateClientConfig(endpoint string, timeoutNanos int64) error {
	err := clientConfigValidate.Struct(clientConfig{Endpoint: endpoint, Timeout: timeoutNanos})
	if err == nil {
		return nil
	}
	return otelerror.NewConfigurationError("otlp: invalid client config (endpoint=%q timeout=%dns): %s", endpoint, timeoutNanos, err.Error())
}
