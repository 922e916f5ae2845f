package otelenv

import "strings"

// ParseHeaders parses the OTEL_EXPORTER_OTLP_*HEADERS grammar: a
// comma-separated list of k=v pairs, split on the first "=" only so values
// may themselves contain "=" (§6, §8 headers-parse testable property).
func ParseHeaders(raw string) map[string]string {
	out := map[string]string{}
	if raw == "" {
		return out
	}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		i := strings.Index(pair, "=")
		if i < 0 {
			continue
		}
		k := strings.TrimSpace(pair[:i])
		v := strings.TrimSpace(pair[i+1:])
		if k == "" {
			continue
		}
		out[k] = v
	}
	return out
}

// ParseResourceAttributes parses OTEL_RESOURCE_ATTRIBUTES ("k1=v1,k2=v2")
// with the same first-"=" split rule as ParseHeaders.
func ParseResourceAttributes(raw string) map[string]string {
	return ParseHeaders(raw)
}
