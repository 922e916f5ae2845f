package propagation

import "net/http"

// HTTPHeadersCarrier adapts http.Header to TextMapCarrier, mirroring the
// teacher's HTTPHeadersCarrier (dd-trace-go ddtrace/tracer/textmap_test.go).
type HTTPHeadersCarrier http.Header

func (c HTTPHeadersCarrier) Get(key string) string { return http.Header(c).Get(key) }
func (c HTTPHeadersCarrier) Set(key, value string) { http.Header(c).Set(key, value) }
func (c HTTPHeadersCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}

// ForeachKey iterates every header value, matching the teacher's carrier
// contract for propagators that need to see repeated header occurrences.
func (c HTTPHeadersCarrier) ForeachKey(handler func(key, val string) error) error {
	for k, vals := range c {
		for _, v := range vals {
			if err := handler(k, v); err != nil {
				return err
			}
		}
	}
	return nil
}
