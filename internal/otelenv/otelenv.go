// Package otelenv resolves configuration from the three namespaces in §6,
// highest precedence first: compile-time defines, process environment,
// explicit constructor arguments (applied by the caller, not here — this
// package only arbitrates between the first two).
package otelenv

import (
	"os"
	"strconv"
	"strings"
	"sync"
)

// Defines is the compile-time/"define overrides" namespace: a build-bundled
// key/value dictionary (§6 namespace 1). It outranks the process
// environment. Production builds populate it via an init() in the
// embedding application; tests populate it directly.
var (
	definesMu sync.RWMutex
	defines   = map[string]string{}
)

// SetDefines replaces the compile-time dictionary wholesale. Intended for
// build-time wiring and tests.
func SetDefines(m map[string]string) {
	definesMu.Lock()
	defer definesMu.Unlock()
	defines = make(map[string]string, len(m))
	for k, v := range m {
		defines[k] = v
	}
}

// commaBearingKeys lists the six documented variables whose values may
// themselves contain commas; the compile-time namespace stores them with
// commas replaced by semicolons, and Lookup converts them back (§6).
var commaBearingKeys = map[string]bool{
	"OTEL_RESOURCE_ATTRIBUTES":           true,
	"OTEL_PROPAGATORS":                   true,
	"OTEL_EXPORTER_OTLP_HEADERS":         true,
	"OTEL_EXPORTER_OTLP_TRACES_HEADERS":  true,
	"OTEL_EXPORTER_OTLP_METRICS_HEADERS": true,
	"OTEL_EXPORTER_OTLP_LOGS_HEADERS":    true,
}

// Lookup resolves key honoring the compile-time-over-environment
// precedence (§6). The explicit-constructor-argument override (namespace 3,
// which always wins) is the caller's responsibility: call Lookup only when
// the caller itself received no explicit value.
func Lookup(key string) (string, bool) {
	definesMu.RLock()
	v, ok := defines[key]
	definesMu.RUnlock()
	if ok {
		if commaBearingKeys[key] {
			v = strings.ReplaceAll(v, ";", ",")
		}
		return v, true
	}
	return os.LookupEnv(key)
}

// String resolves key, falling back to def if unset in either namespace.
func String(key, def string) string {
	if v, ok := Lookup(key); ok {
		return v
	}
	return def
}

// Bool resolves key as a boolean, case-insensitively matching "true"/"false".
func Bool(key string, def bool) bool {
	v, ok := Lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(strings.ToLower(v))
	if err != nil {
		return def
	}
	return b
}

// Int resolves key as an integer.
func Int(key string, def int) int {
	v, ok := Lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

// Float64 resolves key as a float64.
func Float64(key string, def float64) float64 {
	v, ok := Lookup(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}

// List resolves key as a comma-separated list, trimming whitespace around
// each element and dropping empty elements.
func List(key string) []string {
	v, ok := Lookup(key)
	if !ok || v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
