// Package resource implements the immutable Resource entity (§3): the
// attribute set identifying the telemetry producer. Every provider owns
// exactly one Resource; every record it emits inherits that Resource.
package resource

import "github.com/signalcore/otelsdk/attribute"

// Resource is an immutable attribute set.
type Resource struct {
	set attribute.Set
}

// Empty returns the zero Resource (no attributes).
func Empty() *Resource { return &Resource{} }

// NewWithAttributes builds a Resource from kvs.
func NewWithAttributes(kvs ...attribute.KeyValue) *Resource {
	return &Resource{set: attribute.NewSet(kvs...)}
}

// Attributes returns the Resource's attributes, sorted by key.
func (r *Resource) Attributes() []attribute.KeyValue {
	if r == nil {
		return nil
	}
	return r.set.ToSlice()
}

// Equivalent returns a comparable identity for the Resource, used to
// bucket records by Resource identity in the OTLP exporter (§4.8 grouping
// rules).
func (r *Resource) Equivalent() attribute.Distinct {
	if r == nil {
		return attribute.Set{}.Equivalent()
	}
	return r.set.Equivalent()
}

// Merge combines a and b, favoring b's value on key conflict (§3
// "merge(a,b) favors b").
func Merge(a, b *Resource) *Resource {
	var kvs []attribute.KeyValue
	if a != nil {
		kvs = append(kvs, a.Attributes()...)
	}
	if b != nil {
		kvs = append(kvs, b.Attributes()...)
	}
	return &Resource{set: attribute.NewSet(kvs...)}
}

// Detector discovers Resource attributes from the runtime environment.
// Platform/host auto-detection is out of scope (§1) — this is the bare
// interface external collaborators implement.
type Detector interface {
	Detect() (*Resource, error)
}
