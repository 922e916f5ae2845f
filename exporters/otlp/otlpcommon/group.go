package otlpcommon

import (
	"github.com/signalcore/otelsdk/attribute"
	"github.com/signalcore/otelsdk/resource"
)

// Scope identifies an InstrumentationScope for grouping purposes.
type Scope struct {
	Name, Version, SchemaURL string
}

// ScopeGroup buckets records sharing one InstrumentationScope within one
// Resource.
type ScopeGroup[T any] struct {
	Scope   Scope
	Records []T
}

// ResourceGroup buckets ScopeGroups sharing one Resource, preserving the
// §4.8 rule that export requests bucket first by Resource identity, then
// by InstrumentationScope.
type ResourceGroup[T any] struct {
	Resource *resource.Resource
	Scopes   []ScopeGroup[T]
}

// GroupByResourceAndScope buckets items first by resource identity, then
// by instrumentation scope, preserving first-seen order within and across
// buckets so output is deterministic for a given input order.
func GroupByResourceAndScope[T any](items []T, resourceOf func(T) *resource.Resource, scopeOf func(T) Scope) []ResourceGroup[T] {
	var groups []ResourceGroup[T]
	resIndex := map[attribute.Distinct]int{}

	for _, item := range items {
		res := resourceOf(item)
		key := res.Equivalent()
		gi, ok := resIndex[key]
		if !ok {
			gi = len(groups)
			resIndex[key] = gi
			groups = append(groups, ResourceGroup[T]{Resource: res})
		}

		scope := scopeOf(item)
		scopes := groups[gi].Scopes
		si := -1
		for i, sg := range scopes {
			if sg.Scope == scope {
				si = i
				break
			}
		}
		if si == -1 {
			si = len(scopes)
			groups[gi].Scopes = append(groups[gi].Scopes, ScopeGroup[T]{Scope: scope})
		}
		groups[gi].Scopes[si].Records = append(groups[gi].Scopes[si].Records, item)
	}
	return groups
}
