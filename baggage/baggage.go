// Package baggage implements the cross-cutting Baggage entity (§3) and its
// W3C wire encoding (§4.9). Baggage is propagated with Context but never
// copied onto spans.
package baggage

import (
	"errors"
	"net/url"
	"strings"
)

// Member is one Baggage entry: a name, its value, and optional metadata
// (carried verbatim, opaque to the SDK).
type Member struct {
	key, value, metadata string
}

var (
	errEmptyKey = errors.New("baggage: member key must not be empty")
)

// NewMember validates and builds a Member. value and metadata are stored
// as given; percent-encoding happens only at the wire boundary.
func NewMember(key, value string, metadata ...string) (Member, error) {
	if key == "" {
		return Member{}, errEmptyKey
	}
	m := Member{key: key, value: value}
	if len(metadata) > 0 {
		m.metadata = strings.Join(metadata, ";")
	}
	return m, nil
}

func (m Member) Key() string      { return m.key }
func (m Member) Value() string    { return m.value }
func (m Member) Metadata() string { return m.metadata }

// Baggage is an ordered, key-unique mapping of Members. The zero value is an
// empty Baggage.
type Baggage struct {
	list []Member
}

// New builds a Baggage from members, keeping the last occurrence of any
// repeated key and limiting to 180 members per the W3C Baggage spec's
// recommended bound. The total byte size of the members is not checked.
func New(members ...Member) (Baggage, error) {
	if len(members) > 180 {
		return Baggage{}, errors.New("baggage: too many members")
	}
	seen := make(map[string]int, len(members))
	list := make([]Member, 0, len(members))
	for _, m := range members {
		if m.key == "" {
			return Baggage{}, errEmptyKey
		}
		if idx, ok := seen[m.key]; ok {
			list[idx] = m
			continue
		}
		seen[m.key] = len(list)
		list = append(list, m)
	}
	return Baggage{list: list}, nil
}

// Members returns the Baggage's entries in insertion order.
func (b Baggage) Members() []Member {
	out := make([]Member, len(b.list))
	copy(out, b.list)
	return out
}

// Member looks up a single entry by key.
func (b Baggage) Member(key string) (Member, bool) {
	for _, m := range b.list {
		if m.key == key {
			return m, true
		}
	}
	return Member{}, false
}

// SetMember returns a new Baggage with m inserted or replacing an existing
// entry of the same key. Baggage is immutable; this never mutates b.
func (b Baggage) SetMember(m Member) (Baggage, error) {
	list := make([]Member, 0, len(b.list)+1)
	replaced := false
	for _, existing := range b.list {
		if existing.key == m.key {
			list = append(list, m)
			replaced = true
			continue
		}
		list = append(list, existing)
	}
	if !replaced {
		list = append(list, m)
	}
	return New(list...)
}

// DeleteMember returns a new Baggage without the named key.
func (b Baggage) DeleteMember(key string) Baggage {
	list := make([]Member, 0, len(b.list))
	for _, m := range b.list {
		if m.key != key {
			list = append(list, m)
		}
	}
	return Baggage{list: list}
}

func (b Baggage) Len() int { return len(b.list) }

// String renders Baggage as the W3C "baggage" header value:
// k1=v1,k2=v2;prop=x,... with percent-encoding of reserved characters.
func (b Baggage) String() string {
	parts := make([]string, 0, len(b.list))
	for _, m := range b.list {
		s := encodeToken(m.key) + "=" + encodeValue(m.value)
		if m.metadata != "" {
			s += ";" + m.metadata
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ",")
}

// Parse decodes a W3C "baggage" header value into a Baggage. Malformed
// members are skipped rather than failing the whole header, matching the
// propagator's "best effort" extraction philosophy (§4.9).
func Parse(header string) (Baggage, error) {
	var members []Member
	for _, raw := range strings.Split(header, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		kvPart := raw
		metadata := ""
		if i := strings.Index(raw, ";"); i >= 0 {
			kvPart = raw[:i]
			metadata = raw[i+1:]
		}
		eq := strings.Index(kvPart, "=")
		if eq < 0 {
			continue
		}
		key, err := url.QueryUnescape(strings.TrimSpace(kvPart[:eq]))
		if err != nil || key == "" {
			continue
		}
		value, err := url.QueryUnescape(strings.TrimSpace(kvPart[eq+1:]))
		if err != nil {
			continue
		}
		members = append(members, Member{key: key, value: value, metadata: metadata})
	}
	return New(members...)
}

func encodeToken(s string) string { return url.QueryEscape(s) }
func encodeValue(s string) string { return url.QueryEscape(s) }
