// Package idgenerator produces the random TraceId/SpanId identifiers spans
// carry (§4.1). The default generator is seedable so tests get reproducible
// IDs — math/rand's explicit *rand.Rand satisfies that directly; it is used
// in place of a UUID library because a UUID's fixed version/variant bits
// would conflict with "arbitrary random 128 bits" and UUID libraries in
// this corpus don't expose a reseedable source (see DESIGN.md).
package idgenerator

import (
	"math/rand"
	"sync"

	"github.com/signalcore/otelsdk/trace"
)

// IDGenerator produces new trace and span identifiers. Implementations must
// be safe for concurrent use.
type IDGenerator interface {
	NewTraceID() trace.TraceID
	NewSpanID() trace.SpanID
}

// Random is the default IDGenerator: seedable for reproducible tests,
// regenerates on an (astronomically unlikely) all-zero draw (§4.1). It is
// safe for concurrent use; every call takes one shared mutex, so
// concurrent callers contend for it.
type Random struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandom returns a Random generator seeded from seed. Passing the same
// seed across two Randoms yields the same ID sequence.
func NewRandom(seed int64) *Random {
	return &Random{rnd: rand.New(rand.NewSource(seed))}
}

// NewDefault builds a Random generator from time-seeded entropy,
// suitable for production use.
func NewDefault() *Random {
	return NewRandom(defaultSeed())
}

func (g *Random) NewTraceID() trace.TraceID {
	g.mu.Lock()
	defer g.mu.Unlock()
	var id trace.TraceID
	for {
		g.rnd.Read(id[:])
		if id.IsValid() {
			return id
		}
	}
}

func (g *Random) NewSpanID() trace.SpanID {
	g.mu.Lock()
	defer g.mu.Unlock()
	var id trace.SpanID
	for {
		g.rnd.Read(id[:])
		if id.IsValid() {
			return id
		}
	}
}
