package trace

import (
	"encoding/binary"
	"math"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/signalcore/otelsdk/attribute"
	"github.com/signalcore/otelsdk/otelerror"
	sdktrace "github.com/signalcore/otelsdk/trace"
)

// SamplingDecision is the outcome of a Sampler's shouldSample call (§4.2).
type SamplingDecision int

const (
	Drop SamplingDecision = iota
	RecordOnly
	RecordAndSample
)

// SamplingParameters is the argument bag passed to Sampler.ShouldSample.
type SamplingParameters struct {
	ParentContext sdktrace.SpanContext
	TraceID       sdktrace.TraceID
	Name          string
	Kind          sdktrace.SpanKind
	Attributes    []attribute.KeyValue
	Links         []sdktrace.Link
}

// SamplingResult is a Sampler's verdict: a decision plus attributes/
// tracestate to merge into the span being started.
type SamplingResult struct {
	Decision       SamplingDecision
	Attributes     []attribute.KeyValue
	TraceState     sdktrace.TraceState
}

// Sampler decides whether a new span records and/or is marked sampled
// (§4.2).
type Sampler interface {
	ShouldSample(p SamplingParameters) SamplingResult
	Description() string
}

// --- AlwaysOn / AlwaysOff ---

type alwaysOnSampler struct{}

func AlwaysOn() Sampler { return alwaysOnSampler{} }

func (alwaysOnSampler) ShouldSample(p SamplingParameters) SamplingResult {
	return SamplingResult{Decision: RecordAndSample, TraceState: p.ParentContext.TraceState()}
}
func (alwaysOnSampler) Description() string { return "AlwaysOnSampler" }

type alwaysOffSampler struct{}

func AlwaysOff() Sampler { return alwaysOffSampler{} }

func (alwaysOffSampler) ShouldSample(p SamplingParameters) SamplingResult {
	return SamplingResult{Decision: Drop, TraceState: p.ParentContext.TraceState()}
}
func (alwaysOffSampler) Description() string { return "AlwaysOffSampler" }

// --- TraceIdRatio ---

type traceIDRatioSampler struct {
	ratio     float64
	threshold uint64
}

// TraceIDRatioBased samples deterministically from the low 64 bits of the
// trace ID: identical trace ID yields an identical decision everywhere
// (§4.2, §8). ratio outside [0, 1] is a ConfigurationError (§7): it is
// never silently clamped, since a caller who mistypes 50 meaning "50%"
// instead of 0.5 deserves to find out at construction time, not discover a
// trace sampled at 100% in production.
func TraceIDRatioBased(ratio float64) (Sampler, error) {
	if ratio < 0 || ratio > 1 {
		return nil, otelerror.NewConfigurationError("trace: TraceIDRatioBased ratio %v out of range [0, 1]", ratio)
	}
	var threshold uint64
	switch ratio {
	case 0:
		threshold = 0
	case 1:
		threshold = math.MaxUint64
	default:
		threshold = uint64(ratio * float64(math.MaxUint64))
	}
	return &traceIDRatioSampler{ratio: ratio, threshold: threshold}, nil
}

func (s *traceIDRatioSampler) ShouldSample(p SamplingParameters) SamplingResult {
	x := binary.BigEndian.Uint64(p.TraceID[8:16])
	decision := Drop
	if x <= s.threshold {
		decision = RecordAndSample
	}
	return SamplingResult{Decision: decision, TraceState: p.ParentContext.TraceState()}
}

func (s *traceIDRatioSampler) Description() string {
	return "TraceIdRatioBased{" + formatRatio(s.ratio) + "}"
}

func formatRatio(r float64) string {
	buf := make([]byte, 0, 8)
	buf = appendFloat(buf, r)
	return string(buf)
}

func appendFloat(buf []byte, f float64) []byte {
	// ratios are always in [0,1]; a handful of fixed decimal places is
	// enough for a human-readable Description().
	scaled := int64(f*1e6 + 0.5)
	whole := scaled / 1e6
	frac := scaled % 1e6
	buf = appendInt(buf, whole)
	buf = append(buf, '.')
	fracStr := appendInt(nil, frac)
	for len(fracStr) < 6 {
		fracStr = append([]byte{'0'}, fracStr...)
	}
	return append(buf, fracStr...)
}

func appendInt(buf []byte, n int64) []byte {
	if n == 0 {
		return append(buf, '0')
	}
	var tmp [20]byte
	i := len(tmp)
	neg := n < 0
	if neg {
		n = -n
	}
	for n > 0 {
		i--
		tmp[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		tmp[i] = '-'
	}
	return append(buf, tmp[i:]...)
}

// --- ParentBased ---

type parentBasedSampler struct {
	root             Sampler
	remoteSampled    Sampler
	remoteNotSampled Sampler
	localSampled     Sampler
	localNotSampled  Sampler
}

// ParentBasedOption configures ParentBased's delegate samplers.
type ParentBasedOption func(*parentBasedSampler)

func WithRemoteParentSampled(s Sampler) ParentBasedOption {
	return func(p *parentBasedSampler) { p.remoteSampled = s }
}
func WithRemoteParentNotSampled(s Sampler) ParentBasedOption {
	return func(p *parentBasedSampler) { p.remoteNotSampled = s }
}
func WithLocalParentSampled(s Sampler) ParentBasedOption {
	return func(p *parentBasedSampler) { p.localSampled = s }
}
func WithLocalParentNotSampled(s Sampler) ParentBasedOption {
	return func(p *parentBasedSampler) { p.localNotSampled = s }
}

// ParentBased selects a delegate by (parent exists?, isRemote, sampled)
// (§4.2). When no parent exists, root decides.
func ParentBased(root Sampler, opts ...ParentBasedOption) Sampler {
	p := &parentBasedSampler{
		root:             root,
		remoteSampled:    AlwaysOn(),
		remoteNotSampled: AlwaysOff(),
		localSampled:     AlwaysOn(),
		localNotSampled:  AlwaysOff(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *parentBasedSampler) ShouldSample(params SamplingParameters) SamplingResult {
	psc := params.ParentContext
	if !psc.IsValid() {
		return p.root.ShouldSample(params)
	}
	switch {
	case psc.IsRemote() && psc.IsSampled():
		return p.remoteSampled.ShouldSample(params)
	case psc.IsRemote() && !psc.IsSampled():
		return p.remoteNotSampled.ShouldSample(params)
	case !psc.IsRemote() && psc.IsSampled():
		return p.localSampled.ShouldSample(params)
	default:
		return p.localNotSampled.ShouldSample(params)
	}
}

func (p *parentBasedSampler) Description() string {
	return "ParentBased{root=" + p.root.Description() + "}"
}

// --- RateLimiting ---

type rateLimitingSampler struct {
	limiter *rate.Limiter
}

// RateLimiting admits at most perWindow decisions per window via a token
// bucket (§4.2); extras Drop. A window <= 0 is treated as one second.
func RateLimiting(perWindow int, window time.Duration) Sampler {
	if window <= 0 {
		window = time.Second
	}
	ratePerSecond := float64(perWindow) / window.Seconds()
	return &rateLimitingSampler{limiter: rate.NewLimiter(rate.Limit(ratePerSecond), perWindow)}
}

func (s *rateLimitingSampler) ShouldSample(p SamplingParameters) SamplingResult {
	decision := Drop
	if s.limiter.Allow() {
		decision = RecordAndSample
	}
	return SamplingResult{Decision: decision, TraceState: p.ParentContext.TraceState()}
}

func (s *rateLimitingSampler) Description() string { return "RateLimitingSampler" }

// --- Composite ---

// CompositeMode selects AND/OR short-circuiting for Composite.
type CompositeMode int

const (
	CompositeAND CompositeMode = iota
	CompositeOR
)

type compositeSampler struct {
	mode     CompositeMode
	samplers []Sampler
}

// Composite combines samplers, short-circuiting on the first Drop (AND) or
// first RecordAndSample (OR) (§4.2). The winning sampler's attributes and
// trace state are used.
func Composite(mode CompositeMode, samplers ...Sampler) Sampler {
	return &compositeSampler{mode: mode, samplers: samplers}
}

func (c *compositeSampler) ShouldSample(p SamplingParameters) SamplingResult {
	if len(c.samplers) == 0 {
		return SamplingResult{Decision: Drop, TraceState: p.ParentContext.TraceState()}
	}
	var last SamplingResult
	for _, s := range c.samplers {
		last = s.ShouldSample(p)
		if c.mode == CompositeAND && last.Decision == Drop {
			return last
		}
		if c.mode == CompositeOR && last.Decision == RecordAndSample {
			return last
		}
	}
	return last
}

func (c *compositeSampler) Description() string {
	if c.mode == CompositeAND {
		return "CompositeAND"
	}
	return "CompositeOR"
}

// --- Counting ---

// CountingOverride is consulted on every call; a true return forces a
// sample regardless of the counter (§4.2 "overrideConditions").
type CountingOverride func(p SamplingParameters) bool

type countingSampler struct {
	everyN    uint64
	overrides []CountingOverride
	counter   atomic.Uint64
}

// Counting samples every Nth call unless an override forces a sample
// (§4.2). everyN < 1 is treated as 1 (sample every call).
func Counting(everyN uint64, overrides ...CountingOverride) Sampler {
	if everyN < 1 {
		everyN = 1
	}
	return &countingSampler{everyN: everyN, overrides: overrides}
}

func (c *countingSampler) ShouldSample(p SamplingParameters) SamplingResult {
	for _, o := range c.overrides {
		if o(p) {
			return SamplingResult{Decision: RecordAndSample, TraceState: p.ParentContext.TraceState()}
		}
	}
	n := c.counter.Add(1)
	decision := Drop
	if n%c.everyN == 0 {
		decision = RecordAndSample
	}
	return SamplingResult{Decision: decision, TraceState: p.ParentContext.TraceState()}
}

func (c *countingSampler) Description() string { return "CountingSampler" }

// AttributePredicateOverride is a CountingOverride forcing a sample whenever
// a start-time attribute under key satisfies match; attributes only reflect
// start-time state per §4.2's "attribute predicate" override kind.
func AttributePredicateOverride(key attribute.Key, match func(attribute.Value) bool) CountingOverride {
	return func(p SamplingParameters) bool {
		for _, kv := range p.Attributes {
			if kv.Key == key && match(kv.Value) {
				return true
			}
		}
		return false
	}
}

// NamePatternOverride forces a sample when Name matches pred.
func NamePatternOverride(pred func(name string) bool) CountingOverride {
	return func(p SamplingParameters) bool { return pred(p.Name) }
}
