package metric

import (
	"sort"
	"sync"

	"github.com/signalcore/otelsdk/attribute"
	"github.com/signalcore/otelsdk/otelerror"
)

// Temporality selects whether an exported point represents a delta since
// the last collection or a cumulative total (§4.5).
type Temporality int

const (
	CumulativeTemporality Temporality = iota
	DeltaTemporality
)

// SumPoint is one exported data point from SumStorage.
type SumPoint struct {
	Attributes attribute.Set
	Value      float64
}

// SumStorage accumulates Counter/UpDownCounter values per attribute set
// (§4.5). Counter (isMonotonic) rejects negative deltas by dropping and
// logging, per spec.md's stated default; UpDownCounter accepts any sign.
type SumStorage struct {
	isMonotonic bool

	mu     sync.Mutex
	values map[attribute.Distinct]*sumEntry
}

type sumEntry struct {
	set attribute.Set
	sum float64
}

func NewSumStorage(isMonotonic bool) *SumStorage {
	return &SumStorage{isMonotonic: isMonotonic, values: make(map[attribute.Distinct]*sumEntry)}
}

// Add records a delta. It reports false (and does not apply the delta)
// when isMonotonic and delta < 0.
func (s *SumStorage) Add(set attribute.Set, delta float64) bool {
	if s.isMonotonic && delta < 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := set.Equivalent()
	e, ok := s.values[key]
	if !ok {
		e = &sumEntry{set: set}
		s.values[key] = e
	}
	e.sum += delta
	return true
}

// reset zeroes the running sum for set, used by observable UpDownCounter
// collection where each cycle reports an absolute value rather than a
// delta (§4.5 "absolute for Gauge/UpDown").
func (s *SumStorage) reset(set attribute.Set) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := set.Equivalent()
	if e, ok := s.values[key]; ok {
		e.sum = 0
	}
}

// Collect returns the current cumulative sum per attribute set. When temp
// is DeltaTemporality, each entry is reset to zero after being read.
func (s *SumStorage) Collect(temp Temporality) []SumPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	points := make([]SumPoint, 0, len(s.values))
	for _, e := range s.values {
		points = append(points, SumPoint{Attributes: e.set, Value: e.sum})
		if temp == DeltaTemporality {
			e.sum = 0
		}
	}
	sortSumPoints(points)
	return points
}

func sortSumPoints(points []SumPoint) {
	sort.Slice(points, func(i, j int) bool {
		return attrSetKey(points[i].Attributes) < attrSetKey(points[j].Attributes)
	})
}

// attrSetKey gives an attribute.Set a total order for deterministic
// Collect output; tests and OTLP encoding both want stable point
// ordering.
func attrSetKey(set attribute.Set) string { return attribute.Emit(set.ToSlice()) }

// HistogramPoint is one exported data point from HistogramStorage.
type HistogramPoint struct {
	Attributes   attribute.Set
	Count        uint64
	Sum          float64
	Min, Max     float64
	BucketCounts []uint64 // len == len(Bounds)+1; last is the +Inf overflow bucket
}

// HistogramStorage implements the bucket/count/sum/min/max aggregation
// from §4.5 and the exact scenario in §8 ("Bounds [0,5,10,25], record
// 3,7,7,30 → count=4 sum=47 bucketCounts=[0,1,2,0,1] min=3 max=30").
type HistogramStorage struct {
	bounds       []float64
	recordMinMax bool

	mu      sync.Mutex
	entries map[attribute.Distinct]*histogramEntry
}

type histogramEntry struct {
	set     attribute.Set
	count   uint64
	sum     float64
	min     float64
	max     float64
	buckets []uint64
	seen    bool
}

// NewHistogramStorage builds a HistogramStorage with strictly increasing
// bounds. Bounds out of order, or containing duplicates, is a
// ConfigurationError (§7): SearchFloat64s assumes a strictly increasing
// slice, so a caller's typo would otherwise misfile every recorded value
// into the wrong bucket without any visible failure.
func NewHistogramStorage(bounds []float64, recordMinMax bool) (*HistogramStorage, error) {
	for i := 1; i < len(bounds); i++ {
		if bounds[i] <= bounds[i-1] {
			return nil, otelerror.NewConfigurationError("metric: histogram bounds must be strictly increasing, got %v at index %d after %v", bounds[i], i, bounds[i-1])
		}
	}
	cp := make([]float64, len(bounds))
	copy(cp, bounds)
	return &HistogramStorage{bounds: cp, recordMinMax: recordMinMax, entries: make(map[attribute.Distinct]*histogramEntry)}, nil
}

// Record adds v to the bucket `min{i : v <= bounds[i]}`, or the overflow
// bucket len(bounds) when v exceeds every bound (§4.5, §8).
func (h *HistogramStorage) Record(set attribute.Set, v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	key := set.Equivalent()
	e, ok := h.entries[key]
	if !ok {
		e = &histogramEntry{set: set, buckets: make([]uint64, len(h.bounds)+1)}
		h.entries[key] = e
	}
	idx := sort.SearchFloat64s(h.bounds, v)
	e.buckets[idx]++
	e.count++
	e.sum += v
	if !e.seen {
		e.min, e.max = v, v
		e.seen = true
	} else {
		if v < e.min {
			e.min = v
		}
		if v > e.max {
			e.max = v
		}
	}
}

// Collect returns the current aggregation per attribute set. When temp is
// DeltaTemporality the entries are reset after being read.
func (h *HistogramStorage) Collect(temp Temporality) []HistogramPoint {
	h.mu.Lock()
	defer h.mu.Unlock()
	points := make([]HistogramPoint, 0, len(h.entries))
	for _, e := range h.entries {
		buckets := make([]uint64, len(e.buckets))
		copy(buckets, e.buckets)
		points = append(points, HistogramPoint{
			Attributes: e.set, Count: e.count, Sum: e.sum,
			Min: e.min, Max: e.max, BucketCounts: buckets,
		})
		if temp == DeltaTemporality {
			e.count, e.sum, e.min, e.max, e.seen = 0, 0, 0, 0, false
			for i := range e.buckets {
				e.buckets[i] = 0
			}
		}
	}
	sort.Slice(points, func(i, j int) bool {
		return attrSetKey(points[i].Attributes) < attrSetKey(points[j].Attributes)
	})
	return points
}

// Bounds returns the configured explicit bucket boundaries.
func (h *HistogramStorage) Bounds() []float64 {
	out := make([]float64, len(h.bounds))
	copy(out, h.bounds)
	return out
}

// GaugePoint is one exported data point from GaugeStorage.
type GaugePoint struct {
	Attributes attribute.Set
	Value      float64
}

// GaugeStorage holds the latest observed value per attribute set (§4.5);
// record(v) replaces the prior value unconditionally.
type GaugeStorage struct {
	mu     sync.Mutex
	values map[attribute.Distinct]*gaugeEntry
}

type gaugeEntry struct {
	set   attribute.Set
	value float64
}

func NewGaugeStorage() *GaugeStorage {
	return &GaugeStorage{values: make(map[attribute.Distinct]*gaugeEntry)}
}

func (g *GaugeStorage) Record(set attribute.Set, v float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	key := set.Equivalent()
	e, ok := g.values[key]
	if !ok {
		e = &gaugeEntry{set: set}
		g.values[key] = e
	}
	e.value = v
}

// Collect returns the latest value per attribute set. Gauges are never
// reset by Collect: their aggregation temporality is always "latest"
// (§4.5).
func (g *GaugeStorage) Collect() []GaugePoint {
	g.mu.Lock()
	defer g.mu.Unlock()
	points := make([]GaugePoint, 0, len(g.values))
	for _, e := range g.values {
		points = append(points, GaugePoint{Attributes: e.set, Value: e.value})
	}
	sort.Slice(points, func(i, j int) bool {
		return attrSetKey(points[i].Attributes) < attrSetKey(points[j].Attributes)
	})
	return points
}
