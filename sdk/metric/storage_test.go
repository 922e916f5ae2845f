package metric

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/signalcore/otelsdk/attribute"
)

// Scenario 4 (§8): bounds [0,5,10,25], record 3,7,7,30 → count=4 sum=47
// bucketCounts=[0,1,2,0,1] min=3 max=30.
func TestHistogramAggregationScenario(t *testing.T) {
	h, err := NewHistogramStorage([]float64{0, 5, 10, 25}, true)
	assert.NoError(t, err)
	set := attribute.NewSet()
	for _, v := range []float64{3, 7, 7, 30} {
		h.Record(set, v)
	}
	points := h.Collect(CumulativeTemporality)
	assert.Len(t, points, 1)
	p := points[0]
	assert.Equal(t, uint64(4), p.Count)
	assert.Equal(t, 47.0, p.Sum)
	assert.Equal(t, []uint64{0, 1, 2, 0, 1}, p.BucketCounts)
	assert.Equal(t, 3.0, p.Min)
	assert.Equal(t, 30.0, p.Max)
}

func TestHistogramRejectsNonIncreasingBounds(t *testing.T) {
	_, err := NewHistogramStorage([]float64{0, 10, 5}, true)
	assert.Error(t, err)
}

func TestCounterCumulativeSum(t *testing.T) {
	s := NewSumStorage(true)
	set := attribute.NewSet(attribute.String("k", "v"))
	for _, v := range []float64{1, 2, 3} {
		assert.True(t, s.Add(set, v))
	}
	points := s.Collect(CumulativeTemporality)
	assert.Len(t, points, 1)
	assert.Equal(t, 6.0, points[0].Value)
}

func TestCounterRejectsNegative(t *testing.T) {
	s := NewSumStorage(true)
	set := attribute.NewSet()
	assert.False(t, s.Add(set, -1))
	assert.Empty(t, s.Collect(CumulativeTemporality))
}

func TestUpDownCounterAcceptsNegative(t *testing.T) {
	s := NewSumStorage(false)
	set := attribute.NewSet()
	s.Add(set, 5)
	s.Add(set, -2)
	points := s.Collect(CumulativeTemporality)
	assert.Equal(t, 3.0, points[0].Value)
}

func TestDeltaTemporalityResetsAfterCollect(t *testing.T) {
	s := NewSumStorage(true)
	set := attribute.NewSet()
	s.Add(set, 5)
	first := s.Collect(DeltaTemporality)
	assert.Equal(t, 5.0, first[0].Value)
	s.Add(set, 2)
	second := s.Collect(DeltaTemporality)
	assert.Equal(t, 2.0, second[0].Value)
}

func TestGaugeReplacesValue(t *testing.T) {
	g := NewGaugeStorage()
	set := attribute.NewSet()
	g.Record(set, 1)
	g.Record(set, 42)
	points := g.Collect()
	assert.Equal(t, 42.0, points[0].Value)
}

func TestSeparateAttributeSetsAggregateIndependently(t *testing.T) {
	s := NewSumStorage(true)
	a := attribute.NewSet(attribute.String("route", "/a"))
	b := attribute.NewSet(attribute.String("route", "/b"))
	s.Add(a, 1)
	s.Add(b, 1)
	s.Add(a, 1)
	points := s.Collect(CumulativeTemporality)
	assert.Len(t, points, 2)
}
