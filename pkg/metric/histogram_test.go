package metric

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistogramObserve(t *testing.T) {
	h := NewHistogram(1, 5, 10)
	for _, v := range []float64{0.5, 3, 7, 20} {
		h.Observe(v)
	}

	require.Equal(t, 4, h.NumBuckets())
	want := []struct {
		upper float64
		count uint64
	}{{1, 1}, {5, 2}, {10, 3}, {math.Inf(1), 4}}
	for i, w := range want {
		upper, count := h.Bucket(i)
		assert.Equal(t, w.upper, upper, "bucket %d bound", i)
		assert.Equal(t, w.count, count, "bucket %d count", i)
	}
	assert.Equal(t, uint64(4), h.Count())
	assert.Equal(t, 30.5, h.Sum())
	assert.Equal(t, Uint(4), h.Number())
	assert.Equal(t, KindHistogram, h.Kind())
}

func TestHistogramBoundaryIsInclusive(t *testing.T) {
	h := NewHistogram(1, 5)
	h.Observe(5)
	_, c0 := h.Bucket(0)
	_, c1 := h.Bucket(1)
	assert.Equal(t, uint64(0), c0)
	assert.Equal(t, uint64(1), c1)
}

func TestHistogramNaN(t *testing.T) {
	h := NewHistogram(1)
	h.Observe(math.NaN())
	_, c0 := h.Bucket(0)
	_, inf := h.Bucket(1)
	assert.Equal(t, uint64(0), c0)
	assert.Equal(t, uint64(1), inf)
	assert.True(t, math.IsNaN(h.Sum()))
}

func TestHistogramNoBounds(t *testing.T) {
	h := NewHistogram()
	h.Observe(3)
	require.Equal(t, 1, h.NumBuckets())
	upper, count := h.Bucket(0)
	assert.True(t, math.IsInf(upper, 1))
	assert.Equal(t, uint64(1), count)
}

func TestNewHistogramPanics(t *testing.T) {
	assert.Panics(t, func() { NewHistogram(5, 1) })
	assert.Panics(t, func() { NewHistogram(1, 1) })
	assert.Panics(t, func() { NewHistogram(math.Inf(1)) })
	assert.Panics(t, func() { NewHistogram(math.NaN()) })
}

func TestHistogramConcurrentObserve(t *testing.T) {
	h := NewHistogram(10)
	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			for range 500 {
				h.Observe(1)
				h.Observe(100)
			}
		})
	}
	wg.Wait()
	_, low := h.Bucket(0)
	assert.Equal(t, uint64(4000), low)
	assert.Equal(t, uint64(8000), h.Count())
	assert.Equal(t, 404000.0, h.Sum())
}

func TestSummary(t *testing.T) {
	var s Summary
	s.Observe(1.5)
	s.Observe(2)
	assert.Equal(t, uint64(2), s.Count())
	assert.Equal(t, 3.5, s.Sum())
	assert.Equal(t, KindSummary, s.Kind())
	assert.Equal(t, Uint(2), s.Number())
}
