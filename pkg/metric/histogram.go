package metric

import (
	"fmt"
	"math"
)

// Histogram counts observations into fixed cumulative buckets. Bucket
// bounds are set once by NewHistogram; Observe never allocates.
//
// Reads are not a snapshot: an Observe running between two reads can show
// up in one and not the other. Readers that need _count to match the +Inf
// bucket should take it from the last Bucket.
type Histogram struct {
	bounds  []float64
	buckets []Counter // len(bounds)+1, last is +Inf
	sum     floatCell
}

// NewHistogram returns a histogram with the given upper bounds and an
// implicit +Inf bucket. Bounds must be finite and strictly ascending;
// NewHistogram panics otherwise. It is intended for package-level
// initialization.
func NewHistogram(bounds ...float64) *Histogram {
	for i, b := range bounds {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			panic(fmt.Sprintf("metric: histogram bound %d is not finite: %v", i, b))
		}
		if i > 0 && b <= bounds[i-1] {
			panic(fmt.Sprintf("metric: histogram bounds not strictly ascending at %d: %v <= %v", i, b, bounds[i-1]))
		}
	}
	owned := make([]float64, len(bounds))
	copy(owned, bounds)
	return &Histogram{
		bounds:  owned,
		buckets: make([]Counter, len(bounds)+1),
	}
}

// Observe records v. Every bucket whose bound is >= v is incremented, as
// are the count and the sum. NaN only lands in the +Inf bucket.
func (h *Histogram) Observe(v float64) {
	for i := len(h.bounds) - 1; i >= 0; i-- {
		if !(v <= h.bounds[i]) {
			break
		}
		h.buckets[i].Inc()
	}
	h.buckets[len(h.bounds)].Inc()
	h.sum.add(v)
}

// Count returns the number of observations.
func (h *Histogram) Count() uint64 { return h.buckets[len(h.bounds)].Value() }

// Sum returns the sum of observations.
func (h *Histogram) Sum() float64 { return h.sum.load() }

// NumBuckets returns the number of buckets including +Inf.
func (h *Histogram) NumBuckets() int { return len(h.buckets) }

// Bucket returns the upper bound and cumulative count of bucket i.
func (h *Histogram) Bucket(i int) (float64, uint64) {
	if i == len(h.bounds) {
		return math.Inf(1), h.buckets[i].Value()
	}
	return h.bounds[i], h.buckets[i].Value()
}

// Kind implements Value.
func (h *Histogram) Kind() Kind { return KindHistogram }

// Number implements Value and reports the observation count.
func (h *Histogram) Number() Number { return Uint(h.Count()) }
