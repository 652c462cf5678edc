package metric

// Summary tracks the count and sum of observations without quantiles.
// The zero value is ready to use.
type Summary struct {
	count Counter
	sum   floatCell
}

// Observe records v.
func (s *Summary) Observe(v float64) {
	s.count.Inc()
	s.sum.add(v)
}

// Count returns the number of observations.
func (s *Summary) Count() uint64 { return s.count.Value() }

// Sum returns the sum of observations.
func (s *Summary) Sum() float64 { return s.sum.load() }

// Kind implements Value.
func (s *Summary) Kind() Kind { return KindSummary }

// Number implements Value and reports the observation count.
func (s *Summary) Number() Number { return Uint(s.count.Value()) }
