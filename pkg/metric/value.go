package metric

// Value is anything that can report a current reading and its kind.
// Implementations must be safe for concurrent use and must not allocate.
type Value interface {
	Kind() Kind
	Number() Number
}

// Distribution is a multi-sample value exposing an observation count and
// the sum of observations. Number reports the count.
type Distribution interface {
	Value
	Count() uint64
	Sum() float64
}

// Bucketed is a Distribution with cumulative buckets. Bucket i returns the
// upper bound and the number of observations less than or equal to it. The
// last bucket has an upper bound of +Inf.
type Bucketed interface {
	Distribution
	NumBuckets() int
	Bucket(i int) (upper float64, cumulative uint64)
}

var (
	_ Value        = (*Counter)(nil)
	_ Value        = (*Gauge)(nil)
	_ Value        = (*IntGauge)(nil)
	_ Bucketed     = (*Histogram)(nil)
	_ Distribution = (*Summary)(nil)
)
