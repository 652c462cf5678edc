package openmetrics

import (
	"io"
	"iter"
	"math"
	"strconv"

	"github.com/neox5/fixedmetrics/pkg/metric"
)

// ContentType is the HTTP content type of the encoder output.
const ContentType = "application/openmetrics-text; version=1.0.0; charset=utf-8"

const (
	bufferSize = 512

	// maxNumberLen fits any uint64, int64 or shortest float64 rendering.
	maxNumberLen = 32
)

// Encoder streams registry contents to a writer. Output is staged in a
// fixed buffer and handed to the writer whenever the buffer fills, so a
// writer error surfaces at the next flush and ends the pass. The zero value
// is usable after Reset. An Encoder must not be used concurrently.
type Encoder struct {
	w   io.Writer
	buf [bufferSize]byte
	n   int
	err error
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	e := &Encoder{}
	e.Reset(w)
	return e
}

// Reset discards buffered state and directs output to w.
func (e *Encoder) Reset(w io.Writer) {
	e.w = w
	e.n = 0
	e.err = nil
}

// Encode writes every descriptor of r followed by the EOF marker. It stops
// at the first write error and returns it; output written before the error
// is left in place.
func (e *Encoder) Encode(r *metric.Registry) error {
	for d := r.First(); d != nil && e.err == nil; d = d.Next() {
		e.writeDesc(d)
	}
	return e.finish()
}

// EncodeSeq is like Encode but takes an arbitrary descriptor sequence.
func (e *Encoder) EncodeSeq(descs iter.Seq[*metric.Desc]) error {
	for d := range descs {
		if e.err != nil {
			break
		}
		e.writeDesc(d)
	}
	return e.finish()
}

// Encode writes r to w using a temporary Encoder.
func Encode(w io.Writer, r *metric.Registry) error {
	return NewEncoder(w).Encode(r)
}

func (e *Encoder) finish() error {
	if e.err == nil {
		e.writeString("# EOF\n")
	}
	e.flush()
	return e.err
}

func (e *Encoder) writeDesc(d *metric.Desc) {
	if d.Value == nil {
		return
	}
	kind := d.Value.Kind()

	e.writeString("# HELP ")
	e.writeString(d.Name)
	e.writeByte(' ')
	e.writeEscaped(d.Help, false)
	e.writeByte('\n')

	e.writeString("# TYPE ")
	e.writeString(d.Name)
	e.writeByte(' ')
	e.writeString(kind.String())
	e.writeByte('\n')

	if d.Unit != "" {
		e.writeString("# UNIT ")
		e.writeString(d.Name)
		e.writeByte(' ')
		e.writeString(d.Unit)
		e.writeByte('\n')
	}

	switch v := d.Value.(type) {
	case metric.Bucketed:
		// _count repeats the +Inf bucket read above, so a concurrent
		// Observe cannot make the two disagree.
		var total uint64
		for i := range v.NumBuckets() {
			upper, count := v.Bucket(i)
			e.writeBucket(d, upper, count)
			total = count
		}
		e.writeDistribution(d, total, v.Sum())
	case metric.Distribution:
		e.writeDistribution(d, v.Count(), v.Sum())
	default:
		e.writeSample(d, "", v.Number())
	}
}

func (e *Encoder) writeDistribution(d *metric.Desc, count uint64, sum float64) {
	e.writeSample(d, "_count", metric.Uint(count))
	e.writeSample(d, "_sum", metric.Float(sum))
}

func (e *Encoder) writeSample(d *metric.Desc, suffix string, n metric.Number) {
	e.writeString(d.Name)
	e.writeString(suffix)
	if len(d.Labels) > 0 {
		e.writeByte('{')
		e.writeLabels(d.Labels)
		e.writeByte('}')
	}
	e.writeByte(' ')
	e.writeNumber(n)
	e.writeByte('\n')
}

func (e *Encoder) writeBucket(d *metric.Desc, upper float64, count uint64) {
	e.writeString(d.Name)
	e.writeString("_bucket{")
	if len(d.Labels) > 0 {
		e.writeLabels(d.Labels)
		e.writeByte(',')
	}
	e.writeString(`le="`)
	e.writeFloat(upper)
	e.writeString(`"} `)
	e.writeNumber(metric.Uint(count))
	e.writeByte('\n')
}

func (e *Encoder) writeLabels(labels []metric.Label) {
	for i, l := range labels {
		if i > 0 {
			e.writeByte(',')
		}
		e.writeString(l.Name)
		e.writeString(`="`)
		e.writeEscaped(l.Value, true)
		e.writeByte('"')
	}
}

func (e *Encoder) writeNumber(n metric.Number) {
	switch n.Kind() {
	case metric.NumberUint:
		e.reserve(maxNumberLen)
		e.n += len(strconv.AppendUint(e.buf[e.n:e.n], n.Uint64(), 10))
	case metric.NumberInt:
		e.reserve(maxNumberLen)
		e.n += len(strconv.AppendInt(e.buf[e.n:e.n], n.Int64(), 10))
	default:
		e.writeFloat(n.Float64())
	}
}

func (e *Encoder) writeFloat(f float64) {
	switch {
	case math.IsNaN(f):
		e.writeString("NaN")
	case math.IsInf(f, 1):
		e.writeString("+Inf")
	case math.IsInf(f, -1):
		e.writeString("-Inf")
	default:
		e.reserve(maxNumberLen)
		e.n += len(strconv.AppendFloat(e.buf[e.n:e.n], f, 'g', -1, 64))
	}
}
