package metric

import "math"

// NumberKind tells how the bits of a Number are interpreted.
type NumberKind uint8

const (
	NumberUint NumberKind = iota
	NumberInt
	NumberFloat
)

// Number is a point-in-time numeric reading. It is a plain value type and
// never allocates.
type Number struct {
	kind NumberKind
	bits uint64
}

// Uint returns an unsigned Number.
func Uint(v uint64) Number { return Number{kind: NumberUint, bits: v} }

// Int returns a signed Number.
func Int(v int64) Number { return Number{kind: NumberInt, bits: uint64(v)} }

// Float returns a floating point Number.
func Float(v float64) Number { return Number{kind: NumberFloat, bits: math.Float64bits(v)} }

// Kind returns the representation of n.
func (n Number) Kind() NumberKind { return n.kind }

// IsFloat reports whether n holds a floating point value.
func (n Number) IsFloat() bool { return n.kind == NumberFloat }

// Uint64 returns n as an unsigned integer. Negative and fractional values
// are converted with Go conversion rules.
func (n Number) Uint64() uint64 {
	switch n.kind {
	case NumberInt:
		return uint64(int64(n.bits))
	case NumberFloat:
		return uint64(math.Float64frombits(n.bits))
	default:
		return n.bits
	}
}

// Int64 returns n as a signed integer.
func (n Number) Int64() int64 {
	switch n.kind {
	case NumberFloat:
		return int64(math.Float64frombits(n.bits))
	default:
		return int64(n.bits)
	}
}

// Float64 returns n as a float.
func (n Number) Float64() float64 {
	switch n.kind {
	case NumberUint:
		return float64(n.bits)
	case NumberInt:
		return float64(int64(n.bits))
	default:
		return math.Float64frombits(n.bits)
	}
}
