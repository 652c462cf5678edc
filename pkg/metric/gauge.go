package metric

import (
	"math"
	"sync/atomic"
)

// floatCell is an atomically updated float64 stored as IEEE-754 bits.
type floatCell struct {
	bits atomic.Uint64
}

func (f *floatCell) load() float64 { return math.Float64frombits(f.bits.Load()) }

func (f *floatCell) store(v float64) { f.bits.Store(math.Float64bits(v)) }

func (f *floatCell) add(delta float64) {
	for {
		old := f.bits.Load()
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if f.bits.CompareAndSwap(old, next) {
			return
		}
	}
}

// Gauge is a floating point value that can go up and down. The zero value
// is ready to use and reads 0.
type Gauge struct {
	cell floatCell
}

// Set replaces the current value.
func (g *Gauge) Set(v float64) { g.cell.store(v) }

// Add adds delta, which may be negative.
func (g *Gauge) Add(delta float64) { g.cell.add(delta) }

// Inc adds one.
func (g *Gauge) Inc() { g.cell.add(1) }

// Dec subtracts one.
func (g *Gauge) Dec() { g.cell.add(-1) }

// Value returns the current value.
func (g *Gauge) Value() float64 { return g.cell.load() }

// Kind implements Value.
func (g *Gauge) Kind() Kind { return KindGauge }

// Number implements Value.
func (g *Gauge) Number() Number { return Float(g.cell.load()) }

// IntGauge is a signed integer gauge. Overflow wraps with two's complement
// semantics.
type IntGauge struct {
	v atomic.Int64
}

// Set replaces the current value.
func (g *IntGauge) Set(v int64) { g.v.Store(v) }

// Add adds delta, which may be negative.
func (g *IntGauge) Add(delta int64) { g.v.Add(delta) }

// Inc adds one.
func (g *IntGauge) Inc() { g.v.Add(1) }

// Dec subtracts one.
func (g *IntGauge) Dec() { g.v.Add(-1) }

// Value returns the current value.
func (g *IntGauge) Value() int64 { return g.v.Load() }

// Kind implements Value.
func (g *IntGauge) Kind() Kind { return KindGauge }

// Number implements Value.
func (g *IntGauge) Number() Number { return Int(g.v.Load()) }
