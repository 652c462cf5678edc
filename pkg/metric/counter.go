package metric

import "sync/atomic"

// Counter is a monotonically increasing unsigned counter. The zero value is
// ready to use.
//
// The cell is 64 bits wide on every target and wraps around modulo 2^64 on
// overflow. Wraparound is not reported; scrapers see it as a counter reset.
// On targets without a native 64-bit read-modify-write instruction the Go
// runtime serializes the update with a short spin-guarded critical section.
type Counter struct {
	v atomic.Uint64
}

// Inc adds one to the counter.
func (c *Counter) Inc() { c.v.Add(1) }

// Add adds n to the counter.
func (c *Counter) Add(n uint64) { c.v.Add(n) }

// Value returns the current count.
func (c *Counter) Value() uint64 { return c.v.Load() }

// Kind implements Value.
func (c *Counter) Kind() Kind { return KindCounter }

// Number implements Value.
func (c *Counter) Number() Number { return Uint(c.v.Load()) }
