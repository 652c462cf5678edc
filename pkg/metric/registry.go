package metric

import (
	"fmt"
	"iter"
	"sync/atomic"
)

// Registry is an append-only chain of descriptors. The zero value is an
// empty registry ready for use, and a Registry must not be copied.
//
// Registration and traversal are lock-free and may run concurrently. A
// traversal observes every descriptor whose registration completed before
// the traversal started; descriptors registered concurrently may or may
// not be observed.
type Registry struct {
	head atomic.Pointer[Desc]
}

// Default is the process-wide registry used by the package-level helpers.
var Default Registry

// Register links d at the head of the registry. It returns false, leaving
// the registry unchanged, if d is nil or was already registered into this
// or any other registry.
func (r *Registry) Register(d *Desc) bool {
	if d == nil || !d.linked.CompareAndSwap(false, true) {
		return false
	}
	for {
		head := r.head.Load()
		d.next.Store(head)
		if r.head.CompareAndSwap(head, d) {
			return true
		}
	}
}

// MustRegister registers each descriptor and panics if one is nil, has no
// value or was already registered. It is meant for init functions.
func (r *Registry) MustRegister(ds ...*Desc) {
	for _, d := range ds {
		if d == nil {
			panic("metric: nil descriptor")
		}
		if d.Value == nil {
			panic(fmt.Sprintf("metric: descriptor %q has no value", d.Name))
		}
		if !r.Register(d) {
			panic(fmt.Sprintf("metric: descriptor %q already registered", d.Name))
		}
	}
}

// First returns the most recently registered descriptor, or nil. Together
// with Desc.Next it walks the registry without allocating.
func (r *Registry) First() *Desc { return r.head.Load() }

// All returns a restartable sequence over the registered descriptors,
// most recently registered first.
func (r *Registry) All() iter.Seq[*Desc] {
	return func(yield func(*Desc) bool) {
		for d := r.head.Load(); d != nil; d = d.next.Load() {
			if !yield(d) {
				return
			}
		}
	}
}

// Len walks the registry and returns the number of descriptors.
func (r *Registry) Len() int {
	n := 0
	for d := r.head.Load(); d != nil; d = d.next.Load() {
		n++
	}
	return n
}

// Register registers d into Default.
func Register(d *Desc) bool { return Default.Register(d) }

// MustRegister registers ds into Default and panics on failure.
func MustRegister(ds ...*Desc) { Default.MustRegister(ds...) }
