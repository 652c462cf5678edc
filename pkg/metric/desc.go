package metric

import "sync/atomic"

// Label is a name/value pair attached to every sample of a descriptor.
type Label struct {
	Name  string
	Value string
}

// Desc is the static metadata of one metric and the link to its live
// value. A Desc is declared once, usually as a package-level variable, and
// must not be copied after it has been registered.
type Desc struct {
	Name   string
	Help   string
	Unit   string
	Labels []Label
	Value  Value

	// next is written before the descriptor is published at the head of
	// a registry and never afterwards.
	next   atomic.Pointer[Desc]
	linked atomic.Bool
}

// Next returns the descriptor registered before d, or nil at the end of
// the chain.
func (d *Desc) Next() *Desc { return d.next.Load() }

// Registered reports whether d has been linked into a registry.
func (d *Desc) Registered() bool { return d.linked.Load() }
