/*
Package metric provides allocation-free metric primitives and a lock-free,
append-only registry of metric descriptors.

Primitives and descriptors are meant to be declared as package-level
variables and live for the whole process:

	var (
		requests     metric.Counter
		requestsDesc = metric.Desc{
			Name:   "http_requests",
			Help:   "Requests handled.",
			Labels: []metric.Label{{Name: "handler", Value: "api"}},
			Value:  &requests,
		}
	)

	func init() {
		metric.MustRegister(&requestsDesc)
	}

	func handle() {
		requests.Inc()
	}

# Preconditions

The registry performs no allocation and keeps no side tables, so the
following are caller obligations and are not checked at runtime:

  - descriptor names are unique within a registry
  - a descriptor outlives every registry it is linked into
  - label names are valid exposition label names
  - when Unit is set, Name ends in "_" followed by the unit

Registering a descriptor a second time, into the same or a different
registry, is detected through a per-descriptor flag and ignored.

# Ordering

Registration inserts at the head of the chain. Traversal therefore yields
descriptors most-recently-registered first, and this order is stable for a
given registration sequence.
*/
package metric
