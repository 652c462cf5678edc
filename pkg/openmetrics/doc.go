// Package openmetrics renders a metric.Registry in the OpenMetrics text
// exposition format.
//
// An Encoder owns a fixed-size buffer and writes through an io.Writer.
// Keeping one Encoder for the lifetime of the process makes an encode
// pass allocation-free:
//
//	var enc openmetrics.Encoder
//
//	func scrape(w io.Writer) error {
//		enc.Reset(w)
//		return enc.Encode(&metric.Default)
//	}
//
// Each descriptor produces HELP (when help is set), TYPE and UNIT (when unit
// is set) lines followed by its samples. Names are rendered verbatim; no
// suffix is appended to counters or gauges. Histograms produce _bucket
// samples with an le label followed by _count and _sum, summaries produce
// _count and _sum. Output ends with a single "# EOF" line.
package openmetrics
