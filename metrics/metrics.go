// Package metrics defines conversion instrumentation decoupled from a metrics backend.
package metrics

// Timer measures the duration of an operation. Call ObserveDuration when
// the operation completes to record the elapsed time.
type Timer interface {
	// ObserveDuration records the elapsed time since the timer was created.
	ObserveDuration()
}

// Metrics records strategy pipeline outcomes
type Metrics interface {
	// Matched counts conversions produced by the named strategy.
	Matched(strategy string)
	// Unmatched counts conversions no strategy could produce.
	Unmatched()
	// Fault counts conversions that failed with an error.
	Fault()
	// MapDuration starts a timer around a top level mapping.
	MapDuration() Timer
}

type nopTimer struct{}

func (nopTimer) ObserveDuration() {}

type nopMetrics struct{}

func (nopMetrics) Matched(string) {}
func (nopMetrics) Unmatched()     {}
func (nopMetrics) Fault()         {}

func (nopMetrics) MapDuration() Timer { return nopTimer{} }

// Nop returns metrics discarding all observations
func Nop() Metrics {
	return nopMetrics{}
}
