package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncAPIRequest is a no-op.
func (n *NoopRecorder) IncAPIRequest(backend, method string) {}

// IncAPIResponse is a no-op.
func (n *NoopRecorder) IncAPIResponse(backend, outcome string) {}

// ObserveAPIDuration is a no-op.
func (n *NoopRecorder) ObserveAPIDuration(backend string, duration time.Duration) {}
