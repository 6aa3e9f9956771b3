// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Outcome labels for completed API calls.
const (
	OutcomeSuccess        = "success"
	OutcomeClientError    = "client_error"
	OutcomeServerError    = "server_error"
	OutcomeTransportError = "transport_error"
	// OutcomeDecodeError is a 2xx response whose body could not be decoded.
	OutcomeDecodeError    = "decode_error"
)

// Recorder captures metric events for the user API client.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	IncAPIRequest(backend, method string)
	IncAPIResponse(backend, outcome string)
	ObserveAPIDuration(backend string, duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}

// OutcomeForStatus maps an HTTP status to an outcome label.
// Status zero means no response was received.
func OutcomeForStatus(status int) string {
	switch {
	case status == 0:
		return OutcomeTransportError
	case status >= 500:
		return OutcomeServerError
	case status >= 400:
		return OutcomeClientError
	default:
		return OutcomeSuccess
	}
}
