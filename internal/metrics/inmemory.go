package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	Requests        uint64
	Successes       uint64
	ClientErrors    uint64
	ServerErrors    uint64
	TransportErrors uint64
	DecodeErrors    uint64
	DurationCount   uint64
	DurationTotalNs int64
}

// InMemoryRecorder stores metrics in memory. Labels are not kept.
type InMemoryRecorder struct {
	requests        uint64
	successes       uint64
	clientErrors    uint64
	serverErrors    uint64
	transportErrors uint64
	decodeErrors    uint64
	durationCount   uint64
	durationTotalNs int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		Requests:        atomic.LoadUint64(&m.requests),
		Successes:       atomic.LoadUint64(&m.successes),
		ClientErrors:    atomic.LoadUint64(&m.clientErrors),
		ServerErrors:    atomic.LoadUint64(&m.serverErrors),
		TransportErrors: atomic.LoadUint64(&m.transportErrors),
		DecodeErrors:    atomic.LoadUint64(&m.decodeErrors),
		DurationCount:   atomic.LoadUint64(&m.durationCount),
		DurationTotalNs: atomic.LoadInt64(&m.durationTotalNs),
	}
}

// IncAPIRequest increments the request counter.
func (m *InMemoryRecorder) IncAPIRequest(backend, method string) {
	atomic.AddUint64(&m.requests, 1)
}

// IncAPIResponse increments the counter for outcome.
func (m *InMemoryRecorder) IncAPIResponse(backend, outcome string) {
	switch outcome {
	case OutcomeSuccess:
		atomic.AddUint64(&m.successes, 1)
	case OutcomeClientError:
		atomic.AddUint64(&m.clientErrors, 1)
	case OutcomeServerError:
		atomic.AddUint64(&m.serverErrors, 1)
	case OutcomeTransportError:
		atomic.AddUint64(&m.transportErrors, 1)
	case OutcomeDecodeError:
		atomic.AddUint64(&m.decodeErrors, 1)
	}
}

// ObserveAPIDuration records call duration.
func (m *InMemoryRecorder) ObserveAPIDuration(backend string, duration time.Duration) {
	atomic.AddUint64(&m.durationCount, 1)
	atomic.AddInt64(&m.durationTotalNs, duration.Nanoseconds())
}
