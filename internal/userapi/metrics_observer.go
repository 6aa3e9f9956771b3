package userapi

import (
	"context"

	"github.com/usermgmt/usermgmt/internal/metrics"
)

// MetricsObserver feeds call events into a metrics.Recorder.
type MetricsObserver struct {
	recorder metrics.Recorder
}

// NewMetricsObserver returns an Observer recording to recorder.
func NewMetricsObserver(recorder metrics.Recorder) *MetricsObserver {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &MetricsObserver{recorder: recorder}
}

func (m *MetricsObserver) OnRequest(_ context.Context, call Call) {
	m.recorder.IncAPIRequest(call.Backend, call.Method)
}

func (m *MetricsObserver) OnResponse(_ context.Context, call Call, out Outcome) {
	m.recorder.IncAPIResponse(call.Backend, metrics.OutcomeForStatus(out.StatusCode))
	m.recorder.ObserveAPIDuration(call.Backend, out.Elapsed)
}

// OnError never records a success: a failure carrying a 2xx status is a
// body that could not be decoded.
func (m *MetricsObserver) OnError(_ context.Context, call Call, f Failure) {
	outcome := metrics.OutcomeForStatus(f.StatusCode)
	if outcome == metrics.OutcomeSuccess {
		outcome = metrics.OutcomeDecodeError
	}
	m.recorder.IncAPIResponse(call.Backend, outcome)
	m.recorder.ObserveAPIDuration(call.Backend, f.Elapsed)
}
