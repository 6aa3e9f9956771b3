package userapi

import (
	"context"
	"time"
)

// Call describes one outgoing request.
type Call struct {
	// ID correlates the events of a single call.
	ID        string
	Backend   string
	Operation string
	Method    string
	// URL is the fully resolved request URL including the query string.
	URL string
}

// Outcome describes a completed call.
type Outcome struct {
	StatusCode int
	Elapsed    time.Duration
}

// Failure describes a failed call. StatusCode is zero for transport errors.
type Failure struct {
	StatusCode int
	// Payload is the server's error body when there is one, otherwise the
	// transport error message.
	Payload string
	Err     error
	Elapsed time.Duration
}

// Observer receives diagnostic events for every call. Each call produces
// exactly one OnRequest followed by exactly one of OnResponse or OnError.
// Observers cannot affect the call: panics are recovered and discarded.
type Observer interface {
	OnRequest(ctx context.Context, call Call)
	OnResponse(ctx context.Context, call Call, out Outcome)
	OnError(ctx context.Context, call Call, f Failure)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) OnRequest(context.Context, Call)           {}
func (NopObserver) OnResponse(context.Context, Call, Outcome) {}
func (NopObserver) OnError(context.Context, Call, Failure)    {}

// Observers fans events out to every member in order.
type Observers []Observer

func (o Observers) OnRequest(ctx context.Context, call Call) {
	for _, obs := range o {
		guard(func() { obs.OnRequest(ctx, call) })
	}
}

func (o Observers) OnResponse(ctx context.Context, call Call, out Outcome) {
	for _, obs := range o {
		guard(func() { obs.OnResponse(ctx, call, out) })
	}
}

func (o Observers) OnError(ctx context.Context, call Call, f Failure) {
	for _, obs := range o {
		guard(func() { obs.OnError(ctx, call, f) })
	}
}

// guard runs fn and swallows any panic.
func guard(fn func()) {
	defer func() { _ = recover() }()
	fn()
}
