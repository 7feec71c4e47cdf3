package sharedtest

import (
	"context"
	"sync"

	"github.com/typedrest/go-rest-client/interfaces"
)

// CallRecorder collects an ordered trace of provider invocations. Providers created
// from the same recorder append labels to a shared list, so tests can assert on
// pipeline ordering.
type CallRecorder struct {
	lock   sync.Mutex
	labels []string
}

// Record appends a label to the trace.
func (r *CallRecorder) Record(label string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.labels = append(r.labels, label)
}

// Labels returns a copy of the trace so far.
func (r *CallRecorder) Labels() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	ret := make([]string, len(r.labels))
	copy(ret, r.labels)
	return ret
}

// RecordingRequestFilter is a request filter that records its label and optionally
// mutates the request or fails.
type RecordingRequestFilter struct {
	Label    string
	Recorder *CallRecorder
	Mutate   func(req *interfaces.Request)
	Err      error
}

func (f *RecordingRequestFilter) FilterRequest(ctx context.Context, req *interfaces.Request) error {
	if f.Recorder != nil {
		f.Recorder.Record(f.Label)
	}
	if f.Mutate != nil {
		f.Mutate(req)
	}
	return f.Err
}

// RecordingResponseFilter is a response filter that records its label and optionally
// mutates the response or fails.
type RecordingResponseFilter struct {
	Label    string
	Recorder *CallRecorder
	Mutate   func(resp *interfaces.Response)
	Err      error
}

func (f *RecordingResponseFilter) FilterResponse(ctx context.Context, resp *interfaces.Response) error {
	if f.Recorder != nil {
		f.Recorder.Record(f.Label)
	}
	if f.Mutate != nil {
		f.Mutate(resp)
	}
	return f.Err
}

// MappingErrorMapper is an error mapper that returns a fixed error for responses at or
// above a status threshold.
type MappingErrorMapper struct {
	Label     string
	Recorder  *CallRecorder
	MinStatus int
	Err       error
}

func (m *MappingErrorMapper) MapError(resp *interfaces.Response) error {
	if m.Recorder != nil {
		m.Recorder.Record(m.Label)
	}
	if resp.StatusCode >= m.MinStatus {
		return m.Err
	}
	return nil
}
