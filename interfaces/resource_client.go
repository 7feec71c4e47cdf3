package interfaces

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Request describes one invocation of a remote service operation.
//
// Path is resolved relative to the client's base URI. Body, when non-nil, is
// serialized as JSON. Result, when non-nil, receives the JSON-decoded response body.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   interface{}
	Result interface{}
}

// Response is the transport-level result of a request, as seen by response filters and
// error mappers. Filters may replace Body; the decoded Result is produced afterward
// from whatever Body contains.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// AsyncResult is delivered on the channel returned by ResourceClient.DoAsync.
type AsyncResult struct {
	Response *Response
	Err      error
}

// StreamEvent is one server-sent event received through a Subscription.
type StreamEvent struct {
	ID    string
	Event string
	Data  string
}

// Subscription is an active server-sent-events stream. Close releases the underlying
// connection and closes the Events channel.
type Subscription interface {
	Events() <-chan StreamEvent
	Close()
}

// ResourceClient is the low-level client produced by a ClientFactory. A ServiceSpec's
// Bind function wraps it in the service's typed facade.
//
// Implementations must be safe for concurrent use.
type ResourceClient interface {
	// Do executes a request synchronously, running the configured provider pipeline.
	Do(ctx context.Context, req Request) (*Response, error)

	// DoAsync executes a request on the client's executor. The returned channel
	// receives exactly one result and is then closed.
	DoAsync(ctx context.Context, req Request) <-chan AsyncResult

	// Subscribe opens a server-sent-events stream for the given request. Request
	// filters run before the connection is made; response filters and error mappers
	// do not apply to individual events.
	Subscribe(ctx context.Context, req Request) (Subscription, error)
}

// ResponseError is the error produced for an error response when no registered
// ErrorMapper claims it. Title is taken from the response's problem envelope when one
// can be parsed, otherwise from the HTTP status text.
type ResponseError struct {
	StatusCode int
	Title      string
}

func (e *ResponseError) Error() string {
	if e.Title == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Title)
}
