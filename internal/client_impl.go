package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/launchdarkly/eventsource"
	"github.com/launchdarkly/go-jsonstream/v3/jreader"
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

	"github.com/typedrest/go-rest-client/interfaces"
)

// Arbitrary buffer size to make it less likely that a slow consumer blocks the
// subscription's reader goroutine.
const subscriptionChannelBufferLength = 10

type prioritizedProvider[T any] struct {
	value    T
	priority int
}

// resourceClientImpl is the client produced by the default factory. All exported
// methods are safe for concurrent use; the provider lists are immutable after
// construction.
type resourceClientImpl struct {
	serviceName     string
	baseURI         string
	httpClient      *http.Client
	sseClient       *http.Client
	defaultHeaders  http.Header
	executor        interfaces.Executor
	loggers         ldlog.Loggers
	logRequests     bool
	requestFilters  []prioritizedProvider[interfaces.RequestFilter]
	responseFilters []prioritizedProvider[interfaces.ResponseFilter]
	errorMappers    []prioritizedProvider[interfaces.ErrorMapper]
}

func (c *resourceClientImpl) Do(ctx context.Context, req interfaces.Request) (*interfaces.Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	for _, f := range c.requestFilters {
		if err := f.value.FilterRequest(ctx, &req); err != nil {
			return nil, err
		}
	}
	httpReq, err := c.newHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(httpResp.Body)
	_ = httpResp.Body.Close()
	if err != nil {
		return nil, err
	}
	resp := &interfaces.Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       body,
	}
	for _, f := range c.responseFilters {
		if err := f.value.FilterResponse(ctx, resp); err != nil {
			return nil, err
		}
	}
	if c.logRequests {
		c.loggers.Debugf("%s: %s %s -> %d", c.serviceName, httpReq.Method, httpReq.URL, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return resp, c.mapError(resp)
	}
	if req.Result != nil && len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, req.Result); err != nil {
			return resp, fmt.Errorf("malformed response from %s: %w", c.serviceName, err)
		}
	}
	return resp, nil
}

func (c *resourceClientImpl) DoAsync(ctx context.Context, req interfaces.Request) <-chan interfaces.AsyncResult {
	ch := make(chan interfaces.AsyncResult, 1)
	c.executor.Execute(func() {
		resp, err := c.Do(ctx, req)
		ch <- interfaces.AsyncResult{Response: resp, Err: err}
		close(ch)
	})
	return ch
}

func (c *resourceClientImpl) Subscribe(ctx context.Context, req interfaces.Request) (interfaces.Subscription, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	for _, f := range c.requestFilters {
		if err := f.value.FilterRequest(ctx, &req); err != nil {
			return nil, err
		}
	}
	httpReq, err := c.newHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "text/event-stream")
	stream, err := eventsource.SubscribeWithRequestAndOptions(httpReq,
		eventsource.StreamOptionHTTPClient(c.sseClient),
		eventsource.StreamOptionLogger(c.loggers.ForLevel(ldlog.Info)),
	)
	if err != nil {
		return nil, err
	}
	sub := &subscriptionImpl{
		stream: stream,
		events: make(chan interfaces.StreamEvent, subscriptionChannelBufferLength),
		halt:   make(chan struct{}),
	}
	go sub.run(ctx)
	return sub, nil
}

func (c *resourceClientImpl) newHTTPRequest(ctx context.Context, req interfaces.Request) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	uri := c.baseURI
	if req.Path != "" {
		uri = strings.TrimSuffix(uri, "/") + "/" + strings.TrimPrefix(req.Path, "/")
	}
	if len(req.Query) > 0 {
		uri = uri + "?" + req.Query.Encode()
	}
	var bodyReader io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("cannot serialize request body for %s: %w", c.serviceName, err)
		}
		bodyReader = bytes.NewReader(data)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, uri, bodyReader)
	if err != nil {
		return nil, err
	}
	for key, values := range c.defaultHeaders {
		httpReq.Header[key] = values
	}
	for key, values := range req.Header {
		httpReq.Header[key] = append([]string(nil), values...)
	}
	if req.Body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.Result != nil && httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}
	return httpReq, nil
}

func (c *resourceClientImpl) mapError(resp *interfaces.Response) error {
	for _, m := range c.errorMappers {
		if err := m.value.MapError(resp); err != nil {
			return err
		}
	}
	title := parseProblemTitle(resp.Body)
	if title == "" {
		title = http.StatusText(resp.StatusCode)
	}
	return &interfaces.ResponseError{StatusCode: resp.StatusCode, Title: title}
}

// parseProblemTitle extracts a human-readable title from an error response body of the
// conventional shape {"status": n, "title": "..."} (or "message" instead of "title").
// Any body that is not such an object yields an empty string.
func parseProblemTitle(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	r := jreader.NewReader(data)
	obj := r.Object()
	var title, message string
	for obj.Next() {
		switch string(obj.Name()) {
		case "title":
			title = r.String()
		case "message":
			message = r.String()
		}
	}
	if r.Error() != nil {
		return ""
	}
	if title != "" {
		return title
	}
	return message
}

type subscriptionImpl struct {
	stream    *eventsource.Stream
	events    chan interfaces.StreamEvent
	halt      chan struct{}
	closeOnce sync.Once
}

func (s *subscriptionImpl) Events() <-chan interfaces.StreamEvent {
	return s.events
}

func (s *subscriptionImpl) Close() {
	s.closeOnce.Do(func() {
		close(s.halt)
		s.stream.Close()
	})
}

func (s *subscriptionImpl) run(ctx context.Context) {
	defer close(s.events)
	for {
		select {
		case <-ctx.Done():
			s.Close()
			return
		case <-s.halt:
			return
		case ev, ok := <-s.stream.Events:
			if !ok {
				return
			}
			out := interfaces.StreamEvent{ID: ev.Id(), Event: ev.Event(), Data: ev.Data()}
			select {
			case s.events <- out:
			case <-ctx.Done():
				s.Close()
				return
			case <-s.halt:
				return
			}
		}
	}
}
