package sharedtest

import (
	"context"
	"sync"

	"github.com/typedrest/go-rest-client/interfaces"
)

// MockResourceClient is a test implementation of interfaces.ResourceClient that
// records requests and returns canned responses.
type MockResourceClient struct {
	// Response is returned from Do unless Err is set. If nil, an empty 200 response is
	// returned.
	Response *interfaces.Response

	// Err, if non-nil, is returned from Do.
	Err error

	lock     sync.Mutex
	requests []interfaces.Request
}

// Do records the request and returns the canned result.
func (c *MockResourceClient) Do(ctx context.Context, req interfaces.Request) (*interfaces.Response, error) {
	c.lock.Lock()
	c.requests = append(c.requests, req)
	c.lock.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	if c.Response != nil {
		return c.Response, nil
	}
	return &interfaces.Response{StatusCode: 200}, nil
}

// DoAsync runs Do inline and delivers its result on a closed single-element channel.
func (c *MockResourceClient) DoAsync(ctx context.Context, req interfaces.Request) <-chan interfaces.AsyncResult {
	ch := make(chan interfaces.AsyncResult, 1)
	resp, err := c.Do(ctx, req)
	ch <- interfaces.AsyncResult{Response: resp, Err: err}
	close(ch)
	return ch
}

// Subscribe records the request and returns a subscription whose Events channel is
// already closed.
func (c *MockResourceClient) Subscribe(ctx context.Context, req interfaces.Request) (interfaces.Subscription, error) {
	c.lock.Lock()
	c.requests = append(c.requests, req)
	c.lock.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	events := make(chan interfaces.StreamEvent)
	close(events)
	return &mockSubscription{events: events}, nil
}

// Requests returns a copy of all requests received so far.
func (c *MockResourceClient) Requests() []interfaces.Request {
	c.lock.Lock()
	defer c.lock.Unlock()
	ret := make([]interfaces.Request, len(c.requests))
	copy(ret, c.requests)
	return ret
}

type mockSubscription struct {
	events chan interfaces.StreamEvent
}

func (s *mockSubscription) Events() <-chan interfaces.StreamEvent { return s.events }

func (s *mockSubscription) Close() {}
