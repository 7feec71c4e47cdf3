package sharedtest

import (
	"sync"

	"github.com/typedrest/go-rest-client/interfaces"
)

// MockClientFactory is a test implementation of interfaces.ClientFactory that records
// every build context it receives.
type MockClientFactory struct {
	// Client is returned from CreateClient unless Err is set. If both are nil, a new
	// MockResourceClient is returned.
	Client interfaces.ResourceClient

	// Err, if non-nil, is returned from CreateClient.
	Err error

	lock     sync.Mutex
	contexts []interfaces.BuildContext
}

// CreateClient records the context and returns the configured client or error.
func (f *MockClientFactory) CreateClient(context interfaces.BuildContext) (interfaces.ResourceClient, error) {
	f.lock.Lock()
	f.contexts = append(f.contexts, context)
	f.lock.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Client != nil {
		return f.Client, nil
	}
	return &MockResourceClient{}, nil
}

// CallCount returns the number of times CreateClient has been called.
func (f *MockClientFactory) CallCount() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return len(f.contexts)
}

// LastContext returns the most recent build context, or an empty one if CreateClient
// was never called.
func (f *MockClientFactory) LastContext() interfaces.BuildContext {
	f.lock.Lock()
	defer f.lock.Unlock()
	if len(f.contexts) == 0 {
		return interfaces.BuildContext{}
	}
	return f.contexts[len(f.contexts)-1]
}
