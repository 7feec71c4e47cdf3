package sharedtest

import (
	"sync"

	"github.com/typedrest/go-rest-client/interfaces"
)

// ListenerCall records one OnNewClient notification received by a MockListener.
type ListenerCall struct {
	Spec         interfaces.ServiceSpec
	Configurator interfaces.ClientConfigurator
}

// MockListener is a test implementation of interfaces.ClientListener that records
// notifications and optionally applies a callback to the configurator.
type MockListener struct {
	// Apply, if non-nil, is invoked with each notification's spec and configurator.
	Apply func(spec interfaces.ServiceSpec, configurator interfaces.ClientConfigurator)

	lock  sync.Mutex
	calls []ListenerCall
}

// OnNewClient records the notification and runs the Apply callback if one is set.
func (l *MockListener) OnNewClient(spec interfaces.ServiceSpec, configurator interfaces.ClientConfigurator) {
	l.lock.Lock()
	l.calls = append(l.calls, ListenerCall{Spec: spec, Configurator: configurator})
	l.lock.Unlock()
	if l.Apply != nil {
		l.Apply(spec, configurator)
	}
}

// Calls returns a copy of all recorded notifications.
func (l *MockListener) Calls() []ListenerCall {
	l.lock.Lock()
	defer l.lock.Unlock()
	ret := make([]ListenerCall, len(l.calls))
	copy(ret, l.calls)
	return ret
}
