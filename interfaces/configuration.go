package interfaces

import (
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// Configuration is a read-only view of the properties and provider registrations that a
// builder has accumulated. It is passed to the client factory and may be inspected by
// listeners and providers.
//
// The view is live: it reflects later mutations made through the builder that owns it.
type Configuration interface {
	// Property returns the value stored under key, if any.
	Property(key string) (ldvalue.Value, bool)

	// Properties returns a copy of all stored properties.
	Properties() map[string]ldvalue.Value

	// IsRegistered returns true if a component of the same concrete type as the given
	// component has been registered.
	IsRegistered(component interface{}) bool

	// Components returns a copy of all provider registrations, in registration order.
	Components() []ProviderRegistration
}

// ClientConfigurator is the mutation surface that a ClientListener receives. It allows
// a listener to adjust properties and register additional providers before the client
// is constructed.
type ClientConfigurator interface {
	SetProperty(key string, value ldvalue.Value)
	RegisterComponent(reg ProviderRegistration)
}

// ClientListener is notified once for each client build, after provider
// auto-registration and configuration-driven timeout resolution, and before the client
// factory runs. Listeners may mutate the builder through the configurator.
type ClientListener interface {
	OnNewClient(spec ServiceSpec, configurator ClientConfigurator)
}

// PropertyResolver is the facade through which the builder resolves externally
// configured values, such as the per-service timeout keys.
//
// Implementations must be safe for concurrent use.
type PropertyResolver interface {
	// OptionalValue returns the value configured under key, and whether one exists.
	OptionalValue(key string) (ldvalue.Value, bool)
}
