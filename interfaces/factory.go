package interfaces

// Executor runs tasks submitted by a client's asynchronous operations. The builder's
// default executor starts one goroutine per task; applications with stricter resource
// requirements can supply a pooled implementation.
type Executor interface {
	Execute(task func())
}

// BuildContext carries everything a ClientFactory needs to construct a client. It is
// assembled by the builder after providers have been registered, configured timeouts
// resolved, and listeners notified.
type BuildContext struct {
	// Configuration is the builder's accumulated configuration.
	Configuration Configuration

	// BaseURI is the canonical string form of the configured base address.
	BaseURI string

	// Spec is the service contract the client is being built for.
	Spec ServiceSpec

	// Executor runs asynchronous operations. Never nil.
	Executor Executor

	// HTTP supplies transport-level settings.
	HTTP HTTPConfiguration

	// Logging supplies the configured logging destination and log verbosity flags.
	Logging LoggingConfiguration
}

// ClientFactory constructs the low-level client for a service. The default
// implementation is rcomponents.DefaultClientFactory; alternatives can substitute a
// different transport or a test double.
type ClientFactory interface {
	CreateClient(context BuildContext) (ResourceClient, error)
}
