package interfaces

// ServiceSpec describes a remote service contract to the client builder. It is the
// statically-declared equivalent of an annotated client interface: the providers that
// such an interface would declare are listed explicitly, and the typed facade that a
// dynamic proxy would synthesize is constructed by the Bind function.
//
// A ServiceSpec is a value object; the same spec may be passed to any number of
// builders or builds.
type ServiceSpec struct {
	// Name identifies the service. It is used to derive the per-service configuration
	// keys for timeouts (see the restclient package documentation) and appears in log
	// output, so it should be unique within the process. Typically this is a
	// package-qualified name such as "orders.OrderService".
	Name string `validate:"required"`

	// Providers lists components that are automatically registered when a client is
	// built from this spec, unless a component of the same type was already registered
	// on the builder. A Priority of -1 requests the default priority.
	Providers []ProviderRegistration

	// Bind constructs the typed facade from the low-level client. It is invoked once
	// per successful build and its return value is returned by Build.
	Bind func(client ResourceClient) interface{} `validate:"required"`
}
