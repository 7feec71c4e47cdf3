package restclient

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"

	"github.com/typedrest/go-rest-client/interfaces"
	"github.com/typedrest/go-rest-client/internal"
	"github.com/typedrest/go-rest-client/rcomponents"
)

// Per-service configuration keys resolved through the property resolver at build time.
const (
	connectTimeoutKeyFormat = "%s/mp-rest/connectTimeout"
	readTimeoutKeyFormat    = "%s/mp-rest/readTimeout"
)

// ClientBuilder accumulates configuration and constructs clients for service
// contracts. Obtain one with NewClientBuilder; all setters return the builder so calls
// can be chained.
//
// A builder is not safe for concurrent mutation. Build may be called any number of
// times; each call re-runs provider auto-registration, configured-timeout resolution,
// and listener notification, and constructs a new client.
//
// Setter argument validation failures latch on the builder: the offending call makes
// no change, and the first latched error is returned by every subsequent Build (and by
// Err).
type ClientBuilder struct {
	err        error
	baseURI    string
	executor   interfaces.Executor
	config     *internal.ConfigurationImpl
	resolver   interfaces.PropertyResolver
	factory    interfaces.ClientFactory
	http       interfaces.HTTPConfigurationFactory
	logging    interfaces.LoggingConfigurationFactory
	listeners  []interfaces.ClientListener
	registry   *ListenerRegistry
	contextKey string
}

// NewClientBuilder creates a builder with default components: the HTTP-backed client
// factory, default transport and logging configuration, and the environment-variable
// property resolver.
func NewClientBuilder() *ClientBuilder {
	return &ClientBuilder{
		config:   internal.NewConfigurationImpl(),
		resolver: rcomponents.EnvironmentPropertyResolver(),
		factory:  rcomponents.DefaultClientFactory(),
		http:     rcomponents.HTTPConfiguration(),
		logging:  rcomponents.Logging(),
	}
}

func (b *ClientBuilder) fail(err error) *ClientBuilder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// Err returns the first setter validation error latched on the builder, if any.
func (b *ClientBuilder) Err() error {
	return b.err
}

// BaseURL sets the base address from a parsed URL. A nil URL latches an
// invalid-argument error.
func (b *ClientBuilder) BaseURL(u *url.URL) *ClientBuilder {
	if u == nil {
		return b.fail(ErrNilBaseURL)
	}
	b.baseURI = u.String()
	return b
}

// BaseURI sets the base address from a URI string, storing its canonical form. An
// empty or unparseable URI latches an invalid-argument error.
func (b *ClientBuilder) BaseURI(uri string) *ClientBuilder {
	if uri == "" {
		return b.fail(ErrInvalidBaseURI)
	}
	parsed, err := url.Parse(uri)
	if err != nil {
		return b.fail(fmt.Errorf("%w: %v", ErrInvalidBaseURI, err))
	}
	b.baseURI = parsed.String()
	return b
}

// Executor sets the executor used for asynchronous operations on built clients. A nil
// executor latches an invalid-argument error. The default starts one goroutine per
// task.
func (b *ClientBuilder) Executor(executor interfaces.Executor) *ClientBuilder {
	if executor == nil {
		return b.fail(ErrNilExecutor)
	}
	b.executor = executor
	return b
}

// ConnectTimeout sets the connection-establishment timeout, stored as the millisecond
// property PropertyConnectTimeout. A negative duration latches an invalid-argument
// error and leaves the configuration unchanged.
func (b *ClientBuilder) ConnectTimeout(timeout time.Duration) *ClientBuilder {
	if timeout < 0 {
		return b.fail(ErrNegativeTimeout)
	}
	b.config.SetProperty(PropertyConnectTimeout, ldvalue.Int(int(timeout.Milliseconds())))
	return b
}

// ReadTimeout sets the whole-round-trip timeout, stored as the millisecond property
// PropertyReadTimeout. A negative duration latches an invalid-argument error and
// leaves the configuration unchanged.
func (b *ClientBuilder) ReadTimeout(timeout time.Duration) *ClientBuilder {
	if timeout < 0 {
		return b.fail(ErrNegativeTimeout)
	}
	b.config.SetProperty(PropertyReadTimeout, ldvalue.Int(int(timeout.Milliseconds())))
	return b
}

// Property stores an arbitrary property value. Properties under the well-known names
// in this package configure the default factory's transport; any others are carried
// through for providers and custom factories to inspect.
func (b *ClientBuilder) Property(key string, value ldvalue.Value) *ClientBuilder {
	b.config.SetProperty(key, value)
	return b
}

// RegisterOption adjusts a provider registration made through Register.
type RegisterOption func(*interfaces.ProviderRegistration)

// WithPriority sets an explicit priority for a registration. Without it, components
// are registered at interfaces.DefaultProviderPriority.
func WithPriority(priority int) RegisterOption {
	return func(reg *interfaces.ProviderRegistration) {
		reg.Priority = priority
	}
}

// WithContracts restricts which contracts the component serves. Without it, a
// component serves every contract its type implements.
func WithContracts(kinds ...interfaces.ProviderKind) RegisterOption {
	return func(reg *interfaces.ProviderRegistration) {
		reg.Contracts = kinds
	}
}

// Register adds a provider component. Registering a second component of the same
// concrete type is a no-op.
func (b *ClientBuilder) Register(component interface{}, opts ...RegisterOption) *ClientBuilder {
	reg := interfaces.ProviderRegistration{Component: component, Priority: -1}
	for _, opt := range opts {
		opt(&reg)
	}
	b.config.RegisterComponent(reg)
	return b
}

// PropertyResolver replaces the facade used to resolve the per-service timeout keys.
// A nil resolver latches an invalid-argument error.
func (b *ClientBuilder) PropertyResolver(resolver interfaces.PropertyResolver) *ClientBuilder {
	if resolver == nil {
		return b.fail(ErrNilComponent)
	}
	b.resolver = resolver
	return b
}

// ClientFactory replaces the factory that constructs clients. A nil factory latches an
// invalid-argument error.
func (b *ClientBuilder) ClientFactory(factory interfaces.ClientFactory) *ClientBuilder {
	if factory == nil {
		return b.fail(ErrNilComponent)
	}
	b.factory = factory
	return b
}

// HTTPConfigurationFactory replaces the transport configuration. A nil factory latches
// an invalid-argument error.
func (b *ClientBuilder) HTTPConfigurationFactory(factory interfaces.HTTPConfigurationFactory) *ClientBuilder {
	if factory == nil {
		return b.fail(ErrNilComponent)
	}
	b.http = factory
	return b
}

// LoggingConfigurationFactory replaces the logging configuration. A nil factory
// latches an invalid-argument error.
func (b *ClientBuilder) LoggingConfigurationFactory(factory interfaces.LoggingConfigurationFactory) *ClientBuilder {
	if factory == nil {
		return b.fail(ErrNilComponent)
	}
	b.logging = factory
	return b
}

// AddListener registers a listener directly on this builder, in addition to any
// discovered through an attached ListenerRegistry.
func (b *ClientBuilder) AddListener(listener interfaces.ClientListener) *ClientBuilder {
	if listener == nil {
		return b.fail(ErrNilComponent)
	}
	b.listeners = append(b.listeners, listener)
	return b
}

// Listeners attaches a listener registry and the execution-context key under which its
// discovery cache is scoped. Builders attached to the same registry and key share one
// discovered listener list.
func (b *ClientBuilder) Listeners(registry *ListenerRegistry, contextKey string) *ClientBuilder {
	b.registry = registry
	b.contextKey = contextKey
	return b
}

// GetConfiguration returns a read-only view of the accumulated configuration. The view
// is live; it reflects later builder mutations.
func (b *ClientBuilder) GetConfiguration() interfaces.Configuration {
	return b.config
}

// SetProperty implements interfaces.ClientConfigurator, the mutation surface passed to
// listeners.
func (b *ClientBuilder) SetProperty(key string, value ldvalue.Value) {
	b.config.SetProperty(key, value)
}

// RegisterComponent implements interfaces.ClientConfigurator.
func (b *ClientBuilder) RegisterComponent(reg interfaces.ProviderRegistration) {
	b.config.RegisterComponent(reg)
}

// Build constructs a client for the given service contract and returns the facade
// produced by the spec's Bind function.
//
// The build fails if a setter error is latched, if no base address was set, or if the
// spec is invalid. Otherwise it registers the spec's declared providers that are not
// already registered, applies any configured per-service timeouts, notifies listeners,
// and delegates construction to the client factory.
func (b *ClientBuilder) Build(spec interfaces.ServiceSpec) (interface{}, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.baseURI == "" {
		return nil, ErrBaseURINotSet
	}
	if err := internal.ValidateServiceSpec(spec); err != nil {
		return nil, err
	}

	logging := b.logging.CreateLoggingConfiguration()
	loggers := logging.Loggers

	for _, reg := range spec.Providers {
		if !b.config.IsRegistered(reg.Component) {
			b.config.RegisterComponent(reg)
		}
	}

	b.applyConfiguredTimeout(fmt.Sprintf(connectTimeoutKeyFormat, spec.Name), PropertyConnectTimeout, loggers)
	b.applyConfiguredTimeout(fmt.Sprintf(readTimeoutKeyFormat, spec.Name), PropertyReadTimeout, loggers)

	for _, listener := range b.listeners {
		listener.OnNewClient(spec, b)
	}
	for _, listener := range b.registry.ListenersFor(b.contextKey) {
		listener.OnNewClient(spec, b)
	}

	httpConfig, err := b.http.CreateHTTPConfiguration()
	if err != nil {
		return nil, err
	}
	if httpConfig.CreateHTTPClient == nil {
		httpConfig.CreateHTTPClient = func(connectTimeout, readTimeout time.Duration) *http.Client {
			client, err := internal.NewHTTPClient(internal.TransportSettings{}, connectTimeout, readTimeout)
			if err != nil {
				return &http.Client{Timeout: readTimeout}
			}
			return client
		}
	}

	executor := b.executor
	if executor == nil {
		executor = internal.NewDefaultExecutor()
	}

	client, err := b.factory.CreateClient(interfaces.BuildContext{
		Configuration: b.config,
		BaseURI:       b.baseURI,
		Spec:          spec,
		Executor:      executor,
		HTTP:          httpConfig,
		Logging:       logging,
	})
	if err != nil {
		return nil, err
	}
	return spec.Bind(client), nil
}

// applyConfiguredTimeout overrides a timeout property when the resolver has a value
// for the per-service key. Values may be numbers or numeric strings, in milliseconds.
func (b *ClientBuilder) applyConfiguredTimeout(configKey, propertyKey string, loggers ldlog.Loggers) {
	if b.resolver == nil {
		return
	}
	value, ok := b.resolver.OptionalValue(configKey)
	if !ok {
		return
	}
	millis, ok := intFromValue(value)
	if !ok {
		loggers.Warnf("Ignoring non-integer configuration value for %s", configKey)
		return
	}
	b.config.SetProperty(propertyKey, ldvalue.Int(millis))
	loggers.Debugf("Timeout set from configuration: %s=%dms", configKey, millis)
}

func intFromValue(value ldvalue.Value) (int, bool) {
	if value.IsNumber() {
		return value.IntValue(), true
	}
	if value.Type() == ldvalue.StringType {
		if n, err := strconv.Atoi(value.StringValue()); err == nil {
			return n, true
		}
	}
	return 0, false
}

// BuildTyped builds a client with b.Build and type-asserts the bound facade.
func BuildTyped[T any](b *ClientBuilder, spec interfaces.ServiceSpec) (T, error) {
	var zero T
	built, err := b.Build(spec)
	if err != nil {
		return zero, err
	}
	typed, ok := built.(T)
	if !ok {
		return zero, fmt.Errorf("service %q was bound to %T, which is not the requested type", spec.Name, built)
	}
	return typed, nil
}
