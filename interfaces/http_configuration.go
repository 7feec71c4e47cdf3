package interfaces

import (
	"net/http"
	"time"
)

// HTTPConfiguration encapsulates transport-level HTTP settings that apply to every
// client built from a builder.
//
// See rcomponents.HTTPConfigurationBuilder for the built-in way to construct one.
type HTTPConfiguration struct {
	// DefaultHeaders contains headers added to all requests sent by the client.
	// This map is never modified once created.
	DefaultHeaders http.Header

	// CreateHTTPClient returns a new HTTP client honoring the given timeouts along
	// with whatever proxy and TLS settings the configuration carries.
	//
	// The builder substitutes a default implementation when a configuration factory
	// leaves this field nil, so client factories may rely on it being non-nil.
	// connectTimeout applies to establishing connections; readTimeout bounds
	// the whole request round trip. A zero value means the implementation's default.
	CreateHTTPClient func(connectTimeout, readTimeout time.Duration) *http.Client
}

// HTTPConfigurationFactory creates an HTTPConfiguration. This indirection lets
// configuration validation (bad CA certificates, malformed proxy URLs) fail at build
// time rather than at first request.
type HTTPConfigurationFactory interface {
	CreateHTTPConfiguration() (HTTPConfiguration, error)
}
