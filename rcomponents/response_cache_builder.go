package rcomponents

import (
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"

	"github.com/typedrest/go-rest-client/interfaces"
	"github.com/typedrest/go-rest-client/internal"
)

// ResponseCacheBuilder configures the in-memory HTTP response cache for the default
// client factory. The cache honors standard Cache-Control response semantics, so only
// responses the server marks cacheable are stored.
//
// Obtain one with ResponseCache() and apply it to a builder:
//
//	rcomponents.ResponseCache().ApplyTo(builder)
type ResponseCacheBuilder struct {
	enabled bool
}

// ResponseCache returns a response cache configuration builder with caching enabled.
func ResponseCache() *ResponseCacheBuilder {
	return &ResponseCacheBuilder{enabled: true}
}

// Enabled sets whether the cache layer is added. Use Enabled(false) to explicitly
// turn a previously applied cache off again.
func (b *ResponseCacheBuilder) Enabled(enabled bool) *ResponseCacheBuilder {
	b.enabled = enabled
	return b
}

// ApplyTo stores the cache setting as a property on the given configurator.
func (b *ResponseCacheBuilder) ApplyTo(configurator interfaces.ClientConfigurator) {
	configurator.SetProperty(internal.PropertyCacheResponses, ldvalue.Bool(b.enabled))
}
