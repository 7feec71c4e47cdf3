package rcomponents

import (
	"github.com/typedrest/go-rest-client/interfaces"
	"github.com/typedrest/go-rest-client/internal"
)

// DefaultClientFactory returns the standard HTTP-backed client factory. This is the
// builder's default, so you only need it to restore the default after substituting a
// custom factory.
//
// The factory consults the well-known restclient property names for timeouts and for
// the optional retry, response-cache, and circuit-breaker transport layers.
func DefaultClientFactory() interfaces.ClientFactory {
	return internal.NewDefaultClientFactory()
}
