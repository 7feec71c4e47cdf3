package rcomponents

import (
	"github.com/typedrest/go-rest-client/interfaces"
	"github.com/typedrest/go-rest-client/internal"
)

// testConfigurator adapts *internal.ConfigurationImpl to interfaces.ClientConfigurator:
// the impl's RegisterComponent returns a bool that the interface omits.
type testConfigurator struct{ *internal.ConfigurationImpl }

func (c testConfigurator) RegisterComponent(reg interfaces.ProviderRegistration) {
	c.ConfigurationImpl.RegisterComponent(reg)
}
