package internal

import (
	"fmt"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	"golang.org/x/exp/slices"

	"github.com/typedrest/go-rest-client/interfaces"
)

// ConfigurationImpl is the builder's standard implementation of
// interfaces.Configuration, plus the mutators the builder itself uses. It is not
// safe for concurrent mutation; the builder documents that restriction to callers.
type ConfigurationImpl struct {
	properties map[string]ldvalue.Value
	components []interfaces.ProviderRegistration
	registered map[string]bool
}

// NewConfigurationImpl creates an empty configuration.
func NewConfigurationImpl() *ConfigurationImpl {
	return &ConfigurationImpl{
		properties: make(map[string]ldvalue.Value),
		registered: make(map[string]bool),
	}
}

// ComponentKey returns the registration identity of a component, which is its concrete
// type.
func ComponentKey(component interface{}) string {
	return fmt.Sprintf("%T", component)
}

// SetProperty stores a property value, replacing any previous value for the key.
func (c *ConfigurationImpl) SetProperty(key string, value ldvalue.Value) {
	c.properties[key] = value
}

// RegisterComponent adds a provider registration. It returns false, without modifying
// anything, if a component of the same concrete type is already registered.
func (c *ConfigurationImpl) RegisterComponent(reg interfaces.ProviderRegistration) bool {
	if reg.Component == nil {
		return false
	}
	key := ComponentKey(reg.Component)
	if c.registered[key] {
		return false
	}
	if reg.Priority == -1 {
		reg.Priority = interfaces.DefaultProviderPriority
	}
	c.registered[key] = true
	c.components = append(c.components, reg)
	return true
}

// Property implements interfaces.Configuration.
func (c *ConfigurationImpl) Property(key string) (ldvalue.Value, bool) {
	value, ok := c.properties[key]
	return value, ok
}

// Properties implements interfaces.Configuration.
func (c *ConfigurationImpl) Properties() map[string]ldvalue.Value {
	ret := make(map[string]ldvalue.Value, len(c.properties))
	for k, v := range c.properties {
		ret[k] = v
	}
	return ret
}

// IsRegistered implements interfaces.Configuration.
func (c *ConfigurationImpl) IsRegistered(component interface{}) bool {
	if component == nil {
		return false
	}
	return c.registered[ComponentKey(component)]
}

// Components implements interfaces.Configuration.
func (c *ConfigurationImpl) Components() []interfaces.ProviderRegistration {
	return slices.Clone(c.components)
}
