package rcomponents

import (
	"os"
	"strings"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"

	"github.com/typedrest/go-rest-client/interfaces"
)

// EnvironmentPropertyResolver returns the builder's default property resolver, which
// reads environment variables. A key is mapped to a variable name by replacing every
// character that is not a letter or digit with an underscore and uppercasing the
// result, so "orders.OrderService/mp-rest/connectTimeout" becomes
// "ORDERS_ORDERSERVICE_MP_REST_CONNECTTIMEOUT".
func EnvironmentPropertyResolver() interfaces.PropertyResolver {
	return environmentPropertyResolver{}
}

type environmentPropertyResolver struct{}

func (environmentPropertyResolver) OptionalValue(key string) (ldvalue.Value, bool) {
	if value, ok := os.LookupEnv(environmentVariableName(key)); ok {
		return ldvalue.String(value), true
	}
	return ldvalue.Null(), false
}

func environmentVariableName(key string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, key)
	return strings.ToUpper(mapped)
}

// MapPropertyResolver returns a resolver backed by a fixed map. It is useful for
// programmatic configuration and for tests.
func MapPropertyResolver(values map[string]ldvalue.Value) interfaces.PropertyResolver {
	copied := make(map[string]ldvalue.Value, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return mapPropertyResolver(copied)
}

type mapPropertyResolver map[string]ldvalue.Value

func (m mapPropertyResolver) OptionalValue(key string) (ldvalue.Value, bool) {
	value, ok := m[key]
	return value, ok
}
