package rcomponents

import (
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"

	"github.com/typedrest/go-rest-client/interfaces"
	"github.com/typedrest/go-rest-client/internal"
)

// CircuitBreakerBuilder configures a transport-level circuit breaker for the default
// client factory. Connection errors and 5xx responses count as failures; after
// FailureThreshold consecutive failures the circuit opens and requests fail fast until
// the cooldown elapses.
//
// Obtain one with CircuitBreaker() and apply it to a builder:
//
//	rcomponents.CircuitBreaker().FailureThreshold(5).ApplyTo(builder)
type CircuitBreakerBuilder struct {
	failureThreshold int
	cooldown         time.Duration
}

// CircuitBreaker returns a circuit breaker configuration builder. Until
// FailureThreshold is set to a positive value, applying it has no effect.
func CircuitBreaker() *CircuitBreakerBuilder {
	return &CircuitBreakerBuilder{}
}

// FailureThreshold sets how many consecutive failures open the circuit.
func (b *CircuitBreakerBuilder) FailureThreshold(failureThreshold int) *CircuitBreakerBuilder {
	b.failureThreshold = failureThreshold
	return b
}

// Cooldown sets how long an open circuit waits before allowing a probe request. The
// default is 30 seconds.
func (b *CircuitBreakerBuilder) Cooldown(cooldown time.Duration) *CircuitBreakerBuilder {
	b.cooldown = cooldown
	return b
}

// ApplyTo stores the circuit breaker settings as properties on the given
// configurator.
func (b *CircuitBreakerBuilder) ApplyTo(configurator interfaces.ClientConfigurator) {
	if b.failureThreshold <= 0 {
		return
	}
	configurator.SetProperty(internal.PropertyBreakerFailureThreshold, ldvalue.Int(b.failureThreshold))
	if b.cooldown > 0 {
		configurator.SetProperty(internal.PropertyBreakerCooldownMillis, ldvalue.Int(int(b.cooldown.Milliseconds())))
	}
}
