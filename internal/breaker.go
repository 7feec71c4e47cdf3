package internal

import (
	"errors"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

const defaultBreakerCooldown = 30 * time.Second

// errServerFailure is used internally to make the breaker count 5xx responses as
// failures while still delivering the response to the caller.
var errServerFailure = errors.New("server failure")

// breakerRoundTripper wraps a transport with a circuit breaker. Transport errors and
// 5xx responses count as failures; while the circuit is open, requests fail fast
// without reaching the network.
type breakerRoundTripper struct {
	breaker *gobreaker.CircuitBreaker
	base    http.RoundTripper
}

func newBreakerRoundTripper(serviceName string, failureThreshold int, cooldown time.Duration, base http.RoundTripper) *breakerRoundTripper {
	if cooldown <= 0 {
		cooldown = defaultBreakerCooldown
	}
	if base == nil {
		base = http.DefaultTransport
	}
	return &breakerRoundTripper{
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    serviceName,
			Timeout: cooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= uint32(failureThreshold)
			},
		}),
		base: base,
	}
}

func (rt *breakerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	result, err := rt.breaker.Execute(func() (interface{}, error) {
		resp, err := rt.base.RoundTrip(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 500 {
			return resp, errServerFailure
		}
		return resp, nil
	})
	if resp, ok := result.(*http.Response); ok {
		// A 5xx counted as a breaker failure but is still a response the caller
		// must see.
		return resp, nil
	}
	return nil, err
}
