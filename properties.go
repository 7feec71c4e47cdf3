package restclient

import (
	"github.com/typedrest/go-rest-client/internal"
)

// Well-known property names understood by the default client factory. Values set
// through ClientBuilder.Property under these keys configure the built client's
// transport; the ConnectTimeout and ReadTimeout setters are shorthand for the first
// two.
const (
	// PropertyConnectTimeout is the connection-establishment timeout, in milliseconds.
	PropertyConnectTimeout = internal.PropertyConnectTimeout

	// PropertyReadTimeout is the whole-round-trip timeout, in milliseconds.
	PropertyReadTimeout = internal.PropertyReadTimeout

	// PropertyRetryMaxAttempts enables transport-level retries when greater than
	// zero. See rcomponents.RetryBuilder for the fluent way to set the retry
	// properties.
	PropertyRetryMaxAttempts = internal.PropertyRetryMaxAttempts

	// PropertyRetryWaitMinMillis is the minimum backoff between retries.
	PropertyRetryWaitMinMillis = internal.PropertyRetryWaitMinMillis

	// PropertyRetryWaitMaxMillis is the maximum backoff between retries.
	PropertyRetryWaitMaxMillis = internal.PropertyRetryWaitMaxMillis

	// PropertyCacheResponses enables an in-memory response cache honoring standard
	// HTTP cache-control semantics.
	PropertyCacheResponses = internal.PropertyCacheResponses

	// PropertyBreakerFailureThreshold enables a transport-level circuit breaker when
	// greater than zero. See rcomponents.CircuitBreakerBuilder.
	PropertyBreakerFailureThreshold = internal.PropertyBreakerFailureThreshold

	// PropertyBreakerCooldownMillis is how long an open circuit waits before allowing
	// a probe request.
	PropertyBreakerCooldownMillis = internal.PropertyBreakerCooldownMillis
)
