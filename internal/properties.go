package internal

// Canonical property names understood by the default client factory. The restclient
// package re-exports these for applications; they are defined here so that internal
// code does not depend on the root package.
const (
	// PropertyConnectTimeout is the connection-establishment timeout, in milliseconds.
	PropertyConnectTimeout = "http.connection.timeout"

	// PropertyReadTimeout is the whole-round-trip timeout, in milliseconds.
	PropertyReadTimeout = "http.receive.timeout"

	// PropertyRetryMaxAttempts enables transport-level retries when greater than zero.
	PropertyRetryMaxAttempts = "http.retry.maxAttempts"

	// PropertyRetryWaitMinMillis is the minimum backoff between retries.
	PropertyRetryWaitMinMillis = "http.retry.waitMinMillis"

	// PropertyRetryWaitMaxMillis is the maximum backoff between retries.
	PropertyRetryWaitMaxMillis = "http.retry.waitMaxMillis"

	// PropertyCacheResponses enables an in-memory HTTP response cache honoring
	// standard cache-control semantics.
	PropertyCacheResponses = "http.cache.responses"

	// PropertyBreakerFailureThreshold enables a circuit breaker at the transport
	// level when greater than zero: after that many consecutive failures, requests
	// fail fast until the cooldown elapses.
	PropertyBreakerFailureThreshold = "http.breaker.failureThreshold"

	// PropertyBreakerCooldownMillis is how long an open circuit waits before allowing
	// a probe request.
	PropertyBreakerCooldownMillis = "http.breaker.cooldownMillis"
)
