package rcomponents

import (
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"

	"github.com/typedrest/go-rest-client/interfaces"
	"github.com/typedrest/go-rest-client/internal"
)

// RetryBuilder configures transport-level retries for the default client factory.
// Retries apply to connection errors and retryable status codes (429 and 5xx), with
// exponential backoff between attempts.
//
// Obtain one with Retry() and apply it to a builder:
//
//	rcomponents.Retry().MaxAttempts(3).WaitMax(2*time.Second).ApplyTo(builder)
type RetryBuilder struct {
	maxAttempts int
	waitMin     time.Duration
	waitMax     time.Duration
}

// Retry returns a retry configuration builder. Until MaxAttempts is set to a positive
// value, applying it has no effect.
func Retry() *RetryBuilder {
	return &RetryBuilder{}
}

// MaxAttempts sets how many times a request is retried after the initial attempt.
func (b *RetryBuilder) MaxAttempts(maxAttempts int) *RetryBuilder {
	b.maxAttempts = maxAttempts
	return b
}

// WaitMin sets the minimum backoff between attempts.
func (b *RetryBuilder) WaitMin(waitMin time.Duration) *RetryBuilder {
	b.waitMin = waitMin
	return b
}

// WaitMax sets the maximum backoff between attempts.
func (b *RetryBuilder) WaitMax(waitMax time.Duration) *RetryBuilder {
	b.waitMax = waitMax
	return b
}

// ApplyTo stores the retry settings as properties on the given configurator, which may
// be a ClientBuilder or the configurator passed to a listener.
func (b *RetryBuilder) ApplyTo(configurator interfaces.ClientConfigurator) {
	if b.maxAttempts <= 0 {
		return
	}
	configurator.SetProperty(internal.PropertyRetryMaxAttempts, ldvalue.Int(b.maxAttempts))
	if b.waitMin > 0 {
		configurator.SetProperty(internal.PropertyRetryWaitMinMillis, ldvalue.Int(int(b.waitMin.Milliseconds())))
	}
	if b.waitMax > 0 {
		configurator.SetProperty(internal.PropertyRetryWaitMaxMillis, ldvalue.Int(int(b.waitMax.Milliseconds())))
	}
}
