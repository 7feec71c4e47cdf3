package internal

import (
	"time"

	"github.com/gregjones/httpcache"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/exp/slices"

	"github.com/typedrest/go-rest-client/interfaces"
)

type defaultClientFactory struct{}

// NewDefaultClientFactory returns the standard HTTP-backed client factory. The
// rcomponents package exposes it as DefaultClientFactory.
func NewDefaultClientFactory() interfaces.ClientFactory {
	return defaultClientFactory{}
}

func (defaultClientFactory) CreateClient(context interfaces.BuildContext) (interfaces.ResourceClient, error) {
	config := context.Configuration

	connectTimeout := durationMillisProperty(config, PropertyConnectTimeout)
	readTimeout := durationMillisProperty(config, PropertyReadTimeout)
	httpClient := context.HTTP.CreateHTTPClient(connectTimeout, readTimeout)

	if v, ok := config.Property(PropertyCacheResponses); ok && v.BoolValue() {
		modified := *httpClient
		modified.Transport = &httpcache.Transport{
			Cache:               httpcache.NewMemoryCache(),
			MarkCachedResponses: true,
			Transport:           httpClient.Transport,
		}
		httpClient = &modified
	}

	if threshold := intProperty(config, PropertyBreakerFailureThreshold); threshold > 0 {
		cooldown := durationMillisProperty(config, PropertyBreakerCooldownMillis)
		modified := *httpClient
		modified.Transport = newBreakerRoundTripper(context.Spec.Name, threshold, cooldown, httpClient.Transport)
		httpClient = &modified
	}

	if attempts := intProperty(config, PropertyRetryMaxAttempts); attempts > 0 {
		rc := retryablehttp.NewClient()
		rc.RetryMax = attempts
		rc.Logger = nil
		if waitMin := durationMillisProperty(config, PropertyRetryWaitMinMillis); waitMin > 0 {
			rc.RetryWaitMin = waitMin
		}
		if waitMax := durationMillisProperty(config, PropertyRetryWaitMaxMillis); waitMax > 0 {
			rc.RetryWaitMax = waitMax
		}
		rc.HTTPClient = httpClient
		standard := rc.StandardClient()
		standard.Timeout = httpClient.Timeout
		httpClient = standard
	}

	// Server-sent-events connections are long-lived, so the overall round-trip
	// timeout must not apply to them.
	sseClient := *httpClient
	sseClient.Timeout = 0

	executor := context.Executor
	if executor == nil {
		executor = NewDefaultExecutor()
	}

	requestFilters, responseFilters, errorMappers := collectProviders(config)

	return &resourceClientImpl{
		serviceName:     context.Spec.Name,
		baseURI:         context.BaseURI,
		httpClient:      httpClient,
		sseClient:       &sseClient,
		defaultHeaders:  context.HTTP.DefaultHeaders,
		executor:        executor,
		loggers:         context.Logging.Loggers,
		logRequests:     context.Logging.LogRequests,
		requestFilters:  requestFilters,
		responseFilters: responseFilters,
		errorMappers:    errorMappers,
	}, nil
}

func collectProviders(config interfaces.Configuration) (
	[]prioritizedProvider[interfaces.RequestFilter],
	[]prioritizedProvider[interfaces.ResponseFilter],
	[]prioritizedProvider[interfaces.ErrorMapper],
) {
	var requestFilters []prioritizedProvider[interfaces.RequestFilter]
	var responseFilters []prioritizedProvider[interfaces.ResponseFilter]
	var errorMappers []prioritizedProvider[interfaces.ErrorMapper]

	for _, reg := range config.Components() {
		serves := func(kind interfaces.ProviderKind) bool {
			if len(reg.Contracts) == 0 {
				return true
			}
			for _, k := range reg.Contracts {
				if k == kind {
					return true
				}
			}
			return false
		}
		if f, ok := reg.Component.(interfaces.RequestFilter); ok && serves(interfaces.RequestFilterKind) {
			requestFilters = append(requestFilters,
				prioritizedProvider[interfaces.RequestFilter]{value: f, priority: reg.Priority})
		}
		if f, ok := reg.Component.(interfaces.ResponseFilter); ok && serves(interfaces.ResponseFilterKind) {
			responseFilters = append(responseFilters,
				prioritizedProvider[interfaces.ResponseFilter]{value: f, priority: reg.Priority})
		}
		if m, ok := reg.Component.(interfaces.ErrorMapper); ok && serves(interfaces.ErrorMapperKind) {
			errorMappers = append(errorMappers,
				prioritizedProvider[interfaces.ErrorMapper]{value: m, priority: reg.Priority})
		}
	}

	// Request filters run lowest priority first; response filters run in the reverse
	// order, so the filter that saw the request first sees the response last.
	slices.SortStableFunc(requestFilters, func(a, b prioritizedProvider[interfaces.RequestFilter]) bool {
		return a.priority < b.priority
	})
	slices.SortStableFunc(responseFilters, func(a, b prioritizedProvider[interfaces.ResponseFilter]) bool {
		return a.priority > b.priority
	})
	slices.SortStableFunc(errorMappers, func(a, b prioritizedProvider[interfaces.ErrorMapper]) bool {
		return a.priority < b.priority
	})

	return requestFilters, responseFilters, errorMappers
}

func durationMillisProperty(config interfaces.Configuration, key string) time.Duration {
	if v, ok := config.Property(key); ok && v.IsNumber() {
		return time.Duration(v.IntValue()) * time.Millisecond
	}
	return 0
}

func intProperty(config interfaces.Configuration, key string) int {
	if v, ok := config.Property(key); ok && v.IsNumber() {
		return v.IntValue()
	}
	return 0
}
