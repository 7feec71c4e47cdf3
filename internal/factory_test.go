package internal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	"github.com/launchdarkly/go-test-helpers/v3/httphelpers"

	"github.com/typedrest/go-rest-client/interfaces"
	"github.com/typedrest/go-rest-client/internal/sharedtest"
)

func TestFactoryPassesConfiguredTimeoutsToTransport(t *testing.T) {
	config := NewConfigurationImpl()
	config.SetProperty(PropertyConnectTimeout, ldvalue.Int(1234))
	config.SetProperty(PropertyReadTimeout, ldvalue.Int(2345))

	var gotConnect, gotRead time.Duration
	buildContext := makeTestBuildContext("http://localhost", config)
	buildContext.HTTP.CreateHTTPClient = func(connectTimeout, readTimeout time.Duration) *http.Client {
		gotConnect, gotRead = connectTimeout, readTimeout
		return &http.Client{Timeout: readTimeout}
	}

	_, err := NewDefaultClientFactory().CreateClient(buildContext)
	require.NoError(t, err)
	assert.Equal(t, 1234*time.Millisecond, gotConnect)
	assert.Equal(t, 2345*time.Millisecond, gotRead)
}

func TestFactoryLeavesReadTimeoutOnClientButNotSSEClient(t *testing.T) {
	config := NewConfigurationImpl()
	config.SetProperty(PropertyReadTimeout, ldvalue.Int(2000))

	client, err := NewDefaultClientFactory().CreateClient(makeTestBuildContext("http://localhost", config))
	require.NoError(t, err)

	impl := client.(*resourceClientImpl)
	assert.Equal(t, 2*time.Second, impl.httpClient.Timeout)
	assert.Equal(t, time.Duration(0), impl.sseClient.Timeout)
}

func TestCollectProvidersOrdering(t *testing.T) {
	config := NewConfigurationImpl()
	first := &authFilter{recorder: &sharedtest.CallRecorder{}}
	second := &sharedtest.RecordingRequestFilter{Label: "second"}
	config.RegisterComponent(interfaces.ProviderRegistration{Component: second, Priority: 10})
	config.RegisterComponent(interfaces.ProviderRegistration{Component: first, Priority: 1})

	lowFilter := &sharedtest.RecordingResponseFilter{Label: "low"}
	highFilter := &secondResponseFilter{recorder: &sharedtest.CallRecorder{}}
	config.RegisterComponent(interfaces.ProviderRegistration{Component: lowFilter, Priority: 1})
	config.RegisterComponent(interfaces.ProviderRegistration{Component: highFilter, Priority: 10})

	requestFilters, responseFilters, _ := collectProviders(config)

	// Request filters are ordered by ascending priority, response filters descending.
	require.Len(t, requestFilters, 2)
	assert.Same(t, first, requestFilters[0].value)
	assert.Same(t, second, requestFilters[1].value)

	require.Len(t, responseFilters, 2)
	assert.Same(t, highFilter, responseFilters[0].value)
	assert.Same(t, lowFilter, responseFilters[1].value)
}

// dualProvider implements more than one provider contract.
type dualProvider struct{}

func (dualProvider) FilterRequest(ctx context.Context, req *interfaces.Request) error { return nil }

func (dualProvider) MapError(resp *interfaces.Response) error { return nil }

func TestCollectProvidersHonorsContractRestriction(t *testing.T) {
	config := NewConfigurationImpl()
	config.RegisterComponent(interfaces.ProviderRegistration{
		Component: dualProvider{},
		Priority:  1,
		Contracts: []interfaces.ProviderKind{interfaces.ErrorMapperKind},
	})

	requestFilters, _, errorMappers := collectProviders(config)
	assert.Empty(t, requestFilters)
	assert.Len(t, errorMappers, 1)
}

func TestCollectProvidersWithoutRestrictionServesAllImplementedContracts(t *testing.T) {
	config := NewConfigurationImpl()
	config.RegisterComponent(interfaces.ProviderRegistration{Component: dualProvider{}, Priority: 1})

	requestFilters, responseFilters, errorMappers := collectProviders(config)
	assert.Len(t, requestFilters, 1)
	assert.Empty(t, responseFilters)
	assert.Len(t, errorMappers, 1)
}

func TestRetryLayerRetriesServerErrors(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.SequentialHandler(
		httphelpers.HandlerWithStatus(500),
		httphelpers.HandlerWithStatus(200),
	))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		config := NewConfigurationImpl()
		config.SetProperty(PropertyRetryMaxAttempts, ldvalue.Int(1))
		config.SetProperty(PropertyRetryWaitMinMillis, ldvalue.Int(1))
		config.SetProperty(PropertyRetryWaitMaxMillis, ldvalue.Int(5))
		client := makeTestClient(t, server.URL, config)

		resp, err := client.Do(context.Background(), interfaces.Request{})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, 2, len(requestsCh))
	})
}

func TestResponseCacheServesRepeatedGets(t *testing.T) {
	cacheable := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "max-age=600")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message": "cached"}`))
	})
	handler, requestsCh := httphelpers.RecordingHandler(cacheable)
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		config := NewConfigurationImpl()
		config.SetProperty(PropertyCacheResponses, ldvalue.Bool(true))
		client := makeTestClient(t, server.URL, config)

		for i := 0; i < 2; i++ {
			var result struct {
				Message string `json:"message"`
			}
			_, err := client.Do(context.Background(), interfaces.Request{Path: "/widgets", Result: &result})
			require.NoError(t, err)
			assert.Equal(t, "cached", result.Message)
		}
		assert.Equal(t, 1, len(requestsCh))
	})
}

func TestCircuitBreakerOpensAfterThreshold(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(500))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		config := NewConfigurationImpl()
		config.SetProperty(PropertyBreakerFailureThreshold, ldvalue.Int(1))
		client := makeTestClient(t, server.URL, config)

		// The first request reaches the server and is counted as a failure.
		resp, err := client.Do(context.Background(), interfaces.Request{})
		require.NotNil(t, resp)
		assert.Equal(t, 500, resp.StatusCode)
		var respErr *interfaces.ResponseError
		assert.ErrorAs(t, err, &respErr)

		// The circuit is now open, so the second request fails fast.
		resp, err = client.Do(context.Background(), interfaces.Request{})
		assert.Nil(t, resp)
		assert.Error(t, err)
		assert.Equal(t, 1, len(requestsCh))
	})
}
