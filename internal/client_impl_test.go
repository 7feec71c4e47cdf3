package internal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/launchdarkly/go-test-helpers/v3/httphelpers"

	"github.com/typedrest/go-rest-client/interfaces"
	"github.com/typedrest/go-rest-client/internal/sharedtest"
)

func makeTestHTTPConfig() interfaces.HTTPConfiguration {
	return interfaces.HTTPConfiguration{
		CreateHTTPClient: func(connectTimeout, readTimeout time.Duration) *http.Client {
			return &http.Client{Timeout: readTimeout}
		},
	}
}

func makeTestBuildContext(baseURI string, config *ConfigurationImpl) interfaces.BuildContext {
	if config == nil {
		config = NewConfigurationImpl()
	}
	return interfaces.BuildContext{
		Configuration: config,
		BaseURI:       baseURI,
		Spec:          sharedtest.SimpleServiceSpec("svc"),
		Executor:      NewDefaultExecutor(),
		HTTP:          makeTestHTTPConfig(),
		Logging:       interfaces.LoggingConfiguration{Loggers: ldlog.NewDisabledLoggers()},
	}
}

func makeTestClient(t *testing.T, baseURI string, config *ConfigurationImpl) interfaces.ResourceClient {
	client, err := NewDefaultClientFactory().CreateClient(makeTestBuildContext(baseURI, config))
	require.NoError(t, err)
	return client
}

func TestDoDecodesJSONResult(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(
		httphelpers.HandlerWithJSONResponse(map[string]string{"message": "hello"}, nil))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		client := makeTestClient(t, server.URL, nil)

		var result struct {
			Message string `json:"message"`
		}
		resp, err := client.Do(context.Background(), interfaces.Request{
			Path:   "/widgets/1",
			Result: &result,
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, "hello", result.Message)

		r := <-requestsCh
		assert.Equal(t, "GET", r.Request.Method)
		assert.Equal(t, "/widgets/1", r.Request.URL.Path)
		assert.Equal(t, "application/json", r.Request.Header.Get("Accept"))
	})
}

func TestDoSendsJSONBody(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(201))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		client := makeTestClient(t, server.URL, nil)

		resp, err := client.Do(context.Background(), interfaces.Request{
			Method: "POST",
			Path:   "/widgets",
			Body:   map[string]interface{}{"name": "sprocket"},
		})
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)

		r := <-requestsCh
		assert.Equal(t, "POST", r.Request.Method)
		assert.Equal(t, "application/json", r.Request.Header.Get("Content-Type"))
		assert.JSONEq(t, `{"name": "sprocket"}`, string(r.Body))
	})
}

func TestDoAppliesQueryParameters(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		client := makeTestClient(t, server.URL, nil)

		_, err := client.Do(context.Background(), interfaces.Request{
			Path:  "widgets",
			Query: url.Values{"page": {"2"}, "size": {"10"}},
		})
		require.NoError(t, err)

		r := <-requestsCh
		assert.Equal(t, "/widgets", r.Request.URL.Path)
		assert.Equal(t, "2", r.Request.URL.Query().Get("page"))
		assert.Equal(t, "10", r.Request.URL.Query().Get("size"))
	})
}

func TestDoSendsDefaultHeadersAndRequestHeaders(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		buildContext := makeTestBuildContext(server.URL, nil)
		buildContext.HTTP.DefaultHeaders = make(http.Header)
		buildContext.HTTP.DefaultHeaders.Set("Authorization", "Bearer token")
		buildContext.HTTP.DefaultHeaders.Set("X-Tenant", "default")
		client, err := NewDefaultClientFactory().CreateClient(buildContext)
		require.NoError(t, err)

		header := make(http.Header)
		header.Set("X-Tenant", "override")
		_, err = client.Do(context.Background(), interfaces.Request{Header: header})
		require.NoError(t, err)

		r := <-requestsCh
		assert.Equal(t, "Bearer token", r.Request.Header.Get("Authorization"))
		assert.Equal(t, "override", r.Request.Header.Get("X-Tenant"))
	})
}

func TestRequestFiltersRunInPriorityOrderAndMayMutate(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		recorder := &sharedtest.CallRecorder{}
		config := NewConfigurationImpl()
		config.RegisterComponent(interfaces.ProviderRegistration{
			Component: &sharedtest.RecordingRequestFilter{Label: "second", Recorder: recorder},
			Priority:  10,
		})
		config.RegisterComponent(interfaces.ProviderRegistration{
			Component: &authFilter{recorder: recorder},
			Priority:  1,
		})
		client := makeTestClient(t, server.URL, config)

		_, err := client.Do(context.Background(), interfaces.Request{})
		require.NoError(t, err)

		assert.Equal(t, []string{"first", "second"}, recorder.Labels())
		r := <-requestsCh
		assert.Equal(t, "Bearer filter-token", r.Request.Header.Get("Authorization"))
	})
}

// authFilter is a distinct concrete type so it can be registered alongside a
// RecordingRequestFilter.
type authFilter struct {
	recorder *sharedtest.CallRecorder
}

func (f *authFilter) FilterRequest(ctx context.Context, req *interfaces.Request) error {
	f.recorder.Record("first")
	if req.Header == nil {
		req.Header = make(http.Header)
	}
	req.Header.Set("Authorization", "Bearer filter-token")
	return nil
}

func TestRequestFilterErrorAbortsRequest(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		filterErr := assert.AnError
		config := NewConfigurationImpl()
		config.RegisterComponent(interfaces.ProviderRegistration{
			Component: &sharedtest.RecordingRequestFilter{Err: filterErr},
			Priority:  1,
		})
		client := makeTestClient(t, server.URL, config)

		resp, err := client.Do(context.Background(), interfaces.Request{})
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, filterErr)
		assert.Equal(t, 0, len(requestsCh))
	})
}

func TestResponseFiltersRunInReversePriorityOrder(t *testing.T) {
	handler := httphelpers.HandlerWithJSONResponse(map[string]string{"message": "original"}, nil)
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		recorder := &sharedtest.CallRecorder{}
		config := NewConfigurationImpl()
		config.RegisterComponent(interfaces.ProviderRegistration{
			Component: &sharedtest.RecordingResponseFilter{
				Label:    "high",
				Recorder: recorder,
				Mutate: func(resp *interfaces.Response) {
					resp.Body = []byte(`{"message": "replaced"}`)
				},
			},
			Priority: 10,
		})
		config.RegisterComponent(interfaces.ProviderRegistration{
			Component: &secondResponseFilter{recorder: recorder},
			Priority:  1,
		})
		client := makeTestClient(t, server.URL, config)

		var result struct {
			Message string `json:"message"`
		}
		_, err := client.Do(context.Background(), interfaces.Request{Result: &result})
		require.NoError(t, err)

		// The filter with the higher priority saw the response first, and the decoded
		// result reflects its replacement body.
		assert.Equal(t, []string{"high", "low"}, recorder.Labels())
		assert.Equal(t, "replaced", result.Message)
	})
}

type secondResponseFilter struct {
	recorder *sharedtest.CallRecorder
}

func (f *secondResponseFilter) FilterResponse(ctx context.Context, resp *interfaces.Response) error {
	f.recorder.Record("low")
	return nil
}

func TestErrorResponses(t *testing.T) {
	t.Run("problem envelope title", func(t *testing.T) {
		handler := httphelpers.HandlerWithJSONResponse(
			map[string]interface{}{"status": 409, "title": "widget already exists"}, nil)
		httphelpers.WithServer(overrideStatus(handler, 409), func(server *httptest.Server) {
			client := makeTestClient(t, server.URL, nil)
			resp, err := client.Do(context.Background(), interfaces.Request{})
			require.NotNil(t, resp)
			assert.Equal(t, 409, resp.StatusCode)
			var respErr *interfaces.ResponseError
			require.ErrorAs(t, err, &respErr)
			assert.Equal(t, 409, respErr.StatusCode)
			assert.Equal(t, "widget already exists", respErr.Title)
		})
	})

	t.Run("message field fallback", func(t *testing.T) {
		handler := httphelpers.HandlerWithJSONResponse(map[string]interface{}{"message": "no such widget"}, nil)
		httphelpers.WithServer(overrideStatus(handler, 404), func(server *httptest.Server) {
			client := makeTestClient(t, server.URL, nil)
			_, err := client.Do(context.Background(), interfaces.Request{})
			var respErr *interfaces.ResponseError
			require.ErrorAs(t, err, &respErr)
			assert.Equal(t, "no such widget", respErr.Title)
		})
	})

	t.Run("status text fallback for empty body", func(t *testing.T) {
		httphelpers.WithServer(httphelpers.HandlerWithStatus(503), func(server *httptest.Server) {
			client := makeTestClient(t, server.URL, nil)
			_, err := client.Do(context.Background(), interfaces.Request{})
			var respErr *interfaces.ResponseError
			require.ErrorAs(t, err, &respErr)
			assert.Equal(t, http.StatusText(503), respErr.Title)
		})
	})

	t.Run("registered error mapper claims the response", func(t *testing.T) {
		mappedErr := assert.AnError
		handler := httphelpers.HandlerWithStatus(402)
		httphelpers.WithServer(handler, func(server *httptest.Server) {
			config := NewConfigurationImpl()
			config.RegisterComponent(interfaces.ProviderRegistration{
				Component: &sharedtest.MappingErrorMapper{MinStatus: 400, Err: mappedErr},
				Priority:  1,
			})
			client := makeTestClient(t, server.URL, config)
			resp, err := client.Do(context.Background(), interfaces.Request{})
			require.NotNil(t, resp)
			assert.ErrorIs(t, err, mappedErr)
		})
	})

	t.Run("result is not decoded on error", func(t *testing.T) {
		handler := httphelpers.HandlerWithJSONResponse(map[string]interface{}{"message": "nope"}, nil)
		httphelpers.WithServer(overrideStatus(handler, 500), func(server *httptest.Server) {
			client := makeTestClient(t, server.URL, nil)
			var result struct {
				Message string `json:"message"`
			}
			_, err := client.Do(context.Background(), interfaces.Request{Result: &result})
			assert.Error(t, err)
			assert.Empty(t, result.Message)
		})
	})
}

// overrideStatus replays a handler's headers and body under a different status code.
func overrideStatus(handler http.Handler, status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		for name, values := range rec.Header() {
			w.Header()[name] = values
		}
		w.WriteHeader(status)
		_, _ = w.Write(rec.Body.Bytes())
	})
}

func TestDoReportsMalformedResponseBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		client := makeTestClient(t, server.URL, nil)
		var result map[string]interface{}
		resp, err := client.Do(context.Background(), interfaces.Request{Result: &result})
		require.NotNil(t, resp)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "malformed response")
	})
}

func TestDoAsyncDeliversOneResultAndCloses(t *testing.T) {
	handler := httphelpers.HandlerWithJSONResponse(map[string]string{"message": "hi"}, nil)
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		client := makeTestClient(t, server.URL, nil)

		ch := client.DoAsync(context.Background(), interfaces.Request{})
		select {
		case result := <-ch:
			require.NoError(t, result.Err)
			assert.Equal(t, 200, result.Response.StatusCode)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for async result")
		}

		_, stillOpen := <-ch
		assert.False(t, stillOpen)
	})
}

func TestSubscribe(t *testing.T) {
	initialEvent := httphelpers.SSEEvent{Event: "welcome", Data: "hello"}
	handler, stream := httphelpers.SSEHandler(&initialEvent)
	defer stream.Close()
	recordingHandler, requestsCh := httphelpers.RecordingHandler(handler)

	httphelpers.WithServer(recordingHandler, func(server *httptest.Server) {
		client := makeTestClient(t, server.URL, nil)

		sub, err := client.Subscribe(context.Background(), interfaces.Request{Path: "/events"})
		require.NoError(t, err)
		defer sub.Close()

		select {
		case ev := <-sub.Events():
			assert.Equal(t, "welcome", ev.Event)
			assert.Equal(t, "hello", ev.Data)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for initial event")
		}

		stream.Enqueue(httphelpers.SSEEvent{Event: "update", Data: "more"})
		select {
		case ev := <-sub.Events():
			assert.Equal(t, "update", ev.Event)
			assert.Equal(t, "more", ev.Data)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for pushed event")
		}

		r := <-requestsCh
		assert.Equal(t, "/events", r.Request.URL.Path)
		assert.Equal(t, "text/event-stream", r.Request.Header.Get("Accept"))
	})
}

func TestSubscribeClosesEventChannelOnClose(t *testing.T) {
	initialEvent := httphelpers.SSEEvent{Event: "welcome", Data: "hello"}
	handler, stream := httphelpers.SSEHandler(&initialEvent)
	defer stream.Close()

	httphelpers.WithServer(handler, func(server *httptest.Server) {
		client := makeTestClient(t, server.URL, nil)

		sub, err := client.Subscribe(context.Background(), interfaces.Request{})
		require.NoError(t, err)
		sub.Close()
		sub.Close() // idempotent

		deadline := time.After(5 * time.Second)
		for {
			select {
			case _, ok := <-sub.Events():
				if !ok {
					return
				}
			case <-deadline:
				t.Fatal("event channel was not closed")
			}
		}
	})
}

func TestSubscribeRunsRequestFilters(t *testing.T) {
	initialEvent := httphelpers.SSEEvent{Event: "welcome", Data: "hello"}
	handler, stream := httphelpers.SSEHandler(&initialEvent)
	defer stream.Close()
	recordingHandler, requestsCh := httphelpers.RecordingHandler(handler)

	httphelpers.WithServer(recordingHandler, func(server *httptest.Server) {
		config := NewConfigurationImpl()
		config.RegisterComponent(interfaces.ProviderRegistration{
			Component: &authFilter{recorder: &sharedtest.CallRecorder{}},
			Priority:  1,
		})
		client := makeTestClient(t, server.URL, config)

		sub, err := client.Subscribe(context.Background(), interfaces.Request{})
		require.NoError(t, err)
		defer sub.Close()

		r := <-requestsCh
		assert.Equal(t, "Bearer filter-token", r.Request.Header.Get("Authorization"))
	})
}

func TestParseProblemTitle(t *testing.T) {
	assert.Equal(t, "boom", parseProblemTitle([]byte(`{"status": 500, "title": "boom"}`)))
	assert.Equal(t, "boom", parseProblemTitle([]byte(`{"message": "boom"}`)))
	assert.Equal(t, "title wins", parseProblemTitle([]byte(`{"message": "boom", "title": "title wins"}`)))
	assert.Equal(t, "", parseProblemTitle(nil))
	assert.Equal(t, "", parseProblemTitle([]byte(`not json`)))
	assert.Equal(t, "", parseProblemTitle([]byte(`[1, 2]`)))
	assert.Equal(t, "", parseProblemTitle([]byte(`{"title": "truncated`)))
}
