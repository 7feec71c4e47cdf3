package rcomponents

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/typedrest/go-rest-client/interfaces"
	"github.com/typedrest/go-rest-client/internal"
)

// HTTPConfigurationBuilder contains methods for configuring the transport used by
// built clients: proxies, CA certificates, and default headers.
//
// Obtain one with HTTPConfiguration(), change its properties, and store it on the
// builder with ClientBuilder.HTTPConfigurationFactory. Timeouts are not set here; they
// come from the builder's ConnectTimeout/ReadTimeout setters or from per-service
// configuration keys.
type HTTPConfigurationBuilder struct {
	caCertData     [][]byte
	caCertFiles    []string
	proxyURL       string
	ntlm           *internal.NTLMProxySettings
	defaultHeaders http.Header
}

// HTTPConfiguration returns a configuration builder with default transport settings:
// system CA roots, proxy environment variables honored, and no extra headers beyond
// the client's User-Agent.
func HTTPConfiguration() *HTTPConfigurationBuilder {
	return &HTTPConfigurationBuilder{}
}

// CACert adds PEM certificate data to the root CA pool, in addition to system roots.
func (b *HTTPConfigurationBuilder) CACert(certData []byte) *HTTPConfigurationBuilder {
	b.caCertData = append(b.caCertData, certData)
	return b
}

// CACertFile adds a PEM certificate file to the root CA pool, in addition to system
// roots. The file is read when the configuration is created, so a missing or invalid
// file fails the build rather than the first request.
func (b *HTTPConfigurationBuilder) CACertFile(path string) *HTTPConfigurationBuilder {
	b.caCertFiles = append(b.caCertFiles, path)
	return b
}

// ProxyURL forces all requests through the given proxy, overriding proxy environment
// variables.
func (b *HTTPConfigurationBuilder) ProxyURL(proxyURL string) *HTTPConfigurationBuilder {
	b.proxyURL = proxyURL
	return b
}

// NTLMProxyAuth routes connections through an NTLM-authenticating proxy. This is
// distinct from ProxyURL, which performs no authentication. The domain may be empty.
func (b *HTTPConfigurationBuilder) NTLMProxyAuth(proxyURL, username, password, domain string) *HTTPConfigurationBuilder {
	b.ntlm = &internal.NTLMProxySettings{
		Username: username,
		Password: password,
		Domain:   domain,
	}
	b.proxyURL = proxyURL
	return b
}

// Header sets a header to send with every request. Calling it again for the same name
// replaces the previous value.
func (b *HTTPConfigurationBuilder) Header(name, value string) *HTTPConfigurationBuilder {
	if b.defaultHeaders == nil {
		b.defaultHeaders = make(http.Header)
	}
	b.defaultHeaders.Set(name, value)
	return b
}

// CreateHTTPConfiguration is called by the builder at build time.
func (b *HTTPConfigurationBuilder) CreateHTTPConfiguration() (interfaces.HTTPConfiguration, error) {
	settings := internal.TransportSettings{
		CACertData: append([][]byte(nil), b.caCertData...),
	}
	for _, path := range b.caCertFiles {
		data, err := os.ReadFile(path)
		if err != nil {
			return interfaces.HTTPConfiguration{}, fmt.Errorf("cannot read CA certificate file %s: %w", path, err)
		}
		settings.CACertData = append(settings.CACertData, data)
	}
	if b.ntlm != nil && b.proxyURL == "" {
		return interfaces.HTTPConfiguration{}, errors.New("NTLM proxy authentication requires a proxy URL")
	}
	if b.proxyURL != "" {
		parsed, err := url.Parse(b.proxyURL)
		if err != nil {
			return interfaces.HTTPConfiguration{}, fmt.Errorf("invalid proxy URL %s: %w", b.proxyURL, err)
		}
		if b.ntlm != nil {
			ntlm := *b.ntlm
			ntlm.URL = parsed
			settings.NTLMProxy = &ntlm
		} else {
			settings.ProxyURL = parsed
		}
	}

	// Surface bad certificate data or proxy settings now rather than at first request.
	if _, err := internal.NewHTTPTransport(settings, 0); err != nil {
		return interfaces.HTTPConfiguration{}, err
	}

	headers := make(http.Header)
	headers.Set("User-Agent", "TypedRestClient/"+internal.Version)
	for name, values := range b.defaultHeaders {
		headers[name] = append([]string(nil), values...)
	}

	return interfaces.HTTPConfiguration{
		DefaultHeaders: headers,
		CreateHTTPClient: func(connectTimeout, readTimeout time.Duration) *http.Client {
			client, err := internal.NewHTTPClient(settings, connectTimeout, readTimeout)
			if err != nil {
				// Settings were validated above; this is unreachable with a
				// configuration produced by this builder.
				return &http.Client{Timeout: readTimeout}
			}
			return client
		},
	}, nil
}
