package internal

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	ntlm "github.com/launchdarkly/go-ntlm-proxy-auth"
)

const (
	// DefaultConnectTimeout applies when no connect timeout has been configured.
	DefaultConnectTimeout = 10 * time.Second

	// DefaultReadTimeout applies when no read timeout has been configured.
	DefaultReadTimeout = 30 * time.Second
)

// NTLMProxySettings describes an NTLM-authenticating proxy. All fields except Domain
// are required.
type NTLMProxySettings struct {
	URL      *url.URL
	Username string
	Password string
	Domain   string
}

// TransportSettings captures the transport-level options accumulated by
// rcomponents.HTTPConfigurationBuilder.
type TransportSettings struct {
	// CACertData contains PEM certificate data to add to the root CA pool. When empty,
	// system roots are used alone.
	CACertData [][]byte

	// ProxyURL forces all requests through the given proxy. When nil, proxy
	// environment variables apply.
	ProxyURL *url.URL

	// NTLMProxy, when non-nil, routes connections through an NTLM-authenticating
	// proxy. It takes precedence over ProxyURL.
	NTLMProxy *NTLMProxySettings
}

// NewHTTPTransport creates an HTTP transport from the given settings, dialing
// connections with the given timeout.
func NewHTTPTransport(settings TransportSettings, connectTimeout time.Duration) (*http.Transport, error) {
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}
	dialer := &net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 1 * time.Minute,
	}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	tlsConfig, err := makeTLSConfig(settings.CACertData)
	if err != nil {
		return nil, err
	}
	transport.TLSClientConfig = tlsConfig

	switch {
	case settings.NTLMProxy != nil:
		p := settings.NTLMProxy
		if p.URL == nil || p.Username == "" || p.Password == "" {
			return nil, errors.New("NTLM proxy requires a URL, username, and password")
		}
		transport.Proxy = nil
		transport.DialContext = ntlm.NewNTLMProxyDialContext(dialer, *p.URL, p.Username, p.Password, p.Domain, tlsConfig)
	case settings.ProxyURL != nil:
		transport.Proxy = http.ProxyURL(settings.ProxyURL)
	}

	return transport, nil
}

// NewHTTPClient creates an HTTP client from the given settings and timeouts.
func NewHTTPClient(settings TransportSettings, connectTimeout, readTimeout time.Duration) (*http.Client, error) {
	transport, err := NewHTTPTransport(settings, connectTimeout)
	if err != nil {
		return nil, err
	}
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}
	return &http.Client{
		Transport: transport,
		Timeout:   readTimeout,
	}, nil
}

func makeTLSConfig(caCertData [][]byte) (*tls.Config, error) {
	if len(caCertData) == 0 {
		return &tls.Config{MinVersion: tls.VersionTLS12}, nil
	}
	pool, err := x509.SystemCertPool()
	if err != nil {
		pool = x509.NewCertPool()
	}
	for _, data := range caCertData {
		if !pool.AppendCertsFromPEM(data) {
			return nil, fmt.Errorf("invalid CA certificate data")
		}
	}
	return &tls.Config{MinVersion: tls.VersionTLS12, RootCAs: pool}, nil
}
