// Package rcomponents contains the built-in component implementations used by the
// client builder, along with fluent sub-builders for configuring them.
//
// Normally you will not need this package unless you want non-default behavior: every
// component here is also the builder's default. For example, to trust a private CA and
// log every request:
//
//	builder := restclient.NewClientBuilder().
//	    HTTPConfigurationFactory(rcomponents.HTTPConfiguration().CACertFile("ca.pem")).
//	    LoggingConfigurationFactory(rcomponents.Logging().LogRequests(true))
package rcomponents
