// Package restclient provides a builder for constructing typed REST clients.
//
// A ClientBuilder accumulates a base address, timeouts, arbitrary properties, and
// provider registrations, then constructs a client for a service contract described by
// an interfaces.ServiceSpec:
//
//	orders, err := restclient.BuildTyped[OrderService](
//	    restclient.NewClientBuilder().
//	        BaseURI("https://api.example.com").
//	        ConnectTimeout(2*time.Second),
//	    ordersSpec)
//
// Per-service timeouts may also be supplied through external configuration: for a
// service named "orders.OrderService", the keys "orders.OrderService/mp-rest/connectTimeout"
// and "orders.OrderService/mp-rest/readTimeout" (integer milliseconds) override any
// values set on the builder. The default resolver reads environment variables; see
// rcomponents.EnvironmentPropertyResolver and the rcfiledata package for alternatives.
//
// Subpackages:
//   - interfaces: types shared between the builder and pluggable components
//   - rcomponents: built-in component implementations and their fluent builders
//   - rcfiledata, rcfilewatch: file-backed property source with optional auto-reload
package restclient
