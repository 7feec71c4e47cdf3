// Package rcfiledata allows client-builder properties to be read from files instead
// of (or in addition to) environment variables. Files may be in YAML or JSON format
// and contain a flat mapping from property keys to values:
//
//	orders.OrderService/mp-rest/connectTimeout: 2000
//	orders.OrderService/mp-rest/readTimeout: 10000
//
// Use it with a builder as follows:
//
//	resolver, err := rcfiledata.DataSource().
//	    FilePaths("./config/rest-clients.yaml").
//	    CreatePropertyResolver(loggers)
//	// ...
//	builder.PropertyResolver(resolver)
//
// To reload files automatically when they change, use the rcfilewatch package; the
// two are separate so that applications without reloading do not pull in the file
// watcher dependency.
package rcfiledata
