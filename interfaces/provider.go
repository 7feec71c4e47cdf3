package interfaces

import (
	"context"
)

// ProviderKind identifies one of the contracts that a provider component may fulfill
// during request processing.
type ProviderKind string

const (
	// RequestFilterKind is the contract for components that inspect or modify outgoing
	// requests before they reach the transport. See RequestFilter.
	RequestFilterKind ProviderKind = "request-filter"

	// ResponseFilterKind is the contract for components that inspect or modify responses
	// after the transport returns them. See ResponseFilter.
	ResponseFilterKind ProviderKind = "response-filter"

	// ErrorMapperKind is the contract for components that translate error responses into
	// application-level errors. See ErrorMapper.
	ErrorMapperKind ProviderKind = "error-mapper"
)

// DefaultProviderPriority is the priority assigned to a registered component when no
// explicit priority is given, or when a ServiceSpec declares a priority of -1.
const DefaultProviderPriority = 5000

// RequestFilter is implemented by provider components that run before a request is sent.
// Filters run in ascending priority order. Returning a non-nil error aborts the request.
type RequestFilter interface {
	FilterRequest(ctx context.Context, req *Request) error
}

// ResponseFilter is implemented by provider components that run after a response is
// received. Filters run in descending priority order, so the highest-priority request
// filter sees the response last.
type ResponseFilter interface {
	FilterResponse(ctx context.Context, resp *Response) error
}

// ErrorMapper is implemented by provider components that translate an error response
// (status >= 400) into an error value. Mappers are consulted in ascending priority
// order; the first non-nil error wins. A mapper that does not recognize the response
// should return nil so that later mappers and the built-in default can run.
type ErrorMapper interface {
	MapError(resp *Response) error
}

// ProviderRegistration describes one provider component together with its priority and
// the contracts it is bound to.
//
// A Priority of -1 means "no explicit priority"; the registry substitutes
// DefaultProviderPriority. When Contracts is empty, the component serves every
// contract its concrete type implements.
type ProviderRegistration struct {
	// Component is the provider instance. Its concrete type is its registration
	// identity: registering a second component of the same type is a no-op.
	Component interface{}

	// Priority determines filter ordering. Lower values run earlier on the request
	// path and later on the response path.
	Priority int

	// Contracts optionally restricts which contracts the component serves.
	Contracts []ProviderKind
}
