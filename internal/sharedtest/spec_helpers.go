package sharedtest

import (
	"github.com/typedrest/go-rest-client/interfaces"
)

// SimpleServiceSpec returns a minimal valid ServiceSpec whose Bind function returns
// the low-level client unchanged.
func SimpleServiceSpec(name string) interfaces.ServiceSpec {
	return interfaces.ServiceSpec{
		Name: name,
		Bind: func(client interfaces.ResourceClient) interface{} { return client },
	}
}
