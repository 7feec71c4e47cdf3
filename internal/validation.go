package internal

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/typedrest/go-rest-client/interfaces"
)

var specValidator = validator.New() //nolint:gochecknoglobals // validator instances cache struct metadata

// ValidateServiceSpec checks a spec against the constraints the builder requires:
// a service name, a bind function, and well-formed provider declarations.
func ValidateServiceSpec(spec interfaces.ServiceSpec) error {
	if err := specValidator.Struct(spec); err != nil {
		return fmt.Errorf("invalid service spec: %w", err)
	}
	for i, reg := range spec.Providers {
		if reg.Component == nil {
			return fmt.Errorf("invalid service spec %q: provider %d has a nil component", spec.Name, i)
		}
		for _, kind := range reg.Contracts {
			switch kind {
			case interfaces.RequestFilterKind, interfaces.ResponseFilterKind, interfaces.ErrorMapperKind:
			default:
				return fmt.Errorf("invalid service spec %q: provider %d declares unknown contract %q",
					spec.Name, i, kind)
			}
		}
	}
	return nil
}
