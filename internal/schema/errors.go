package schema

import "fmt"

// InvalidSchemaError is returned by a constructor when a declared invariant
// is violated. It is a programmer error: a schema that fails to construct
// must never be handed to a compiler, renderer, or validator.
type InvalidSchemaError struct {
	Field  string
	Reason string
}

func (e *InvalidSchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid schema: %s", e.Reason)
	}
	return fmt.Sprintf("invalid schema: field %q: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &InvalidSchemaError{Field: field, Reason: reason}
}
