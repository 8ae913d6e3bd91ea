package validators

import "errors"

var (
	// ErrUnsupportedType is returned when Validate receives a value it has no
	// rules for.
	ErrUnsupportedType = errors.New("unsupported type for validation")
)
