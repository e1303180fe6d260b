package value

import "errors"

var (
	// ErrBadValueType is returned when a value's dynamic type does not match
	// the type requested by the caller, or a Go value has no cty equivalent.
	ErrBadValueType = errors.New("bad value type")

	// ErrInvalidDimensions is returned for sizes that do not fit a plane.
	ErrInvalidDimensions = errors.New("invalid dimensions")
)
