package registry

import "errors"

var (
	// ErrUnknownOperation is returned when an operation name or OpID is not
	// defined in the registry.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrDuplicateOperation is returned when an operation name is defined twice.
	ErrDuplicateOperation = errors.New("duplicate operation")

	// ErrFrozen is returned when a frozen registry is asked to change.
	ErrFrozen = errors.New("registry is frozen")

	// ErrMissingKernel is returned when an operation names a kernel that was
	// never registered.
	ErrMissingKernel = errors.New("kernel not registered")

	// ErrKernelPanic is returned when a kernel panics during invocation.
	ErrKernelPanic = errors.New("kernel panicked")
)
