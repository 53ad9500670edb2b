package libscn

import "errors"

var (
	// Popping without a matching push. Aborts the frame.
	ErrStackUnderflow = errors.New("transform stack underflow")
	// Stack depth after a frame differs from the depth before it.
	ErrUnbalancedStack = errors.New("transform stack unbalanced")
	// The model-view upper 3x3 cannot be inverted for the normal matrix.
	ErrSingularMatrix = errors.New("singular model-view matrix")

	ErrCapacityExceeded = errors.New("light capacity exceeded")
	ErrUnderflow        = errors.New("at least one light is required")
	ErrMalformedLight   = errors.New("malformed light")

	// Non-finite reflectance or shininess.
	ErrMalformedMaterial = errors.New("malformed material")

	// eye == at, up parallel to the view direction or non-finite pose.
	ErrDegenerateCamera = errors.New("degenerate camera")
)
