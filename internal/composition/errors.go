package composition

import "errors"

var (
	// ErrNotFound is returned when a page or template block does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConfiguration is returned when stored data references something the
	// build does not know about, like an unregistered block type.
	ErrConfiguration = errors.New("configuration error")
	// ErrConstraintViolation is returned when the store rejects a write that
	// would break a uniqueness constraint.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrDanglingReference is returned when a delete would leave rows pointing
	// at a missing page.
	ErrDanglingReference = errors.New("dangling reference")
)
