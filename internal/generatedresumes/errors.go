package generatedresumes

import "errors"

var (
	// ErrNotFound indicates the resume does not exist or belongs to another user.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")
)
