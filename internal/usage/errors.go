package usage

import "errors"

var (
	// ErrLimitReached indicates the user has generated their maximum number of resumes.
	ErrLimitReached = errors.New("resume limit reached")

	// ErrUnknownUser indicates no usage row exists for the user.
	ErrUnknownUser = errors.New("unknown user")
)
