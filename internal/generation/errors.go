package generation

import (
	"errors"
	"fmt"

	"resume-optimizer/internal/usage"
	"resume-optimizer/resume/render"
)

var (
	ErrNotFound           = errors.New("target job not found")
	ErrMissingDescription = errors.New("job description unavailable")
	ErrNoBullets          = errors.New("no active bullets")
)

// Error reports the state a generation failed in. It unwraps to the cause.
type Error struct {
	State State
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("resume generation failed while %s: %v", e.State, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message returns text suitable for showing to the user.
func (e *Error) Message() string {
	switch {
	case errors.Is(e.Err, ErrNotFound):
		return "That job could not be found."
	case errors.Is(e.Err, ErrMissingDescription):
		return "This job has no description. Paste one, or add a URL whose posting can be read."
	case errors.Is(e.Err, ErrNoBullets):
		return "Add at least one work experience with bullets before generating a resume."
	case errors.Is(e.Err, usage.ErrLimitReached):
		return "You have reached your resume limit."
	case errors.Is(e.Err, render.ErrRenderFailed):
		return "The resume PDF could not be produced. Please try again."
	default:
		return "The resume could not be generated. Please try again."
	}
}
