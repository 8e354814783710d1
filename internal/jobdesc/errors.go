package jobdesc

import "github.com/pkg/errors"

var (
	// ErrFetchFailed covers network errors, timeouts and non-2xx responses.
	ErrFetchFailed = errors.New("job description fetch failed")

	// ErrTooShort means the page yielded less text than a real posting.
	ErrTooShort = errors.New("job description too short")
)
