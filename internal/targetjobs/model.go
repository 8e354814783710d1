package targetjobs

import (
	"strings"
	"time"
)

// TargetJob is a posting the user wants to tailor a resume for.
type TargetJob struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	Company     string    `json:"company"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	DateAdded   time.Time `json:"dateAdded"`
}

// HasDescription reports whether a non-blank description is stored.
func (j TargetJob) HasDescription() bool {
	return strings.TrimSpace(j.Description) != ""
}

// AddInput carries the fields accepted when adding a job.
type AddInput struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Description statuses reported after add or refetch.
const (
	DescriptionProvided    = "provided"
	DescriptionFetched     = "fetched"
	DescriptionUnavailable = "unavailable"
	DescriptionNone        = "none"
)

// Result pairs a job with how its description was obtained.
type Result struct {
	Job               TargetJob `json:"job"`
	DescriptionStatus string    `json:"descriptionStatus"`
}
