package generatedresumes

import "time"

// GeneratedResume is one rendered resume produced for a target job.
type GeneratedResume struct {
	ID          string              `json:"id"`
	UserID      string              `json:"-"`
	TargetJobID string              `json:"targetJobId"`
	Selections  map[string][]string `json:"selections"`
	HTML        string              `json:"-"`
	Filename    string              `json:"filename"`
	StorageKey  string              `json:"-"`
	SizeBytes   int64               `json:"sizeBytes"`
	PageCount   int                 `json:"pageCount"`
	CreatedAt   time.Time           `json:"createdAt"`

	// Filled from the target job on reads.
	JobCompany string `json:"jobCompany"`
	JobTitle   string `json:"jobTitle"`
}
