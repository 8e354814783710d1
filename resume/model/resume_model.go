// Package model holds the data a tailored resume is assembled from.
package model

import "strings"

// Resume is everything printed on one tailored resume.
type Resume struct {
	Profile     Profile
	Experiences []Experience
	// Selections maps an experience ID to its chosen bullets, in print order.
	Selections map[string][]string
}

// Profile captures the identity, contact, education and skills sections.
type Profile struct {
	FullName    string
	Email       string
	Phone       string
	LinkedInURL string
	Location    string
	Education   []Education
	Skills      []string
}

// Education is one degree line.
type Education struct {
	Degree string
	School string
	Year   string
}

// Experience is one position in display order.
type Experience struct {
	ID        string
	Company   string
	Title     string
	StartDate string
	EndDate   string
	IsCurrent bool
}

// DateRange renders "start - end", or "start - Present" for current or open-ended roles.
func (e Experience) DateRange() string {
	start := strings.TrimSpace(e.StartDate)
	end := strings.TrimSpace(e.EndDate)
	if start == "" && end == "" && !e.IsCurrent {
		return ""
	}
	if e.IsCurrent || end == "" {
		end = "Present"
	}
	return start + " - " + end
}

// Bullets returns the selected bullets for the experience.
func (r Resume) Bullets(experienceID string) []string {
	return r.Selections[experienceID]
}
