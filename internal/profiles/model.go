package profiles

// Education is one degree entry.
type Education struct {
	Degree string `json:"degree" yaml:"degree"`
	School string `json:"school" yaml:"school"`
	Year   string `json:"year" yaml:"year"`
}

// Profile holds the personal details printed at the top of a resume.
type Profile struct {
	UserID      string      `json:"-" yaml:"-"`
	FullName    string      `json:"fullName" yaml:"full_name"`
	Email       string      `json:"email" yaml:"email"`
	Phone       string      `json:"phone" yaml:"phone"`
	LinkedInURL string      `json:"linkedinUrl" yaml:"linkedin_url"`
	Location    string      `json:"location" yaml:"location"`
	Education   []Education `json:"education" yaml:"education"`
	Skills      []string    `json:"skills" yaml:"skills"`
}

// Empty returns a blank profile for the user.
func Empty(userID string) Profile {
	return Profile{UserID: userID, Education: []Education{}, Skills: []string{}}
}
