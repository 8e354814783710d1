package experiences

import "time"

// Experience is one position in the user's work history.
type Experience struct {
	ID           string    `json:"id"`
	UserID       string    `json:"-"`
	Company      string    `json:"company"`
	Title        string    `json:"title"`
	StartDate    string    `json:"startDate"`
	EndDate      string    `json:"endDate"`
	IsCurrent    bool      `json:"isCurrent"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Bullet is one accomplishment statement attached to an experience.
type Bullet struct {
	ID               string    `json:"id"`
	WorkExperienceID string    `json:"workExperienceId"`
	Text             string    `json:"text"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ExperienceInput carries the fields a caller may set on a new experience.
type ExperienceInput struct {
	Company   string `json:"company"`
	Title     string `json:"title"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	IsCurrent bool   `json:"isCurrent"`
}

// Pool pairs an experience with its active bullets.
type Pool struct {
	Experience Experience
	Bullets    []Bullet
}

// Texts returns the bullet texts in pool order.
func (p Pool) Texts() []string {
	out := make([]string, 0, len(p.Bullets))
	for _, b := range p.Bullets {
		out = append(out, b.Text)
	}
	return out
}
