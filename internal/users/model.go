package users

import "time"

// DefaultResumeLimit is the number of resumes a new account may generate.
const DefaultResumeLimit = 50

// User is an account holder. Users are never deleted.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	ResumeCount  int       `json:"resumeCount"`
	ResumeLimit  int       `json:"resumeLimit"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Remaining reports how many resumes the user may still generate.
func (u User) Remaining() int {
	if r := u.ResumeLimit - u.ResumeCount; r > 0 {
		return r
	}
	return 0
}
