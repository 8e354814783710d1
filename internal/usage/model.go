package usage

// Usage is a snapshot of a user's resume quota.
type Usage struct {
	Count     int `json:"resumeCount"`
	Limit     int `json:"resumeLimit"`
	Remaining int `json:"resumesRemaining"`
}

func snapshot(count, limit int) Usage {
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Usage{Count: count, Limit: limit, Remaining: remaining}
}

// CanGenerate reports whether another resume fits in the quota.
func (u Usage) CanGenerate() bool {
	return u.Count < u.Limit
}
