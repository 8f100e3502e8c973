package entity

import "time"

// JobRecord represents one job listing as returned by a careers API.
// Records are immutable once constructed; the notification pipeline only
// reads them.
type JobRecord struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Location        string    `json:"location"`
	WorkFlexibility string    `json:"work_flexibility"`
	Profession      string    `json:"profession"`
	Discipline      string    `json:"discipline"`
	RoleType        string    `json:"role_type"`
	EmploymentType  string    `json:"employment_type"`
	Description     string    `json:"description"`
	PostedAt        time.Time `json:"posted_at"`
	ApplyURL        string    `json:"apply_url"`
}
