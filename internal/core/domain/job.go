package domain

import "time"

// ExperienceLevel is the seniority a job asks for.
type ExperienceLevel string

const (
	LevelBeginner     ExperienceLevel = "beginner"
	LevelIntermediate ExperienceLevel = "intermediate"
	LevelExpert       ExperienceLevel = "expert"
)

// JobStatus represents the lifecycle state of a job posting.
type JobStatus string

const (
	JobOpen       JobStatus = "open"
	JobClosed     JobStatus = "closed"
	JobInProgress JobStatus = "in_progress"
)

// Job is a posting created by a client user.
type Job struct {
	ID              string          `json:"id"`
	ClientID        string          `json:"client_id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	BudgetMin       float64         `json:"budget_min"`
	BudgetMax       float64         `json:"budget_max"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	Status          JobStatus       `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	// User is the posting client, present on reads only.
	User *UserSummary `json:"user,omitempty"`
}
