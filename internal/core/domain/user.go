package domain

import "time"

// UserRole is the account type of a marketplace user.
type UserRole string

const (
	RoleFreelancer UserRole = "freelancer"
	RoleClient     UserRole = "client"
	RoleAdmin      UserRole = "admin"
)

// User models a marketplace account. The stored password hash is write-only
// and never part of this read model.
type User struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	Role               UserRole   `json:"role"`
	FullName           string     `json:"full_name"`
	Bio                *string    `json:"bio"`
	ProfileImage       *string    `json:"profile_image"`
	Skills             []string   `json:"skills"`
	HourlyRate         *float64   `json:"hourly_rate"`
	SubscriptionPlanID *string    `json:"subscription_plan_id"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at"`
}

// UserSummary is the public subset of a user embedded into jobs and projects.
type UserSummary struct {
	FullName string   `json:"full_name"`
	Email    string   `json:"email"`
	Bio      *string  `json:"bio"`
	Skills   []string `json:"skills"`
}
