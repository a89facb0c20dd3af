package domain

import "time"

// Project is a portfolio entry published by a freelancer.
type Project struct {
	ID           string    `json:"id"`
	FreelancerID string    `json:"freelancer_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	DemoURL      *string   `json:"demo_url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
	// User is the owning freelancer, present on reads only.
	User *UserSummary `json:"user,omitempty"`
}
