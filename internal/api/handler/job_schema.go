package handler

import (
	"github.com/talenthub/talenthub-api/internal/core/domain"
	"github.com/talenthub/talenthub-api/internal/core/ports"
)

// JobHandler serves /api/jobs.
type JobHandler = ResourceHandler[domain.Job, createJobRequest, updateJobRequest]

func NewJobHandler(service ports.ResourceService[domain.Job], opts Options) *JobHandler {
	return newResourceHandler[domain.Job, createJobRequest, updateJobRequest](service, "job", "jobs", opts)
}

type createJobRequest struct {
	ClientID        string   `json:"client_id" validate:"required,uuid"`
	Title           string   `json:"title" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	Category        string   `json:"category" validate:"required"`
	BudgetMin       *float64 `json:"budget_min" validate:"required,gte=0"`
	BudgetMax       *float64 `json:"budget_max" validate:"required,gte=0"`
	ExperienceLevel string   `json:"experience_level" validate:"required,oneof=beginner intermediate expert"`
	Status          string   `json:"status" validate:"required,oneof=open closed in_progress"`
}

func (r createJobRequest) fields() (domain.Fields, error) {
	return domain.Fields{
		"client_id":        r.ClientID,
		"title":            r.Title,
		"description":      r.Description,
		"category":         r.Category,
		"budget_min":       *r.BudgetMin,
		"budget_max":       *r.BudgetMax,
		"experience_level": r.ExperienceLevel,
		"status":           r.Status,
	}, nil
}

type updateJobRequest struct {
	ClientID        *string  `json:"client_id" validate:"omitempty,uuid"`
	Title           *string  `json:"title" validate:"omitempty,min=1"`
	Description     *string  `json:"description" validate:"omitempty,min=1"`
	Category        *string  `json:"category" validate:"omitempty,min=1"`
	BudgetMin       *float64 `json:"budget_min" validate:"omitempty,gte=0"`
	BudgetMax       *float64 `json:"budget_max" validate:"omitempty,gte=0"`
	ExperienceLevel *string  `json:"experience_level" validate:"omitempty,oneof=beginner intermediate expert"`
	Status          *string  `json:"status" validate:"omitempty,oneof=open closed in_progress"`
}

func (r updateJobRequest) fields() (domain.Fields, error) {
	f := domain.Fields{}
	put(f, "client_id", r.ClientID)
	put(f, "title", r.Title)
	put(f, "description", r.Description)
	put(f, "category", r.Category)
	put(f, "budget_min", r.BudgetMin)
	put(f, "budget_max", r.BudgetMax)
	put(f, "experience_level", r.ExperienceLevel)
	put(f, "status", r.Status)
	return f, nil
}
