package handler

import (
	"github.com/talenthub/talenthub-api/internal/core/domain"
	"github.com/talenthub/talenthub-api/internal/core/ports"
)

// ProjectHandler serves /api/projects.
type ProjectHandler = ResourceHandler[domain.Project, createProjectRequest, updateProjectRequest]

func NewProjectHandler(service ports.ResourceService[domain.Project], opts Options) *ProjectHandler {
	return newResourceHandler[domain.Project, createProjectRequest, updateProjectRequest](service, "project", "projects", opts)
}

type createProjectRequest struct {
	FreelancerID string   `json:"freelancer_id" validate:"required,uuid"`
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Price        *float64 `json:"price" validate:"required,gte=0"`
	DemoURL      *string  `json:"demo_url" validate:"omitempty,url"`
	ThumbnailURL string   `json:"thumbnail_url" validate:"required,url"`
}

func (r createProjectRequest) fields() (domain.Fields, error) {
	f := domain.Fields{
		"freelancer_id": r.FreelancerID,
		"title":         r.Title,
		"description":   r.Description,
		"price":         *r.Price,
		"thumbnail_url": r.ThumbnailURL,
	}
	put(f, "demo_url", r.DemoURL)
	return f, nil
}

type updateProjectRequest struct {
	FreelancerID *string  `json:"freelancer_id" validate:"omitempty,uuid"`
	Title        *string  `json:"title" validate:"omitempty,min=1"`
	Description  *string  `json:"description" validate:"omitempty,min=1"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	DemoURL      *string  `json:"demo_url" validate:"omitempty,url"`
	ThumbnailURL *string  `json:"thumbnail_url" validate:"omitempty,url"`
}

func (r updateProjectRequest) fields() (domain.Fields, error) {
	f := domain.Fields{}
	put(f, "freelancer_id", r.FreelancerID)
	put(f, "title", r.Title)
	put(f, "description", r.Description)
	put(f, "price", r.Price)
	put(f, "demo_url", r.DemoURL)
	put(f, "thumbnail_url", r.ThumbnailURL)
	return f, nil
}

func (updateProjectRequest) clearable() []string {
	return []string{"demo_url"}
}
