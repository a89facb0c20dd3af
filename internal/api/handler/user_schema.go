package handler

import (
	"fmt"

	"github.com/talenthub/talenthub-api/internal/core/domain"
	"github.com/talenthub/talenthub-api/internal/core/ports"
)

// UserHandler serves /api/users.
type UserHandler = ResourceHandler[domain.User, createUserRequest, updateUserRequest]

func NewUserHandler(service ports.ResourceService[domain.User], opts Options) *UserHandler {
	return newResourceHandler[domain.User, createUserRequest, updateUserRequest](service, "user", "users", opts)
}

// Passwords are accepted in clear text and stored as a bcrypt hash. bcrypt
// ignores input past 72 bytes, hence the upper bound.
type createUserRequest struct {
	Email              string   `json:"email" validate:"required,email"`
	Password           string   `json:"password" validate:"required,min=8,max=72"`
	Role               string   `json:"role" validate:"required,oneof=freelancer client admin"`
	FullName           string   `json:"full_name" validate:"required"`
	Bio                *string  `json:"bio"`
	ProfileImage       *string  `json:"profile_image" validate:"omitempty,url"`
	Skills             []string `json:"skills"`
	HourlyRate         *float64 `json:"hourly_rate" validate:"omitempty,gte=0"`
	SubscriptionPlanID *string  `json:"subscription_plan_id" validate:"omitempty,uuid"`
}

func (r createUserRequest) fields() (domain.Fields, error) {
	hash, err := hashPassword(r.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	f := domain.Fields{
		"email":         r.Email,
		"password_hash": hash,
		"role":          r.Role,
		"full_name":     r.FullName,
	}
	put(f, "bio", r.Bio)
	put(f, "profile_image", r.ProfileImage)
	if r.Skills != nil {
		f["skills"] = r.Skills
	}
	put(f, "hourly_rate", r.HourlyRate)
	put(f, "subscription_plan_id", r.SubscriptionPlanID)
	return f, nil
}

type updateUserRequest struct {
	Email              *string  `json:"email" validate:"omitempty,email"`
	Password           *string  `json:"password" validate:"omitempty,min=8,max=72"`
	Role               *string  `json:"role" validate:"omitempty,oneof=freelancer client admin"`
	FullName           *string  `json:"full_name" validate:"omitempty,min=1"`
	Bio                *string  `json:"bio"`
	ProfileImage       *string  `json:"profile_image" validate:"omitempty,url"`
	Skills             []string `json:"skills"`
	HourlyRate         *float64 `json:"hourly_rate" validate:"omitempty,gte=0"`
	SubscriptionPlanID *string  `json:"subscription_plan_id" validate:"omitempty,uuid"`
}

func (r updateUserRequest) fields() (domain.Fields, error) {
	f := domain.Fields{}
	put(f, "email", r.Email)
	if r.Password != nil {
		hash, err := hashPassword(*r.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		f["password_hash"] = hash
	}
	put(f, "role", r.Role)
	put(f, "full_name", r.FullName)
	put(f, "bio", r.Bio)
	put(f, "profile_image", r.ProfileImage)
	if r.Skills != nil {
		f["skills"] = r.Skills
	}
	put(f, "hourly_rate", r.HourlyRate)
	put(f, "subscription_plan_id", r.SubscriptionPlanID)
	return f, nil
}

func (updateUserRequest) clearable() []string {
	return []string{"bio", "profile_image", "hourly_rate", "subscription_plan_id"}
}
