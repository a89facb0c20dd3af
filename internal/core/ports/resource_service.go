package ports

import (
	"context"

	"github.com/talenthub/talenthub-api/internal/core/domain"
)

// ResourceService defines use-case operations for a resource. It mirrors
// ResourceRepository so that resource rules can be added later without
// reshaping the HTTP layer.
type ResourceService[T any] interface {
	Create(ctx context.Context, fields domain.Fields) (*T, error)
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	GetPaginated(ctx context.Context, page, limit int) ([]T, error)
	UpdateByID(ctx context.Context, id string, fields domain.Fields) (*T, error)
	DeleteByID(ctx context.Context, id string) (*T, error)
}
