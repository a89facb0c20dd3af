package ports

import (
	"context"

	"github.com/talenthub/talenthub-api/internal/core/domain"
)

// ResourceRepository defines persistence operations for one table-backed
// resource. Every method issues a single record store call.
type ResourceRepository[T any] interface {
	Create(ctx context.Context, fields domain.Fields) (*T, error)
	GetAll(ctx context.Context) ([]T, error)
	// GetByID returns domain.ErrNotFound when no row has the given id.
	GetByID(ctx context.Context, id string) (*T, error)
	// GetPaginated returns at most limit rows starting at (page-1)*limit.
	// A page past the end yields an empty slice, not an error.
	GetPaginated(ctx context.Context, page, limit int) ([]T, error)
	// UpdateByID writes only the supplied fields and returns the full row.
	UpdateByID(ctx context.Context, id string, fields domain.Fields) (*T, error)
	// DeleteByID removes the row and returns its last-known content.
	DeleteByID(ctx context.Context, id string) (*T, error)
}
