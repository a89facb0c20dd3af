package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/talenthub/talenthub-api/internal/core/domain"
	"github.com/talenthub/talenthub-api/internal/core/ports"
)

// ResourceService forwards every call to its repository unchanged. It is the
// place for resource rules (quotas, cross-resource checks) once they exist.
type ResourceService[T any] struct {
	repo   ports.ResourceRepository[T]
	logger zerolog.Logger
}

var _ ports.ResourceService[domain.User] = (*ResourceService[domain.User])(nil)

func NewResourceService[T any](repo ports.ResourceRepository[T], logger zerolog.Logger) *ResourceService[T] {
	return &ResourceService[T]{repo: repo, logger: logger}
}

func (s *ResourceService[T]) Create(ctx context.Context, fields domain.Fields) (*T, error) {
	s.logger.Debug().Int("fields", len(fields)).Msg("create")
	return s.repo.Create(ctx, fields)
}

func (s *ResourceService[T]) GetAll(ctx context.Context) ([]T, error) {
	return s.repo.GetAll(ctx)
}

func (s *ResourceService[T]) GetByID(ctx context.Context, id string) (*T, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ResourceService[T]) GetPaginated(ctx context.Context, page, limit int) ([]T, error) {
	return s.repo.GetPaginated(ctx, page, limit)
}

func (s *ResourceService[T]) UpdateByID(ctx context.Context, id string, fields domain.Fields) (*T, error) {
	s.logger.Debug().Str("id", id).Int("fields", len(fields)).Msg("update")
	return s.repo.UpdateByID(ctx, id, fields)
}

func (s *ResourceService[T]) DeleteByID(ctx context.Context, id string) (*T, error) {
	s.logger.Debug().Str("id", id).Msg("delete")
	return s.repo.DeleteByID(ctx, id)
}
