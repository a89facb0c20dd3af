// Package repository maps resource operations onto single record store calls.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/talenthub/talenthub-api/internal/core/domain"
	"github.com/talenthub/talenthub-api/internal/core/ports"
	"github.com/talenthub/talenthub-api/internal/infrastructure/db/store"
	"github.com/talenthub/talenthub-api/internal/metrics"
)

// ResourceRepository is the generic table-backed repository. Every method
// issues exactly one store call, records metrics and logs failures, and
// always hands the error back to the caller.
type ResourceRepository[T any] struct {
	client store.Client
	res    Resource
	log    zerolog.Logger
}

var _ ports.ResourceRepository[domain.Job] = (*ResourceRepository[domain.Job])(nil)

func NewResourceRepository[T any](client store.Client, res Resource, log zerolog.Logger) *ResourceRepository[T] {
	return &ResourceRepository[T]{
		client: client,
		res:    res,
		log:    log.With().Str("table", res.Table).Logger(),
	}
}

// NewUserRepository, NewJobRepository and NewProjectRepository bind the
// generic repository to the three resources.
func NewUserRepository(client store.Client, log zerolog.Logger) *ResourceRepository[domain.User] {
	return NewResourceRepository[domain.User](client, UsersResource, log)
}

func NewJobRepository(client store.Client, log zerolog.Logger) *ResourceRepository[domain.Job] {
	return NewResourceRepository[domain.Job](client, JobsResource, log)
}

func NewProjectRepository(client store.Client, log zerolog.Logger) *ResourceRepository[domain.Project] {
	return NewResourceRepository[domain.Project](client, ProjectsResource, log)
}

// Create inserts one row. The store assigns id and created_at; any caller
// supplied values for them are dropped.
func (r *ResourceRepository[T]) Create(ctx context.Context, fields domain.Fields) (_ *T, err error) {
	defer r.track("create", time.Now(), &err)

	row, err := r.client.Insert(ctx, r.res.Table, writable(fields))
	if err != nil {
		return nil, err
	}
	out, err := decode[T](row)
	if err != nil {
		return nil, err
	}
	metrics.ResourcesCreatedTotal.WithLabelValues(r.res.Table).Inc()
	return out, nil
}

func (r *ResourceRepository[T]) GetAll(ctx context.Context) (_ []T, err error) {
	defer r.track("get_all", time.Now(), &err)

	rows, err := r.client.Select(ctx, r.res.listQuery())
	if err != nil {
		return nil, err
	}
	return decodeAll[T](rows)
}

func (r *ResourceRepository[T]) GetByID(ctx context.Context, id string) (_ *T, err error) {
	defer r.track("get_by_id", time.Now(), &err)

	rows, err := r.client.Select(ctx, r.res.query().Eq("id", id))
	if err != nil {
		return nil, err
	}
	return single[T](rows)
}

func (r *ResourceRepository[T]) GetPaginated(ctx context.Context, page, limit int) (_ []T, err error) {
	defer r.track("get_paginated", time.Now(), &err)

	if page < 1 || limit < 1 {
		return nil, fmt.Errorf("%w: page and limit must be positive, got page=%d limit=%d", domain.ErrValidation, page, limit)
	}
	// A page whose offset does not fit in an int lies past the end of any table.
	if page-1 > (math.MaxInt-limit)/limit {
		return []T{}, nil
	}
	offset := (page - 1) * limit

	rows, err := r.client.Select(ctx, r.res.listQuery().Range(offset, offset+limit-1))
	if err != nil {
		return nil, err
	}
	return decodeAll[T](rows)
}

func (r *ResourceRepository[T]) UpdateByID(ctx context.Context, id string, fields domain.Fields) (_ *T, err error) {
	defer r.track("update", time.Now(), &err)

	rows, err := r.client.Update(ctx, r.res.Table, []store.Filter{store.Eq("id", id)}, writable(fields))
	if err != nil {
		return nil, err
	}
	return single[T](rows)
}

func (r *ResourceRepository[T]) DeleteByID(ctx context.Context, id string) (_ *T, err error) {
	defer r.track("delete", time.Now(), &err)

	rows, err := r.client.Delete(ctx, r.res.Table, []store.Filter{store.Eq("id", id)})
	if err != nil {
		return nil, err
	}
	return single[T](rows)
}

// track records the outcome of one operation. Not-found and rejected
// arguments are expected outcomes and are logged at debug level only.
func (r *ResourceRepository[T]) track(op string, start time.Time, err *error) {
	result := "ok"
	switch {
	case *err == nil:
	case errors.Is(*err, domain.ErrNotFound):
		result = "not_found"
		r.log.Debug().Str("operation", op).Msg("Record not found")
	case errors.Is(*err, domain.ErrValidation):
		result = "invalid"
		r.log.Debug().Err(*err).Str("operation", op).Msg("Invalid arguments")
	default:
		result = "error"
		r.log.Error().Err(*err).Str("operation", op).Msg("Record store operation failed")
	}

	metrics.StoreOperationsTotal.WithLabelValues(r.res.Table, op, result).Inc()
	metrics.StoreOperationDuration.WithLabelValues(r.res.Table, op).Observe(time.Since(start).Seconds())
}

func writable(fields domain.Fields) store.Row {
	row := make(store.Row, len(fields))
	for k, v := range fields {
		if k == "id" || k == "created_at" {
			continue
		}
		row[k] = v
	}
	return row
}

func single[T any](rows []store.Row) (*T, error) {
	row, err := store.Single(rows)
	if errors.Is(err, store.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decode[T](row)
}

// decode converts a store row into T through its JSON representation, which
// is the shape every backend agrees on.
func decode[T any](row store.Row) (*T, error) {
	raw, err := json.Marshal(row)
	if err != nil {
		return nil, fmt.Errorf("encode row: %w", err)
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode row: %w", err)
	}
	return &out, nil
}

func decodeAll[T any](rows []store.Row) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		v, err := decode[T](row)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}
