package repository

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/talenthub/talenthub-api/internal/core/domain"
	"github.com/talenthub/talenthub-api/internal/infrastructure/db/store"
	"github.com/talenthub/talenthub-api/internal/metrics"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func steppingClock() func() time.Time {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}

func newMemory() *store.Memory {
	return store.NewMemory().WithClock(steppingClock())
}

func seedUser(t *testing.T, repo *ResourceRepository[domain.User], email string, role domain.UserRole) *domain.User {
	t.Helper()
	u, err := repo.Create(context.Background(), domain.Fields{
		"email":         email,
		"password_hash": "hash",
		"role":          string(role),
		"full_name":     "Name " + email,
		"skills":        []string{"go"},
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func jobFields(clientID, title string) domain.Fields {
	return domain.Fields{
		"client_id":        clientID,
		"title":            title,
		"description":      "d",
		"category":         "c",
		"budget_min":       100.0,
		"budget_max":       200.0,
		"experience_level": "beginner",
		"status":           "open",
	}
}

// failingClient fails every call with err.
type failingClient struct{ err error }

func (f failingClient) Insert(context.Context, string, store.Row) (store.Row, error) {
	return nil, f.err
}
func (f failingClient) Select(context.Context, store.Query) ([]store.Row, error) { return nil, f.err }
func (f failingClient) Update(context.Context, string, []store.Filter, store.Row) ([]store.Row, error) {
	return nil, f.err
}
func (f failingClient) Delete(context.Context, string, []store.Filter) ([]store.Row, error) {
	return nil, f.err
}
func (f failingClient) Ping(context.Context) error { return f.err }

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestCreate_RoundTrip(t *testing.T) {
	mem := newMemory()
	users := NewUserRepository(mem, zerolog.Nop())
	jobs := NewJobRepository(mem, zerolog.Nop())
	ctx := context.Background()

	client := seedUser(t, users, "client@example.com", domain.RoleClient)

	fields := jobFields(client.ID, "X")
	fields["id"] = "caller-id"
	created, err := jobs.Create(ctx, fields)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.ID == "caller-id" {
		t.Fatalf("expected store generated id, got %q", created.ID)
	}
	if created.CreatedAt.IsZero() {
		t.Fatalf("expected created_at")
	}

	got, err := jobs.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "X" || got.ClientID != client.ID || got.BudgetMin != 100 || got.BudgetMax != 200 ||
		got.ExperienceLevel != domain.LevelBeginner || got.Status != domain.JobOpen {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at changed: %v vs %v", got.CreatedAt, created.CreatedAt)
	}
	if got.User == nil || got.User.Email != "client@example.com" || got.User.FullName != "Name client@example.com" {
		t.Fatalf("expected embedded user, got %+v", got.User)
	}
}

func TestGetPaginated_Bounds(t *testing.T) {
	mem := newMemory()
	users := NewUserRepository(mem, zerolog.Nop())
	jobs := NewJobRepository(mem, zerolog.Nop())
	ctx := context.Background()

	client := seedUser(t, users, "client@example.com", domain.RoleClient)
	for i := 0; i < 7; i++ {
		if _, err := jobs.Create(ctx, jobFields(client.ID, string(rune('a'+i)))); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	all, err := jobs.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 7 || all[0].Title != "g" || all[6].Title != "a" {
		t.Fatalf("expected newest first, got %d rows starting %q", len(all), all[0].Title)
	}

	tests := []struct {
		page, limit int
		want        []string
	}{
		{1, 3, []string{"g", "f", "e"}},
		{2, 3, []string{"d", "c", "b"}},
		{3, 3, []string{"a"}},
		{4, 3, []string{}},
		{1, 10, []string{"g", "f", "e", "d", "c", "b", "a"}},
	}
	for _, tc := range tests {
		got, err := jobs.GetPaginated(ctx, tc.page, tc.limit)
		if err != nil {
			t.Fatalf("page %d limit %d: %v", tc.page, tc.limit, err)
		}
		if got == nil {
			t.Fatalf("page %d limit %d: expected non-nil slice", tc.page, tc.limit)
		}
		if len(got) != len(tc.want) {
			t.Fatalf("page %d limit %d: expected %d rows, got %d", tc.page, tc.limit, len(tc.want), len(got))
		}
		for i := range got {
			if got[i].Title != tc.want[i] {
				t.Fatalf("page %d limit %d: row %d is %q, want %q", tc.page, tc.limit, i, got[i].Title, tc.want[i])
			}
		}
	}
}

func TestGetPaginated_RejectsNonPositive(t *testing.T) {
	jobs := NewJobRepository(newMemory(), zerolog.Nop())
	for _, pl := range [][2]int{{0, 1}, {1, 0}, {-1, 5}} {
		if _, err := jobs.GetPaginated(context.Background(), pl[0], pl[1]); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("page=%d limit=%d: expected ErrValidation, got %v", pl[0], pl[1], err)
		}
	}
}

func TestGetPaginated_OffsetOverflowIsPastTheEnd(t *testing.T) {
	// Any store call would fail, so an empty result proves none was made.
	jobs := NewJobRepository(failingClient{err: errors.New("boom")}, zerolog.Nop())

	tests := []struct {
		name        string
		page, limit int
	}{
		{"huge page", 4611686018427387904, 4},
		{"max page", math.MaxInt, 1},
		{"huge limit second page", 2, math.MaxInt},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := jobs.GetPaginated(context.Background(), tc.page, tc.limit)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got == nil || len(got) != 0 {
				t.Fatalf("expected empty non-nil slice, got %v", got)
			}
		})
	}
}

func TestGetPaginated_HugeLimitReturnsEverything(t *testing.T) {
	mem := newMemory()
	users := NewUserRepository(mem, zerolog.Nop())
	jobs := NewJobRepository(mem, zerolog.Nop())
	ctx := context.Background()

	client := seedUser(t, users, "client@example.com", domain.RoleClient)
	for _, title := range []string{"a", "b", "c"} {
		if _, err := jobs.Create(ctx, jobFields(client.ID, title)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := jobs.GetPaginated(ctx, 1, math.MaxInt)
	if err != nil {
		t.Fatalf("get paginated: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}
}

func TestGetPaginated_InvalidArgumentsAreNotStoreErrors(t *testing.T) {
	jobs := NewJobRepository(newMemory(), zerolog.Nop())
	invalid := metrics.StoreOperationsTotal.WithLabelValues("jobs", "get_paginated", "invalid")
	failed := metrics.StoreOperationsTotal.WithLabelValues("jobs", "get_paginated", "error")
	beforeInvalid, beforeFailed := testutil.ToFloat64(invalid), testutil.ToFloat64(failed)

	if _, err := jobs.GetPaginated(context.Background(), 0, 5); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if got := testutil.ToFloat64(invalid) - beforeInvalid; got != 1 {
		t.Fatalf("expected one invalid result, got %v", got)
	}
	if got := testutil.ToFloat64(failed) - beforeFailed; got != 0 {
		t.Fatalf("rejected arguments counted as store error %v times", got)
	}
}

func TestUpdateByID_PartialUpdate(t *testing.T) {
	mem := newMemory()
	users := NewUserRepository(mem, zerolog.Nop())
	jobs := NewJobRepository(mem, zerolog.Nop())
	ctx := context.Background()

	client := seedUser(t, users, "client@example.com", domain.RoleClient)
	job, err := jobs.Create(ctx, jobFields(client.ID, "X"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := jobs.UpdateByID(ctx, job.ID, domain.Fields{"status": "closed", "created_at": "2000-01-01T00:00:00Z"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != domain.JobClosed {
		t.Fatalf("status not updated: %q", updated.Status)
	}
	if updated.Title != job.Title || updated.Description != job.Description || updated.BudgetMax != job.BudgetMax ||
		updated.ClientID != job.ClientID || !updated.CreatedAt.Equal(job.CreatedAt) || updated.ID != job.ID {
		t.Fatalf("untouched fields changed: before %+v after %+v", job, updated)
	}

	if _, err := jobs.UpdateByID(ctx, "00000000-0000-0000-0000-000000000000", domain.Fields{"status": "closed"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteByID_ThenNotFound(t *testing.T) {
	mem := newMemory()
	users := NewUserRepository(mem, zerolog.Nop())
	projects := NewProjectRepository(mem, zerolog.Nop())
	ctx := context.Background()

	freelancer := seedUser(t, users, "free@example.com", domain.RoleFreelancer)
	p, err := projects.Create(ctx, domain.Fields{
		"freelancer_id": freelancer.ID,
		"title":         "Portfolio",
		"description":   "d",
		"price":         50.5,
		"thumbnail_url": "https://example.com/t.png",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, err := projects.DeleteByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.ID != p.ID || deleted.Title != "Portfolio" || deleted.Price != 50.5 {
		t.Fatalf("unexpected deleted row %+v", deleted)
	}

	if _, err := projects.GetByID(ctx, p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if _, err := projects.DeleteByID(ctx, p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestUsers_HideAdminsAndPasswordHash(t *testing.T) {
	mem := newMemory()
	users := NewUserRepository(mem, zerolog.Nop())
	ctx := context.Background()

	seedUser(t, users, "client@example.com", domain.RoleClient)
	admin := seedUser(t, users, "admin@example.com", domain.RoleAdmin)
	seedUser(t, users, "free@example.com", domain.RoleFreelancer)

	all, err := users.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 2 || all[0].Email != "client@example.com" || all[1].Email != "free@example.com" {
		t.Fatalf("unexpected listing %+v", all)
	}

	// Admins stay reachable by id.
	got, err := users.GetByID(ctx, admin.ID)
	if err != nil || got.Role != domain.RoleAdmin {
		t.Fatalf("expected admin by id, got %+v, %v", got, err)
	}

	rows, err := mem.Select(ctx, UsersResource.query())
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	for _, r := range rows {
		if _, ok := r["password_hash"]; ok {
			t.Fatalf("users projection exposes password_hash")
		}
	}
}

func TestStoreErrorsPropagate(t *testing.T) {
	boom := errors.New("connection refused")
	jobs := NewJobRepository(failingClient{err: boom}, zerolog.Nop())
	ctx := context.Background()

	calls := map[string]func() error{
		"create":        func() error { _, err := jobs.Create(ctx, jobFields("c", "x")); return err },
		"get_all":       func() error { _, err := jobs.GetAll(ctx); return err },
		"get_by_id":     func() error { _, err := jobs.GetByID(ctx, "id"); return err },
		"get_paginated": func() error { _, err := jobs.GetPaginated(ctx, 1, 10); return err },
		"update":        func() error { _, err := jobs.UpdateByID(ctx, "id", domain.Fields{"title": "y"}); return err },
		"delete":        func() error { _, err := jobs.DeleteByID(ctx, "id"); return err },
	}
	for name, call := range calls {
		err := call()
		if !errors.Is(err, boom) {
			t.Fatalf("%s: expected store error, got %v", name, err)
		}
		if errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("%s: store failure reported as not found", name)
		}
	}
}

func TestSingle_MultipleRowsIsNotNotFound(t *testing.T) {
	_, err := single[domain.Job]([]store.Row{{"id": "a"}, {"id": "b"}})
	if !errors.Is(err, store.ErrMultipleRows) {
		t.Fatalf("expected ErrMultipleRows, got %v", err)
	}
}
