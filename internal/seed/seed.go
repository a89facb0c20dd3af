// Package seed loads and removes the demo marketplace data.
package seed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/talenthub/talenthub-api/internal/core/domain"
	"github.com/talenthub/talenthub-api/internal/infrastructure/db/store"
	"github.com/talenthub/talenthub-api/internal/metrics"
)

const (
	lockName = "talenthub:seed"
	lockTTL  = 2 * time.Minute
	// workers bounds concurrent store calls while seeding.
	workers = 4
)

// ErrLocked is returned when another process is already seeding.
var ErrLocked = errors.New("seed: lock held by another process")

// Locker guards Seed and Purge against concurrent runs.
type Locker interface {
	TryLock(ctx context.Context, name string, ttl time.Duration) (unlock func(context.Context) error, ok bool, err error)
}

// NopLocker always grants the lock. Used when Redis is not configured.
type NopLocker struct{}

func (NopLocker) TryLock(context.Context, string, time.Duration) (func(context.Context) error, bool, error) {
	return func(context.Context) error { return nil }, true, nil
}

type Options struct {
	// Password is given to every seeded user.
	Password string
	// HashCost is the bcrypt cost; zero means bcrypt.DefaultCost.
	HashCost int
	Fixtures Fixtures
}

// Seeder inserts fixtures that are not present yet. Running it twice leaves
// the store unchanged.
type Seeder struct {
	client store.Client
	locker Locker
	log    zerolog.Logger
	opts   Options
}

func New(client store.Client, locker Locker, log zerolog.Logger, opts Options) *Seeder {
	if locker == nil {
		locker = NopLocker{}
	}
	if opts.HashCost == 0 {
		opts.HashCost = bcrypt.DefaultCost
	}
	return &Seeder{client: client, locker: locker, log: log, opts: opts}
}

// Report counts inserted and skipped rows per table.
type Report struct {
	mu       sync.Mutex
	Inserted map[string]int
	Skipped  map[string]int
}

func newReport() *Report {
	return &Report{Inserted: map[string]int{}, Skipped: map[string]int{}}
}

func (r *Report) add(table string, inserted bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := "skipped"
	if inserted {
		r.Inserted[table]++
		result = "inserted"
	} else {
		r.Skipped[table]++
	}
	metrics.SeedRecordsTotal.WithLabelValues(table, result).Inc()
}

// Seed loads users first, then jobs and projects concurrently with their
// owners resolved by e-mail.
func (s *Seeder) Seed(ctx context.Context) (*Report, error) {
	unlock, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer s.release(unlock)

	report := newReport()
	if err := s.seedUsers(ctx, report); err != nil {
		return report, err
	}

	ids, err := s.userIDs(ctx)
	if err != nil {
		return report, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, j := range s.opts.Fixtures.Jobs {
		g.Go(func() error { return s.seedJob(gctx, j, ids, report) })
	}
	for _, p := range s.opts.Fixtures.Projects {
		g.Go(func() error { return s.seedProject(gctx, p, ids, report) })
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	s.log.Info().
		Interface("inserted", report.Inserted).
		Interface("skipped", report.Skipped).
		Msg("Seed complete")
	return report, nil
}

// Purge removes every project and job, then every user with a known role.
// Children go first so foreign keys never dangle.
func (s *Seeder) Purge(ctx context.Context) (map[string]int, error) {
	unlock, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer s.release(unlock)

	roles := []string{string(domain.RoleFreelancer), string(domain.RoleClient), string(domain.RoleAdmin)}
	steps := []struct {
		table   string
		filters []store.Filter
	}{
		{table: "projects"},
		{table: "jobs"},
		{table: "users", filters: []store.Filter{{Column: "role", Op: store.OpIn, Value: roles}}},
	}

	deleted := make(map[string]int, len(steps))
	for _, step := range steps {
		rows, err := s.client.Delete(ctx, step.table, step.filters)
		if err != nil {
			return deleted, fmt.Errorf("purge %s: %w", step.table, err)
		}
		deleted[step.table] = len(rows)
		s.log.Info().Str("table", step.table).Int("deleted", len(rows)).Msg("Purged")
	}
	return deleted, nil
}

func (s *Seeder) lock(ctx context.Context) (func(context.Context) error, error) {
	unlock, ok, err := s.locker.TryLock(ctx, lockName, lockTTL)
	if err != nil {
		return nil, fmt.Errorf("seed: acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return unlock, nil
}

func (s *Seeder) release(unlock func(context.Context) error) {
	// The caller's context may already be cancelled.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := unlock(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Failed to release seed lock")
	}
}

func (s *Seeder) seedUsers(ctx context.Context, report *Report) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, u := range s.opts.Fixtures.Users {
		g.Go(func() error {
			exists, err := s.exists(gctx, store.From("users").Eq("email", u.Email))
			if err != nil || exists {
				if exists {
					report.add("users", false)
				}
				return err
			}

			hash, err := bcrypt.GenerateFromPassword([]byte(s.opts.Password), s.opts.HashCost)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", u.Email, err)
			}
			row := store.Row{
				"email":         u.Email,
				"password_hash": string(hash),
				"role":          string(u.Role),
				"full_name":     u.FullName,
			}
			if u.Bio != "" {
				row["bio"] = u.Bio
			}
			if len(u.Skills) > 0 {
				row["skills"] = u.Skills
			}
			if u.HourlyRate > 0 {
				row["hourly_rate"] = u.HourlyRate
			}
			return s.insert(gctx, "users", row, report)
		})
	}
	return g.Wait()
}

// userIDs maps fixture e-mails to the ids the store assigned.
func (s *Seeder) userIDs(ctx context.Context) (map[string]string, error) {
	emails := make([]string, 0, len(s.opts.Fixtures.Users))
	for _, u := range s.opts.Fixtures.Users {
		emails = append(emails, u.Email)
	}

	rows, err := s.client.Select(ctx, store.From("users").
		Select("id", "email").
		Where(store.Filter{Column: "email", Op: store.OpIn, Value: emails}))
	if err != nil {
		return nil, fmt.Errorf("resolve seeded users: %w", err)
	}

	ids := make(map[string]string, len(rows))
	for _, r := range rows {
		email, _ := r["email"].(string)
		id, _ := r["id"].(string)
		ids[email] = id
	}
	return ids, nil
}

func (s *Seeder) seedJob(ctx context.Context, j jobFixture, ids map[string]string, report *Report) error {
	clientID, ok := ids[j.ClientEmail]
	if !ok {
		return fmt.Errorf("%w: job %q references unknown client %s", domain.ErrValidation, j.Title, j.ClientEmail)
	}

	exists, err := s.exists(ctx, store.From("jobs").Eq("client_id", clientID).Eq("title", j.Title))
	if err != nil || exists {
		if exists {
			report.add("jobs", false)
		}
		return err
	}

	return s.insert(ctx, "jobs", store.Row{
		"client_id":        clientID,
		"title":            j.Title,
		"description":      j.Description,
		"category":         j.Category,
		"budget_min":       j.BudgetMin,
		"budget_max":       j.BudgetMax,
		"experience_level": string(j.ExperienceLevel),
		"status":           string(j.Status),
	}, report)
}

func (s *Seeder) seedProject(ctx context.Context, p projectFixture, ids map[string]string, report *Report) error {
	freelancerID, ok := ids[p.FreelancerEmail]
	if !ok {
		return fmt.Errorf("%w: project %q references unknown freelancer %s", domain.ErrValidation, p.Title, p.FreelancerEmail)
	}

	exists, err := s.exists(ctx, store.From("projects").Eq("freelancer_id", freelancerID).Eq("title", p.Title))
	if err != nil || exists {
		if exists {
			report.add("projects", false)
		}
		return err
	}

	row := store.Row{
		"freelancer_id": freelancerID,
		"title":         p.Title,
		"description":   p.Description,
		"price":         p.Price,
		"thumbnail_url": p.ThumbnailURL,
	}
	if p.DemoURL != "" {
		row["demo_url"] = p.DemoURL
	}
	return s.insert(ctx, "projects", row, report)
}

func (s *Seeder) exists(ctx context.Context, q store.Query) (bool, error) {
	rows, err := s.client.Select(ctx, q.Select("id").Range(0, 0))
	if err != nil {
		return false, fmt.Errorf("lookup %s: %w", q.Table, err)
	}
	return len(rows) > 0, nil
}

func (s *Seeder) insert(ctx context.Context, table string, row store.Row, report *Report) error {
	if _, err := s.client.Insert(ctx, table, row); err != nil {
		metrics.SeedRecordsTotal.WithLabelValues(table, "error").Inc()
		return fmt.Errorf("insert %s: %w", table, err)
	}
	report.add(table, true)
	return nil
}
