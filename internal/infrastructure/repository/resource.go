package repository

import (
	"github.com/talenthub/talenthub-api/internal/core/domain"
	"github.com/talenthub/talenthub-api/internal/infrastructure/db/store"
)

// Resource binds a domain type to its table: the read projection, relation
// embeds, natural ordering and the filters applied to listings.
type Resource struct {
	Table   string
	Columns []string
	Embeds  []store.Embed
	Order   *store.Order
	// ListFilters restrict GetAll and GetPaginated only.
	ListFilters []store.Filter
}

// userSummaryColumns are the public user fields embedded into jobs and projects.
var userSummaryColumns = []string{"full_name", "email", "bio", "skills"}

// UsersResource never projects password_hash and hides admin accounts from
// listings.
var UsersResource = Resource{
	Table: "users",
	Columns: []string{
		"id", "email", "role", "full_name", "bio", "profile_image", "skills",
		"hourly_rate", "subscription_plan_id", "created_at", "updated_at",
	},
	Order: &store.Order{Column: "created_at"},
	ListFilters: []store.Filter{
		{Column: "role", Op: store.OpNeq, Value: string(domain.RoleAdmin)},
	},
}

var JobsResource = Resource{
	Table: "jobs",
	Embeds: []store.Embed{
		{Alias: "user", Table: "users", ForeignKey: "client_id", Columns: userSummaryColumns},
	},
	Order: &store.Order{Column: "created_at", Descending: true},
}

var ProjectsResource = Resource{
	Table: "projects",
	Embeds: []store.Embed{
		{Alias: "user", Table: "users", ForeignKey: "freelancer_id", Columns: userSummaryColumns},
	},
	Order: &store.Order{Column: "created_at", Descending: true},
}

// query starts a read with the resource projection, embeds and ordering.
func (r Resource) query() store.Query {
	q := store.From(r.Table).Select(r.Columns...)
	for _, e := range r.Embeds {
		q = q.Embed(e)
	}
	if r.Order != nil {
		q = q.OrderBy(r.Order.Column, r.Order.Descending)
	}
	return q
}

// listQuery is query plus the listing filters.
func (r Resource) listQuery() store.Query {
	return r.query().Where(r.ListFilters...)
}
