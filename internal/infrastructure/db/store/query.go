package store

// Op is a filter comparison operator.
type Op string

const (
	OpEq  Op = "eq"
	OpNeq Op = "neq"
	// OpIn matches when the column equals any element of a slice value.
	OpIn Op = "in"
)

// Filter restricts a query to rows whose Column compares to Value by Op.
type Filter struct {
	Column string
	Op     Op
	Value  any
}

// Eq is shorthand for an equality filter.
func Eq(column string, value any) Filter {
	return Filter{Column: column, Op: OpEq, Value: value}
}

// Embed nests a projection of a related row under Alias. The related row is
// the one in Table whose id equals the local ForeignKey column.
type Embed struct {
	Alias      string
	Table      string
	ForeignKey string
	Columns    []string
}

// Order sorts results by a single column.
type Order struct {
	Column     string
	Descending bool
}

// Query describes a read against one table.
type Query struct {
	Table string
	// Columns is the projection; empty means every column.
	Columns []string
	Embeds  []Embed
	Filters []Filter
	Order   *Order
	Offset  int
	// Limit caps the number of rows; zero means unbounded.
	Limit int
}

// From starts a query against table.
func From(table string) Query {
	return Query{Table: table}
}

// Select sets the projection.
func (q Query) Select(columns ...string) Query {
	q.Columns = append([]string(nil), columns...)
	return q
}

// Embed adds a relation embedding.
func (q Query) Embed(e Embed) Query {
	q.Embeds = append(append([]Embed(nil), q.Embeds...), e)
	return q
}

// Where adds filters.
func (q Query) Where(filters ...Filter) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), filters...)
	return q
}

// Eq adds an equality filter.
func (q Query) Eq(column string, value any) Query {
	return q.Where(Eq(column, value))
}

// Neq adds an inequality filter.
func (q Query) Neq(column string, value any) Query {
	return q.Where(Filter{Column: column, Op: OpNeq, Value: value})
}

// OrderBy sets the sort column.
func (q Query) OrderBy(column string, descending bool) Query {
	q.Order = &Order{Column: column, Descending: descending}
	return q
}

// Range restricts the result to the inclusive row window [from, to].
// to must not be less than from.
func (q Query) Range(from, to int) Query {
	q.Offset = from
	q.Limit = to - from + 1
	return q
}
