package postgres

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/talenthub/talenthub-api/internal/infrastructure/db/store"
)

// querier is the subset of *pgxpool.Pool the record store needs.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
}

// RecordStore implements store.Client on PostgreSQL. Every call is a single
// statement that returns each row as a jsonb document, so relation embeds are
// resolved by the database with correlated subqueries.
type RecordStore struct {
	db querier
}

// NewRecordStore wraps a pool (or any compatible querier).
func NewRecordStore(db querier) *RecordStore {
	return &RecordStore{db: db}
}

var _ store.Client = (*RecordStore)(nil)

func (s *RecordStore) Insert(ctx context.Context, table string, row store.Row) (store.Row, error) {
	sql, args := buildInsert(table, row)
	rows, err := s.query(ctx, "insert", table, sql, args)
	if err != nil {
		return nil, err
	}
	inserted, err := store.Single(rows)
	return inserted, store.Wrap("insert", table, err)
}

func (s *RecordStore) Select(ctx context.Context, q store.Query) ([]store.Row, error) {
	sql, args := buildSelect(q)
	return s.query(ctx, "select", q.Table, sql, args)
}

func (s *RecordStore) Update(ctx context.Context, table string, filters []store.Filter, patch store.Row) ([]store.Row, error) {
	if len(writableColumns(patch)) == 0 {
		return nil, store.Wrap("update", table, fmt.Errorf("empty patch"))
	}
	sql, args := buildUpdate(table, filters, patch)
	return s.query(ctx, "update", table, sql, args)
}

func (s *RecordStore) Delete(ctx context.Context, table string, filters []store.Filter) ([]store.Row, error) {
	sql, args := buildDelete(table, filters)
	return s.query(ctx, "delete", table, sql, args)
}

func (s *RecordStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *RecordStore) query(ctx context.Context, op, table, sql string, args []any) ([]store.Row, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, store.Wrap(op, table, mapError(err))
	}
	docs, err := pgx.CollectRows(rows, pgx.RowTo[map[string]any])
	if err != nil {
		return nil, store.Wrap(op, table, mapError(err))
	}

	out := make([]store.Row, 0, len(docs))
	for _, d := range docs {
		out = append(out, store.Row(d))
	}
	return out, nil
}

// sqlBuilder accumulates positional arguments while a statement is built.
type sqlBuilder struct {
	sb   strings.Builder
	args []any
}

func (b *sqlBuilder) write(parts ...string) {
	for _, p := range parts {
		b.sb.WriteString(p)
	}
}

func (b *sqlBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *sqlBuilder) where(alias string, filters []store.Filter) {
	for i, f := range filters {
		if i == 0 {
			b.write(" WHERE ")
		} else {
			b.write(" AND ")
		}
		col := alias + "." + ident(f.Column)
		switch f.Op {
		case store.OpNeq:
			b.write(col, " <> ", b.arg(f.Value))
		case store.OpIn:
			b.write(col, " = ANY(", b.arg(f.Value), ")")
		default:
			b.write(col, " = ", b.arg(f.Value))
		}
	}
}

func buildSelect(q store.Query) (string, []any) {
	b := &sqlBuilder{}
	b.write("SELECT ", projection("t", q.Columns, q.Embeds), " FROM ", ident(q.Table), " AS t")
	b.where("t", q.Filters)
	if q.Order != nil {
		dir := "ASC"
		if q.Order.Descending {
			dir = "DESC"
		}
		b.write(" ORDER BY t.", ident(q.Order.Column), " ", dir)
	}
	if q.Offset > 0 {
		b.write(" OFFSET ", b.arg(q.Offset))
	}
	if q.Limit > 0 {
		b.write(" LIMIT ", b.arg(q.Limit))
	}
	return b.sb.String(), b.args
}

func buildInsert(table string, row store.Row) (string, []any) {
	b := &sqlBuilder{}
	cols := writableColumns(row)
	b.write("INSERT INTO ", ident(table), " AS t")
	if len(cols) == 0 {
		b.write(" DEFAULT VALUES")
	} else {
		names := make([]string, len(cols))
		params := make([]string, len(cols))
		for i, c := range cols {
			names[i] = ident(c)
			params[i] = b.arg(row[c])
		}
		b.write(" (", strings.Join(names, ", "), ") VALUES (", strings.Join(params, ", "), ")")
	}
	b.write(" RETURNING to_jsonb(t)")
	return b.sb.String(), b.args
}

func buildUpdate(table string, filters []store.Filter, patch store.Row) (string, []any) {
	b := &sqlBuilder{}
	cols := writableColumns(patch)
	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = ident(c) + " = " + b.arg(patch[c])
	}
	b.write("UPDATE ", ident(table), " AS t SET ", strings.Join(sets, ", "))
	b.where("t", filters)
	b.write(" RETURNING to_jsonb(t)")
	return b.sb.String(), b.args
}

func buildDelete(table string, filters []store.Filter) (string, []any) {
	b := &sqlBuilder{}
	b.write("DELETE FROM ", ident(table), " AS t")
	b.where("t", filters)
	b.write(" RETURNING to_jsonb(t)")
	return b.sb.String(), b.args
}

// projection renders the jsonb document for one row of alias. Without
// explicit columns the whole row is used.
func projection(alias string, columns []string, embeds []store.Embed) string {
	var pairs []string
	for _, c := range columns {
		pairs = append(pairs, literal(c), alias+"."+ident(c))
	}
	for i, e := range embeds {
		sub := "e" + strconv.Itoa(i)
		pairs = append(pairs, literal(e.Alias), fmt.Sprintf("(SELECT %s FROM %s AS %s WHERE %s.%s = %s.%s)",
			projection(sub, e.Columns, nil), ident(e.Table), sub, sub, ident("id"), alias, ident(e.ForeignKey)))
	}

	switch {
	case len(columns) == 0 && len(embeds) == 0:
		return "to_jsonb(" + alias + ")"
	case len(columns) == 0:
		return "to_jsonb(" + alias + ") || jsonb_build_object(" + strings.Join(pairs, ", ") + ")"
	default:
		return "jsonb_build_object(" + strings.Join(pairs, ", ") + ")"
	}
}

// writableColumns returns the row's keys in stable order, minus the columns
// only the database may assign.
func writableColumns(row store.Row) []string {
	cols := make([]string, 0, len(row))
	for k := range row {
		if k == "id" || k == "created_at" {
			continue
		}
		cols = append(cols, k)
	}
	slices.Sort(cols)
	return cols
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func literal(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
