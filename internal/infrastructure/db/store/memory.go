package store

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process Client. It keeps insertion order, assigns UUID ids
// and UTC creation timestamps, and resolves embeds against its own tables.
// It backs local development (STORE_DRIVER=memory) and tests.
type Memory struct {
	mu     sync.RWMutex
	tables map[string][]Row

	now   func() time.Time
	newID func() string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		tables: make(map[string][]Row),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// WithClock overrides the timestamp source. Intended for tests.
func (m *Memory) WithClock(now func() time.Time) *Memory {
	m.now = now
	return m
}

func (m *Memory) Insert(_ context.Context, table string, row Row) (Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := cloneRow(row)
	stored["id"] = m.newID()
	stored["created_at"] = m.now()
	m.tables[table] = append(m.tables[table], stored)

	return cloneRow(stored), nil
}

func (m *Memory) Select(_ context.Context, q Query) ([]Row, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched, err := m.match(q.Table, q.Filters)
	if err != nil {
		return nil, Wrap("select", q.Table, err)
	}

	if q.Order != nil {
		col, desc := q.Order.Column, q.Order.Descending
		sort.SliceStable(matched, func(i, j int) bool {
			c := compareValues(matched[i][col], matched[j][col])
			if desc {
				return c > 0
			}
			return c < 0
		})
	}

	start := min(max(q.Offset, 0), len(matched))
	end := len(matched)
	if q.Limit > 0 && q.Limit < end-start {
		end = start + q.Limit
	}
	page := matched[start:end]

	out := make([]Row, 0, len(page))
	for _, src := range page {
		row := project(src, q.Columns)
		for _, e := range q.Embeds {
			row[e.Alias] = m.embed(src, e)
		}
		out = append(out, row)
	}
	return out, nil
}

func (m *Memory) Update(_ context.Context, table string, filters []Filter, patch Row) ([]Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Row
	for _, row := range m.tables[table] {
		ok, err := matches(row, filters)
		if err != nil {
			return nil, Wrap("update", table, err)
		}
		if !ok {
			continue
		}
		for k, v := range patch {
			if k == "id" || k == "created_at" {
				continue
			}
			row[k] = cloneValue(v)
		}
		out = append(out, cloneRow(row))
	}
	return out, nil
}

func (m *Memory) Delete(_ context.Context, table string, filters []Filter) ([]Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var (
		kept    []Row
		removed []Row
	)
	for _, row := range m.tables[table] {
		ok, err := matches(row, filters)
		if err != nil {
			return nil, Wrap("delete", table, err)
		}
		if ok {
			removed = append(removed, row)
			continue
		}
		kept = append(kept, row)
	}
	m.tables[table] = kept
	return removed, nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) match(table string, filters []Filter) ([]Row, error) {
	var out []Row
	for _, row := range m.tables[table] {
		ok, err := matches(row, filters)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *Memory) embed(src Row, e Embed) any {
	fk, ok := src[e.ForeignKey]
	if !ok || fk == nil {
		return nil
	}
	for _, candidate := range m.tables[e.Table] {
		if equalValues(candidate["id"], fk) {
			return project(candidate, e.Columns)
		}
	}
	return nil
}

func matches(row Row, filters []Filter) (bool, error) {
	for _, f := range filters {
		v := row[f.Column]
		switch f.Op {
		case OpEq:
			if !equalValues(v, f.Value) {
				return false, nil
			}
		case OpNeq:
			if v == nil || equalValues(v, f.Value) {
				return false, nil
			}
		case OpIn:
			set := reflect.ValueOf(f.Value)
			if set.Kind() != reflect.Slice {
				return false, fmt.Errorf("in filter on %q needs a slice, got %T", f.Column, f.Value)
			}
			found := false
			for i := 0; i < set.Len(); i++ {
				if equalValues(v, set.Index(i).Interface()) {
					found = true
					break
				}
			}
			if !found {
				return false, nil
			}
		default:
			return false, fmt.Errorf("unsupported filter operator %q", f.Op)
		}
	}
	return true, nil
}

func project(src Row, columns []string) Row {
	if len(columns) == 0 {
		return cloneRow(src)
	}
	out := make(Row, len(columns))
	for _, c := range columns {
		out[c] = cloneValue(src[c])
	}
	return out
}

func equalValues(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// compareValues orders nil first, then numbers, times and strings by value.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func cloneRow(r Row) Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Row:
		return cloneRow(t)
	case map[string]any:
		return map[string]any(cloneRow(t))
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = cloneValue(t[i])
		}
		return out
	default:
		return v
	}
}
