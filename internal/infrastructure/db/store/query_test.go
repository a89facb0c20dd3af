package store

import "testing"

func TestQuery_ChainDoesNotShareState(t *testing.T) {
	base := From("jobs").Eq("status", "open")
	a := base.Eq("category", "web")
	b := base.Neq("category", "design")

	if len(base.Filters) != 1 {
		t.Fatalf("base mutated: %v", base.Filters)
	}
	if a.Filters[1].Op != OpEq || b.Filters[1].Op != OpNeq {
		t.Fatalf("derived queries share filter storage: %v / %v", a.Filters, b.Filters)
	}
}

func TestQuery_Range(t *testing.T) {
	tests := []struct {
		from, to      int
		offset, limit int
	}{
		{0, 9, 0, 10},
		{10, 19, 10, 10},
		{4, 4, 4, 1},
	}
	for _, tc := range tests {
		q := From("users").Range(tc.from, tc.to)
		if q.Offset != tc.offset || q.Limit != tc.limit {
			t.Fatalf("Range(%d, %d): got offset=%d limit=%d", tc.from, tc.to, q.Offset, q.Limit)
		}
	}
}

func TestQuery_OrderBy(t *testing.T) {
	q := From("jobs").OrderBy("created_at", true)
	if q.Order == nil || q.Order.Column != "created_at" || !q.Order.Descending {
		t.Fatalf("unexpected order %+v", q.Order)
	}
}
