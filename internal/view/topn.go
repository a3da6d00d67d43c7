package view

import (
	"cmp"
	"slices"
)

// DefaultTopN is the number of rows shown before "view more".
const DefaultTopN = 5

// TopN is a list sorted descending by a metric, showing a fixed prefix until expanded
type TopN[T any] struct {
	Items    []T
	Limit    int
	Expanded bool
}

// NewTopN copies items and sorts them descending by key. Ties keep their input order.
// A limit of zero or less uses DefaultTopN.
func NewTopN[T any, K cmp.Ordered](items []T, limit int, key func(T) K) *TopN[T] {
	if limit <= 0 {
		limit = DefaultTopN
	}
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return cmp.Compare(key(b), key(a))
	})
	return &TopN[T]{Items: sorted, Limit: limit}
}

// Display returns the visible rows.
func (t *TopN[T]) Display() []T {
	if t.Expanded || len(t.Items) <= t.Limit {
		return t.Items
	}
	return t.Items[:t.Limit]
}

// HasMore reports whether rows are hidden.
func (t *TopN[T]) HasMore() bool {
	return !t.Expanded && len(t.Items) > t.Limit
}

// Toggle flips between the prefix and the full list. The order never changes.
func (t *TopN[T]) Toggle() {
	t.Expanded = !t.Expanded
}

// Page is the serialized form of a TopN
type Page[T any] struct {
	Items    []T  `json:"items"`
	Total    int  `json:"total"`
	HasMore  bool `json:"has_more"`
	Expanded bool `json:"expanded"`
}

// Page returns the visible rows with their paging flags.
func (t *TopN[T]) Page() Page[T] {
	return Page[T]{
		Items:    t.Display(),
		Total:    len(t.Items),
		HasMore:  t.HasMore(),
		Expanded: t.Expanded,
	}
}
