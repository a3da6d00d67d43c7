package view

import (
	"slices"
	"strings"
)

// ExpandSet tracks which groups are expanded. Every group starts collapsed and
// toggling one never affects another.
type ExpandSet struct {
	ids map[string]struct{}
}

// NewExpandSet returns an empty set.
func NewExpandSet() *ExpandSet {
	return &ExpandSet{ids: make(map[string]struct{})}
}

// ParseExpandSet builds a set from query values. Each value may itself be comma-separated.
func ParseExpandSet(values []string) *ExpandSet {
	s := NewExpandSet()
	for _, v := range values {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				s.ids[id] = struct{}{}
			}
		}
	}
	return s
}

// Toggle expands a collapsed group or collapses an expanded one.
func (s *ExpandSet) Toggle(id string) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// IsExpanded reports whether id is expanded.
func (s *ExpandSet) IsExpanded(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// IDs returns the expanded ids in sorted order.
func (s *ExpandSet) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
