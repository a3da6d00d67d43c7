package view

import "slices"

// ToggleSelection toggles item in a multi-select whose "no filter" value is sentinel.
// The sentinel never coexists with concrete items: selecting it clears the rest, selecting
// an item drops it, and deselecting the last item snaps back to it.
func ToggleSelection(selected []string, item, sentinel string) []string {
	if item == sentinel {
		return []string{sentinel}
	}

	out := make([]string, 0, len(selected)+1)
	found := false
	for _, s := range selected {
		switch {
		case s == sentinel:
			continue
		case s == item:
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		out = append(out, item)
	}
	if len(out) == 0 {
		return []string{sentinel}
	}
	return out
}

// IsAll reports whether a selection is the sentinel (or empty).
func IsAll(selected []string, sentinel string) bool {
	return len(selected) == 0 || slices.Contains(selected, sentinel)
}
