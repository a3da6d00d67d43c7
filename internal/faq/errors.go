package faq

import (
	"fmt"
	"strings"
)

// ValidationError reports which fields of a create request were rejected.
type ValidationError struct {
	Missing []string // required fields that were empty
	Invalid []string // fields present but not acceptable
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid fields: "+strings.Join(e.Invalid, ", "))
	}
	if len(parts) == 0 {
		return "invalid FAQ item"
	}
	return strings.Join(parts, "; ")
}

// StorageError wraps a failure reading or writing the backing store.
type StorageError struct {
	Op    string
	Cause error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("faq storage %s failed: %v", e.Op, e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}
