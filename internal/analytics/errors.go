package analytics

import "fmt"

// ErrUnknownPeriod is returned when a period string is not one of the fixed windows
type ErrUnknownPeriod struct {
	Value string
}

func (e *ErrUnknownPeriod) Error() string {
	return fmt.Sprintf("unknown period %q (want one of 7d, 30d, 90d, 1y, 2y)", e.Value)
}

// ErrUnknownTab is returned when a tab string does not name a view variant
type ErrUnknownTab struct {
	Value string
}

func (e *ErrUnknownTab) Error() string {
	return fmt.Sprintf("unknown tab %q (want vendors, roles or job-families)", e.Value)
}
