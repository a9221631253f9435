package onix

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every NotFoundError, use errors.Is to check for
// absence without caring what was missing.
var ErrNotFound = errors.New("not found")

// NotFoundError reports that a requested element or lookup key does not exist
// in the record.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", e.What, ErrNotFound)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// StructuralError is returned by NewProduct when a configured occurrence rule
// is violated. Product cannot be used after that.
type StructuralError struct {
	Element string
	Min     int
	Max     int
	Count   int
}

func (e *StructuralError) Error() string {
	if e.Min > 0 && e.Count < e.Min {
		return fmt.Sprintf("expecting at least %d <%s> children, but %d found", e.Min, e.Element, e.Count)
	}
	return fmt.Sprintf("expecting at most %d <%s> children, but %d found", e.Max, e.Element, e.Count)
}
