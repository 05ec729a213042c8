package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means a specific country has no row for the requested year.
	ErrNotFound = errors.New("no data for this selection")
	// ErrUnknownDisease means the requested disease is not a column of the table.
	ErrUnknownDisease = errors.New("unknown disease")
)

// LoadError reports a source file that is missing, unreadable or malformed.
// Line is 1-based and zero when the failure is not tied to a line.
type LoadError struct {
	Path string
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load %s: line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
