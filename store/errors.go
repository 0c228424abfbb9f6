package store

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySeries   = errors.New("no valid rows")
	ErrMissingColumn = errors.New("missing column")
	ErrDuplicateYear = errors.New("duplicate year")
	ErrUnknownSource = errors.New("unknown source")
)

// LoadError means a named source was unreachable or didn't parse into the expected shape.
// Nothing is rendered while a LoadError stands.
type LoadError struct {
	Source string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load %s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("load %s: %s", e.Source, e.Reason)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
