package processor

import (
	"errors"
	"fmt"
)

var (
	// ErrTooManyComponents indicates a file declares more decorated classes
	// than the splitter is configured to handle.
	ErrTooManyComponents = errors.New("too many components in file")

	// ErrInvalidPattern indicates a filename suffix could not be compiled.
	ErrInvalidPattern = errors.New("invalid filename pattern")
)

// LimitError is returned by Split when a file exceeds the per-file component limit.
// Its message is part of the observable contract and must not change.
type LimitError struct {
	Plugin   string
	Limit    int
	Found    int
	Filename string
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s currently only supports %d Component per file", e.Plugin, e.Limit)
}

// Is reports whether target is ErrTooManyComponents.
func (e *LimitError) Is(target error) bool {
	return target == ErrTooManyComponents
}
