package tree

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds returned by store operations. Test with errors.Is.
var (
	// ErrNotFound means a referenced id does not resolve to an entity of the
	// expected kind or parent.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState means the mutation would break a tree invariant.
	ErrInvalidState = errors.New("invalid state")
	// ErrValidation means the input itself is malformed.
	ErrValidation = errors.New("validation failed")
)

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
}

func invalidState(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func validateName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return invalid("%s name must not be blank", kind)
	}
	return nil
}
