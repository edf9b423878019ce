package loan

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("loan not found")
	ErrDuplicateID = errors.New("loan id already exists")
)

// ValidationError reports a malformed or missing field. The caller re-prompts;
// no side effects have happened by the time it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
