package session

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("session: not found")
	ErrNoSessions = errors.New("session: no recorded sessions")
	ErrClosed     = errors.New("session: recorder closed")
)

// ParseError locates a malformed row in events.csv.
type ParseError struct {
	Line  int
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("session: events line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("session: events line %d, field %s: %v", e.Line, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
