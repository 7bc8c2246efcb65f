package zotero

import (
	"errors"
	"fmt"
)

// Common Zotero API errors.
var (
	// ErrNotFound is returned when a resource does not exist. For fulltext
	// reads this means "not indexed yet", which callers treat as a valid
	// terminal state rather than a failure.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned when authentication fails.
	ErrUnauthorized = errors.New("unauthorized — check your Zotero API key")
	// ErrForbidden is returned when the key lacks access to the library.
	ErrForbidden = errors.New("forbidden — key may lack write access to this library")
	// ErrConflict is returned when a conditional write is rejected because
	// the supplied version is stale.
	ErrConflict = errors.New("version conflict — object changed since last read")
)

// APIError is a non-2xx response that doesn't map to a sentinel above.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("zotero API error %d: %s", e.Status, e.Body)
}

// InvalidTypeError is returned when the store rejects an item type name.
// It carries the canonical name and the store's message so callers can tell
// "unknown type" apart from a transient failure.
type InvalidTypeError struct {
	Type    string
	Message string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid item type %q: %s", e.Type, e.Message)
}
