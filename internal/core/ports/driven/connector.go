package driven

import (
	"context"
	"errors"
	"fmt"

	"github.com/coveline/crmdex/internal/core/domain"
)

// Connector fetches indexable entities from a data source.
type Connector interface {
	// Type returns the connector type identifier.
	Type() string

	// Validate checks if the connector is properly configured and authenticated.
	// Makes a lightweight API call; returns nil if ready to sync.
	Validate(ctx context.Context) error

	// FullSync walks every entity the source exposes.
	// Returns channels for items and errors. The error channel carries
	// ItemError values for recoverable per-unit failures; any other error
	// is fatal to the run. Both channels close when the walk finishes.
	FullSync(ctx context.Context) (<-chan domain.IndexedItem, <-chan error)

	// Close releases resources.
	Close() error
}

// ItemError reports a recoverable failure on one sync unit (a record's
// comments, a recording's transcript, ...). The orchestrator counts it
// and moves on rather than aborting the run.
type ItemError struct {
	// Unit identifies what failed, e.g. "record r1 comments".
	Unit string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *ItemError) Error() string {
	return fmt.Sprintf("sync unit %s: %v", e.Unit, e.Err)
}

// Unwrap exposes the cause for errors.Is / errors.As.
func (e *ItemError) Unwrap() error {
	return e.Err
}

// AsItemError checks whether an error is a recoverable per-unit failure.
// Returns the ItemError and true if it is, nil and false otherwise.
func AsItemError(err error) (*ItemError, bool) {
	var ie *ItemError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}
