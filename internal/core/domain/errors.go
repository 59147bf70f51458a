package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingConfig indicates a required secret is absent at startup.
	// The only error class that aborts before any work is done.
	ErrMissingConfig = errors.New("missing required configuration")

	// ErrStoreTimeout indicates a timeout-class failure from the index
	// store. Triggers batch bisection on the write path.
	ErrStoreTimeout = errors.New("store timeout")

	// ErrStoreUnavailable indicates the index store is not configured.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrQuerySyntax indicates the store rejected the search query's
	// syntax. Triggers the plain-mode fallback.
	ErrQuerySyntax = errors.New("query syntax rejected")

	// ErrRateLimited indicates the source API rate limit was exceeded
	// after the bounded retry was exhausted.
	ErrRateLimited = errors.New("rate limited")

	// ErrAuthInvalid indicates the source API rejected the bearer token.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrConnectorClosed indicates the connector has been closed.
	ErrConnectorClosed = errors.New("connector closed")
)
