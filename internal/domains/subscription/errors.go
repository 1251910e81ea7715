package subscription

import "errors"

// Repository-level errors
var (
	// Conflict: the database reported a uniqueness violation. Duplicate
	// subscriptions are a client-visible condition, never retried.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// A colliding token is astronomically unlikely and treated as a hard
	// failure.
	ErrDuplicateToken = errors.New("subscription token already exists")

	// ErrSubscriberNotFound means the confirm update matched no row,
	// e.g. the subscriber was deleted between lookup and update.
	ErrSubscriberNotFound = errors.New("subscriber not found")
)

// Service-level errors
var (
	// ErrUnknownToken means the presented token was never issued. Tokens
	// act as credentials, so this maps to an unauthorized outcome.
	ErrUnknownToken = errors.New("unknown subscription token")
)
