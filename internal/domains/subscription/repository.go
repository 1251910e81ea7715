package subscription

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/wanwanruwoxin/my-zero2prod/internal/domains/subscription/model"
)

// Repository is the durable home for subscribers and their confirmation
// tokens. The insert operations take an open transaction so a subscriber
// and its first token commit or roll back together; the lookups and the
// confirmation update run directly on the pool.
type Repository interface {
	// WithTx runs fn inside one transaction, committing on success and
	// rolling back on error or panic.
	WithTx(ctx context.Context, fn func(pgx.Tx) error) error

	// InsertSubscriber creates a pending subscriber with a fresh id and
	// subscribed_at set to now. Returns ErrEmailAlreadyExists when the
	// email is taken.
	InsertSubscriber(ctx context.Context, tx pgx.Tx, sub NewSubscriber) (*model.Subscriber, error)

	// InsertToken stores a confirmation token for an existing subscriber.
	InsertToken(ctx context.Context, tx pgx.Tx, subscriberID uuid.UUID, token string) error

	// FindSubscriberIDByToken resolves a token to its subscriber id.
	// An unknown token is reported as (nil, nil), not as an error.
	FindSubscriberIDByToken(ctx context.Context, token string) (*uuid.UUID, error)

	// ConfirmSubscriber sets the subscriber's status to confirmed.
	// Returns ErrSubscriberNotFound when no row matches.
	ConfirmSubscriber(ctx context.Context, subscriberID uuid.UUID) error
}
