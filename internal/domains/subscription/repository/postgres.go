package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/wanwanruwoxin/my-zero2prod/internal/domains/subscription"
	"github.com/wanwanruwoxin/my-zero2prod/internal/domains/subscription/model"
	"github.com/wanwanruwoxin/my-zero2prod/pkg/cache"
	"github.com/wanwanruwoxin/my-zero2prod/pkg/database"
)

// PostgreSQL error codes inspected at this boundary.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// The token -> subscriber mapping is immutable once written, so cached
// entries only ever need a TTL, never invalidation.
const tokenCacheTTL = time.Hour

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
	log   zerolog.Logger
}

// NewPostgresRepository builds the pgx-backed repository. cache may be
// nil; the confirm-path lookup then always goes to the database.
func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache, log zerolog.Logger) subscription.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: c,
		log:   log.With().Str("component", "subscription_repository").Logger(),
	}
}

func (r *postgresRepository) WithTx(ctx context.Context, fn func(pgx.Tx) error) error {
	return database.WithTransaction(ctx, r.pool, fn)
}

func (r *postgresRepository) InsertSubscriber(ctx context.Context, tx pgx.Tx, sub subscription.NewSubscriber) (*model.Subscriber, error) {
	s := &model.Subscriber{
		ID:           uuid.New(),
		Email:        sub.Email,
		Name:         sub.Name,
		SubscribedAt: time.Now().UTC(),
		Status:       model.StatusPendingConfirmation,
	}

	query := `
		INSERT INTO subscriptions (id, email, name, subscribed_at, status)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.Exec(ctx, query, s.ID, s.Email, s.Name, s.SubscribedAt, s.Status); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, subscription.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("insert subscriber: %w", err)
	}

	return s, nil
}

func (r *postgresRepository) InsertToken(ctx context.Context, tx pgx.Tx, subscriberID uuid.UUID, token string) error {
	query := `
		INSERT INTO subscription_tokens (subscription_token, subscriber_id)
		VALUES ($1, $2)
	`
	if _, err := tx.Exec(ctx, query, token, subscriberID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return subscription.ErrDuplicateToken
			case pgForeignKeyViolation:
				return fmt.Errorf("token references missing subscriber %s: %w", subscriberID, err)
			}
		}
		return fmt.Errorf("insert subscription token: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindSubscriberIDByToken(ctx context.Context, token string) (*uuid.UUID, error) {
	cacheKey := "subscription_token:" + token

	if r.cache != nil {
		var cached uuid.UUID
		found, err := r.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			// A broken cache must not take the confirm path down.
			r.log.Warn().Err(err).Msg("token cache lookup failed")
		} else if found {
			return &cached, nil
		}
	}

	var id uuid.UUID
	query := `SELECT subscriber_id FROM subscription_tokens WHERE subscription_token = $1`
	if err := r.pool.QueryRow(ctx, query, token).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find subscriber id by token: %w", err)
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, cacheKey, id, tokenCacheTTL); err != nil {
			r.log.Warn().Err(err).Msg("token cache store failed")
		}
	}

	return &id, nil
}

func (r *postgresRepository) ConfirmSubscriber(ctx context.Context, subscriberID uuid.UUID) error {
	query := `UPDATE subscriptions SET status = $1 WHERE id = $2`
	tag, err := r.pool.Exec(ctx, query, model.StatusConfirmed, subscriberID)
	if err != nil {
		return fmt.Errorf("confirm subscriber: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return subscription.ErrSubscriberNotFound
	}

	return nil
}
