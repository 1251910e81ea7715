package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanwanruwoxin/my-zero2prod/internal/domains/subscription"
	"github.com/wanwanruwoxin/my-zero2prod/internal/domains/subscription/model"
	"github.com/wanwanruwoxin/my-zero2prod/internal/infrastructure/email"
	"github.com/wanwanruwoxin/my-zero2prod/pkg/token"
)

// fakeRepository records writes the way a transactional store would:
// anything written inside a failed WithTx run is discarded.
type fakeRepository struct {
	insertSubscriberErr error
	insertTokenErr      error
	findID              *uuid.UUID
	findErr             error
	confirmErr          error

	committed          bool
	insertedSubscriber *model.Subscriber
	insertedToken      string
	confirmedID        *uuid.UUID
}

func (f *fakeRepository) WithTx(ctx context.Context, fn func(pgx.Tx) error) error {
	if err := fn(nil); err != nil {
		f.insertedSubscriber = nil
		f.insertedToken = ""
		return err
	}
	f.committed = true
	return nil
}

func (f *fakeRepository) InsertSubscriber(ctx context.Context, tx pgx.Tx, sub subscription.NewSubscriber) (*model.Subscriber, error) {
	if f.insertSubscriberErr != nil {
		return nil, f.insertSubscriberErr
	}
	s := &model.Subscriber{
		ID:           uuid.New(),
		Email:        sub.Email,
		Name:         sub.Name,
		SubscribedAt: time.Now().UTC(),
		Status:       model.StatusPendingConfirmation,
	}
	f.insertedSubscriber = s
	return s, nil
}

func (f *fakeRepository) InsertToken(ctx context.Context, tx pgx.Tx, subscriberID uuid.UUID, tok string) error {
	if f.insertTokenErr != nil {
		return f.insertTokenErr
	}
	f.insertedToken = tok
	return nil
}

func (f *fakeRepository) FindSubscriberIDByToken(ctx context.Context, tok string) (*uuid.UUID, error) {
	return f.findID, f.findErr
}

func (f *fakeRepository) ConfirmSubscriber(ctx context.Context, subscriberID uuid.UUID) error {
	if f.confirmErr != nil {
		return f.confirmErr
	}
	f.confirmedID = &subscriberID
	return nil
}

type fakeMailer struct {
	err  error
	sent []email.ConfirmationEmailData
}

func (f *fakeMailer) SendConfirmationEmail(ctx context.Context, data email.ConfirmationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

const testBaseURL = "https://newsletter.example.com"

func newTestService(repo subscription.Repository, mailer email.EmailService) subscription.Service {
	return NewSubscriptionService(repo, mailer, testBaseURL, zerolog.Nop())
}

func TestSubscribe_Success(t *testing.T) {
	repo := &fakeRepository{}
	mailer := &fakeMailer{}
	svc := newTestService(repo, mailer)

	sub := subscription.NewSubscriber{Name: "le guin", Email: "ursula_le_guin@gmail.com"}
	err := svc.Subscribe(context.Background(), sub)
	require.NoError(t, err)

	assert.True(t, repo.committed)
	require.NotNil(t, repo.insertedSubscriber)
	assert.Equal(t, "ursula_le_guin@gmail.com", repo.insertedSubscriber.Email)
	assert.Equal(t, model.StatusPendingConfirmation, repo.insertedSubscriber.Status)
	assert.Len(t, repo.insertedToken, token.Length)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ursula_le_guin@gmail.com", mailer.sent[0].Email)
	expectedLink := fmt.Sprintf("%s/subscriptions/confirm?subscription_token=%s", testBaseURL, repo.insertedToken)
	assert.Equal(t, expectedLink, mailer.sent[0].ConfirmLink)
}

func TestSubscribe_DuplicateEmail(t *testing.T) {
	repo := &fakeRepository{insertSubscriberErr: subscription.ErrEmailAlreadyExists}
	mailer := &fakeMailer{}
	svc := newTestService(repo, mailer)

	err := svc.Subscribe(context.Background(), subscription.NewSubscriber{Name: "le guin", Email: "taken@example.com"})
	require.ErrorIs(t, err, subscription.ErrEmailAlreadyExists)

	assert.False(t, repo.committed)
	assert.Nil(t, repo.insertedSubscriber)
	assert.Empty(t, mailer.sent)
}

func TestSubscribe_TokenInsertFailureRollsBack(t *testing.T) {
	repo := &fakeRepository{insertTokenErr: subscription.ErrDuplicateToken}
	mailer := &fakeMailer{}
	svc := newTestService(repo, mailer)

	err := svc.Subscribe(context.Background(), subscription.NewSubscriber{Name: "le guin", Email: "a@b.com"})
	require.ErrorIs(t, err, subscription.ErrDuplicateToken)

	// The subscriber insert happened inside the same transaction, so it
	// must not survive the failed token insert.
	assert.False(t, repo.committed)
	assert.Nil(t, repo.insertedSubscriber)
	assert.Empty(t, mailer.sent)
}

func TestSubscribe_EmailFailureKeepsCommittedRows(t *testing.T) {
	repo := &fakeRepository{}
	mailer := &fakeMailer{err: errors.New("smtp: connection refused")}
	svc := newTestService(repo, mailer)

	err := svc.Subscribe(context.Background(), subscription.NewSubscriber{Name: "le guin", Email: "a@b.com"})
	require.Error(t, err)

	// The send happens after commit; the pending subscriber stays.
	assert.True(t, repo.committed)
	assert.NotNil(t, repo.insertedSubscriber)
	assert.NotEmpty(t, repo.insertedToken)
}

func TestSubscribe_InvalidBaseURL(t *testing.T) {
	repo := &fakeRepository{}
	mailer := &fakeMailer{}
	svc := NewSubscriptionService(repo, mailer, "not-a-url", zerolog.Nop())

	err := svc.Subscribe(context.Background(), subscription.NewSubscriber{Name: "le guin", Email: "a@b.com"})
	require.Error(t, err)
	assert.Empty(t, mailer.sent)
}

func TestConfirm_Success(t *testing.T) {
	id := uuid.New()
	repo := &fakeRepository{findID: &id}
	svc := newTestService(repo, &fakeMailer{})

	err := svc.Confirm(context.Background(), "sometoken")
	require.NoError(t, err)
	require.NotNil(t, repo.confirmedID)
	assert.Equal(t, id, *repo.confirmedID)
}

func TestConfirm_Idempotent(t *testing.T) {
	id := uuid.New()
	repo := &fakeRepository{findID: &id}
	svc := newTestService(repo, &fakeMailer{})

	require.NoError(t, svc.Confirm(context.Background(), "sometoken"))
	// Confirming again re-applies the same assignment and still succeeds.
	require.NoError(t, svc.Confirm(context.Background(), "sometoken"))
}

func TestConfirm_UnknownToken(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(repo, &fakeMailer{})

	err := svc.Confirm(context.Background(), "never-issued")
	require.ErrorIs(t, err, subscription.ErrUnknownToken)
	assert.Nil(t, repo.confirmedID)
}

func TestConfirm_LookupError(t *testing.T) {
	repo := &fakeRepository{findErr: errors.New("connection reset")}
	svc := newTestService(repo, &fakeMailer{})

	err := svc.Confirm(context.Background(), "sometoken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, subscription.ErrUnknownToken)
}

func TestConfirm_SubscriberGone(t *testing.T) {
	id := uuid.New()
	repo := &fakeRepository{findID: &id, confirmErr: subscription.ErrSubscriberNotFound}
	svc := newTestService(repo, &fakeMailer{})

	err := svc.Confirm(context.Background(), "sometoken")
	require.ErrorIs(t, err, subscription.ErrSubscriberNotFound)
}
