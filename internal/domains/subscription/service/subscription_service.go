package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/wanwanruwoxin/my-zero2prod/internal/domains/subscription"
	"github.com/wanwanruwoxin/my-zero2prod/internal/infrastructure/email"
	"github.com/wanwanruwoxin/my-zero2prod/pkg/token"
)

type subscriptionService struct {
	repo    subscription.Repository
	mailer  email.EmailService
	baseURL string
	log     zerolog.Logger
}

// NewSubscriptionService wires the workflow. baseURL is the public
// address embedded into confirmation links.
func NewSubscriptionService(repo subscription.Repository, mailer email.EmailService, baseURL string, log zerolog.Logger) subscription.Service {
	return &subscriptionService{
		repo:    repo,
		mailer:  mailer,
		baseURL: baseURL,
		log:     log.With().Str("component", "subscription_service").Logger(),
	}
}

// Subscribe inserts the subscriber, mints a confirmation token, and
// stores the token, all inside one transaction, then sends the
// confirmation email. The email goes out only after commit: no
// transaction is held open across the SMTP call. The flip side is that
// a send failure leaves a committed pending subscriber behind, which is
// surfaced to the caller but not rolled back.
func (s *subscriptionService) Subscribe(ctx context.Context, sub subscription.NewSubscriber) error {
	var confirmationToken string

	err := s.repo.WithTx(ctx, func(tx pgx.Tx) error {
		subscriber, err := s.repo.InsertSubscriber(ctx, tx, sub)
		if err != nil {
			return err
		}

		confirmationToken, err = token.Generate()
		if err != nil {
			return fmt.Errorf("generate subscription token: %w", err)
		}

		return s.repo.InsertToken(ctx, tx, subscriber.ID, confirmationToken)
	})
	if err != nil {
		s.log.Error().Err(err).Str("email", sub.Email).Msg("failed to persist new subscriber")
		return err
	}

	link, err := s.confirmationLink(confirmationToken)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to build confirmation link")
		return err
	}

	data := email.ConfirmationEmailData{
		Email:       sub.Email,
		Name:        sub.Name,
		ConfirmLink: link,
	}
	if err := s.mailer.SendConfirmationEmail(ctx, data); err != nil {
		// The subscriber is already committed as pending_confirmation;
		// there is nothing left to roll back at this point.
		s.log.Error().Err(err).Str("email", sub.Email).Msg("failed to send confirmation email")
		return fmt.Errorf("send confirmation email: %w", err)
	}

	return nil
}

// Confirm resolves the token and flips the owning subscriber to
// confirmed. The update is a plain assignment, so confirming an already
// confirmed subscriber again is harmless.
func (s *subscriptionService) Confirm(ctx context.Context, confirmationToken string) error {
	id, err := s.repo.FindSubscriberIDByToken(ctx, confirmationToken)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to look up subscription token")
		return err
	}
	if id == nil {
		return subscription.ErrUnknownToken
	}

	if err := s.repo.ConfirmSubscriber(ctx, *id); err != nil {
		s.log.Error().Err(err).Str("subscriber_id", id.String()).Msg("failed to confirm subscriber")
		return err
	}

	return nil
}

// confirmationLink builds
// {base_url}/subscriptions/confirm?subscription_token={token}.
func (s *subscriptionService) confirmationLink(confirmationToken string) (string, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid base url %q", s.baseURL)
	}

	u.Path = strings.TrimRight(u.Path, "/") + "/subscriptions/confirm"
	q := u.Query()
	q.Set("subscription_token", confirmationToken)
	u.RawQuery = q.Encode()

	return u.String(), nil
}
