package model

import (
	"time"

	"github.com/google/uuid"
)

// Subscriber lifecycle statuses. The only transition is
// StatusPendingConfirmation -> StatusConfirmed; it never reverses.
const (
	StatusPendingConfirmation = "pending_confirmation"
	StatusConfirmed           = "confirmed"
)

// Subscriber is a row in the subscriptions table. ID and SubscribedAt
// are set once at creation and never change.
type Subscriber struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	SubscribedAt time.Time `json:"subscribed_at"`
	Status       string    `json:"status"`
}

// ConfirmationToken links a single-use token to the subscriber it was
// minted for. A subscriber may accumulate several tokens over time; each
// token names exactly one subscriber.
type ConfirmationToken struct {
	Token        string    `json:"subscription_token"`
	SubscriberID uuid.UUID `json:"subscriber_id"`
}
