package subscription

import "context"

// Service drives the subscribe-and-confirm workflow.
type Service interface {
	// Subscribe persists a pending subscriber with a fresh confirmation
	// token in one transaction, then emails the confirmation link.
	Subscribe(ctx context.Context, sub NewSubscriber) error

	// Confirm resolves a presented token and transitions the owning
	// subscriber to confirmed. Returns ErrUnknownToken when the token
	// was never issued.
	Confirm(ctx context.Context, token string) error
}
