// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/session"
)

// CartStore is the slice of the cart service the checkout pipeline needs.
type CartStore interface {
	Ledger(ctx context.Context, sessionID string) (*cart.Ledger, error)
	Clear(ctx context.Context, sessionID string) error
}

// SessionStore is the slice of the session service the pipeline needs.
type SessionStore interface {
	Current(ctx context.Context, sessionID string) (*session.Identity, error)
	Establish(ctx context.Context, sessionID string, identity session.Identity) error
	Clear(ctx context.Context, sessionID string) error
}

// DraftStore loads and persists per-session checkout drafts.
type DraftStore interface {
	Draft(ctx context.Context, sessionID string) (*Draft, error)
	Save(ctx context.Context, sessionID string, draft *Draft) error
	Reset(ctx context.Context, sessionID string) error
}

// ContactUpdater persists a corrected contact block to the user's profile.
type ContactUpdater interface {
	UpdateContact(ctx context.Context, userID, address, phone string) error
}

// OrderConfirmation is the order endpoint's answer to a successful submission.
type OrderConfirmation struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
}

// OrderSubmitter accepts a reconciled payload and creates the order. A
// *SubmissionError return carries the endpoint's validation messages.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, payload *OrderPayload) (*OrderConfirmation, error)
}

// SubmissionError carries every validation message the order endpoint
// reported, so callers can show all of them rather than just the first.
type SubmissionError struct {
	Messages []string
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("order rejected: %s", strings.Join(e.Messages, "; "))
}

// Service owns the checkout pipeline: it reconciles the three session states
// into an order payload, sequences the contact-profile sync ahead of order
// submission, and resets cart and draft once an order is placed.
type Service struct {
	carts    CartStore
	sessions SessionStore
	drafts   DraftStore
	contacts ContactUpdater
	orders   OrderSubmitter
}

// NewService creates a new checkout service
func NewService(carts CartStore, sessions SessionStore, drafts DraftStore, contacts ContactUpdater, orders OrderSubmitter) *Service {
	return &Service{
		carts:    carts,
		sessions: sessions,
		drafts:   drafts,
		contacts: contacts,
		orders:   orders,
	}
}

// SetContact applies a partial contact update to the session's draft.
func (s *Service) SetContact(ctx context.Context, sessionID string, o Overrides) (*Draft, error) {
	draft, err := s.drafts.Draft(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	draft.Apply(o)
	if err := s.drafts.Save(ctx, sessionID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Summary reconciles the session's current state without submitting, so the
// review page can show the payload-to-be or the correction step required.
func (s *Service) Summary(ctx context.Context, sessionID string) (*Result, *Rejection, error) {
	ledger, identity, draft, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	result, rejection := Reconcile(ledger, identity, draft)
	return result, rejection, nil
}

// Submit runs the full pipeline: reconcile, sync the contact profile when the
// resolved fields differ from the stored ones, then create the order. The
// contact sync is awaited to completion before submission so the stored
// profile and the order's shipping fields cannot diverge; a sync failure
// aborts the submission. On success the cart is cleared and the draft reset.
func (s *Service) Submit(ctx context.Context, sessionID string) (*OrderConfirmation, *Rejection, error) {
	ledger, identity, draft, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	result, rejection := Reconcile(ledger, identity, draft)
	if rejection != nil {
		return nil, rejection, nil
	}

	if result.ContactNeedsSync {
		payload := result.Payload
		if err := s.contacts.UpdateContact(ctx, payload.UserID, payload.Address, payload.Phone); err != nil {
			return nil, nil, fmt.Errorf("failed to save contact details: %w", err)
		}

		// Keep the cached identity in step with the profile we just wrote.
		updated := *identity
		updated.StoredAddress = &payload.Address
		updated.StoredPhone = &payload.Phone
		if err := s.sessions.Establish(ctx, sessionID, updated); err != nil {
			return nil, nil, err
		}
	}

	confirmation, err := s.orders.SubmitOrder(ctx, &result.Payload)
	if err != nil {
		return nil, nil, err
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		return nil, nil, fmt.Errorf("order %s created but cart cleanup failed: %w", confirmation.OrderNumber, err)
	}
	if err := s.drafts.Reset(ctx, sessionID); err != nil {
		return nil, nil, fmt.Errorf("order %s created but draft cleanup failed: %w", confirmation.OrderNumber, err)
	}

	return confirmation, nil, nil
}

// EndSession destroys the session's identity and, with it, the in-progress
// cart and draft: switching identity invalidates an in-progress checkout.
func (s *Service) EndSession(ctx context.Context, sessionID string) error {
	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		return err
	}
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		return err
	}
	return s.drafts.Reset(ctx, sessionID)
}

func (s *Service) load(ctx context.Context, sessionID string) (*cart.Ledger, *session.Identity, *Draft, error) {
	ledger, err := s.carts.Ledger(ctx, sessionID)
	if err != nil {
		return nil, nil, nil, err
	}

	identity, err := s.sessions.Current(ctx, sessionID)
	if err != nil {
		return nil, nil, nil, err
	}

	draft, err := s.drafts.Draft(ctx, sessionID)
	if err != nil {
		return nil, nil, nil, err
	}

	return ledger, identity, draft, nil
}
