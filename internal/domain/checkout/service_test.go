// internal/domain/checkout/service_test.go
package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/session"
)

type mockCartStore struct{ mock.Mock }

func (m *mockCartStore) Ledger(ctx context.Context, sessionID string) (*cart.Ledger, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Ledger), args.Error(1)
}

func (m *mockCartStore) Clear(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

type mockSessionStore struct{ mock.Mock }

func (m *mockSessionStore) Current(ctx context.Context, sessionID string) (*session.Identity, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Identity), args.Error(1)
}

func (m *mockSessionStore) Establish(ctx context.Context, sessionID string, identity session.Identity) error {
	return m.Called(ctx, sessionID, identity).Error(0)
}

func (m *mockSessionStore) Clear(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

type mockDraftStore struct{ mock.Mock }

func (m *mockDraftStore) Draft(ctx context.Context, sessionID string) (*Draft, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Draft), args.Error(1)
}

func (m *mockDraftStore) Save(ctx context.Context, sessionID string, draft *Draft) error {
	return m.Called(ctx, sessionID, draft).Error(0)
}

func (m *mockDraftStore) Reset(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

type mockContactUpdater struct{ mock.Mock }

func (m *mockContactUpdater) UpdateContact(ctx context.Context, userID, address, phone string) error {
	return m.Called(ctx, userID, address, phone).Error(0)
}

type mockOrderSubmitter struct{ mock.Mock }

func (m *mockOrderSubmitter) SubmitOrder(ctx context.Context, payload *OrderPayload) (*OrderConfirmation, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*OrderConfirmation), args.Error(1)
}

type pipelineMocks struct {
	carts    *mockCartStore
	sessions *mockSessionStore
	drafts   *mockDraftStore
	contacts *mockContactUpdater
	orders   *mockOrderSubmitter
}

func newPipeline() (*Service, *pipelineMocks) {
	m := &pipelineMocks{
		carts:    &mockCartStore{},
		sessions: &mockSessionStore{},
		drafts:   &mockDraftStore{},
		contacts: &mockContactUpdater{},
		orders:   &mockOrderSubmitter{},
	}
	return NewService(m.carts, m.sessions, m.drafts, m.contacts, m.orders), m
}

const sid = "session-1"

func TestServiceSubmitHappyPath(t *testing.T) {
	svc, m := newPipeline()
	ctx := context.Background()

	m.carts.On("Ledger", ctx, sid).Return(testLedger(), nil)
	m.sessions.On("Current", ctx, sid).Return(testIdentity(), nil)
	m.drafts.On("Draft", ctx, sid).Return(&Draft{}, nil)
	m.orders.On("SubmitOrder", ctx, mock.AnythingOfType("*checkout.OrderPayload")).
		Return(&OrderConfirmation{OrderID: "1", OrderNumber: "ORD-20260831-AAAAAAAA"}, nil)
	m.carts.On("Clear", ctx, sid).Return(nil)
	m.drafts.On("Reset", ctx, sid).Return(nil)

	confirmation, rejection, err := svc.Submit(ctx, sid)

	require.NoError(t, err)
	require.Nil(t, rejection)
	assert.Equal(t, "ORD-20260831-AAAAAAAA", confirmation.OrderNumber)

	// Stored contact matched the payload, so no profile write happened.
	m.contacts.AssertNotCalled(t, "UpdateContact", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.carts.AssertCalled(t, "Clear", ctx, sid)
	m.drafts.AssertCalled(t, "Reset", ctx, sid)
}

func TestServiceSubmitSyncsContactBeforeOrder(t *testing.T) {
	svc, m := newPipeline()
	ctx := context.Background()

	draft := &Draft{AddressOverride: strPtr("99 New Avenue")}

	m.carts.On("Ledger", ctx, sid).Return(testLedger(), nil)
	m.sessions.On("Current", ctx, sid).Return(testIdentity(), nil)
	m.drafts.On("Draft", ctx, sid).Return(draft, nil)

	var contactSynced bool
	m.contacts.On("UpdateContact", ctx, "user-1", "99 New Avenue", "555-0101").
		Run(func(args mock.Arguments) { contactSynced = true }).
		Return(nil)
	m.sessions.On("Establish", ctx, sid, mock.MatchedBy(func(id session.Identity) bool {
		return id.Address() == "99 New Avenue" && id.Phone() == "555-0101"
	})).Return(nil)
	m.orders.On("SubmitOrder", ctx, mock.AnythingOfType("*checkout.OrderPayload")).
		Run(func(args mock.Arguments) {
			// The profile write must land before the order does.
			assert.True(t, contactSynced)
		}).
		Return(&OrderConfirmation{OrderID: "1", OrderNumber: "ORD-1"}, nil)
	m.carts.On("Clear", ctx, sid).Return(nil)
	m.drafts.On("Reset", ctx, sid).Return(nil)

	_, rejection, err := svc.Submit(ctx, sid)

	require.NoError(t, err)
	require.Nil(t, rejection)
	m.contacts.AssertExpectations(t)
	m.sessions.AssertExpectations(t)
}

func TestServiceSubmitContactSyncFailureAborts(t *testing.T) {
	svc, m := newPipeline()
	ctx := context.Background()

	m.carts.On("Ledger", ctx, sid).Return(testLedger(), nil)
	m.sessions.On("Current", ctx, sid).Return(testIdentity(), nil)
	m.drafts.On("Draft", ctx, sid).Return(&Draft{PhoneOverride: strPtr("555-9999")}, nil)
	m.contacts.On("UpdateContact", ctx, "user-1", "12 Old Street", "555-9999").
		Return(errors.New("profile service unavailable"))

	confirmation, rejection, err := svc.Submit(ctx, sid)

	require.Error(t, err)
	assert.Nil(t, confirmation)
	assert.Nil(t, rejection)

	// The order is never attempted and the cart stays intact.
	m.orders.AssertNotCalled(t, "SubmitOrder", mock.Anything, mock.Anything)
	m.carts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}

func TestServiceSubmitRejectionTouchesNoCollaborator(t *testing.T) {
	svc, m := newPipeline()
	ctx := context.Background()

	m.carts.On("Ledger", ctx, sid).Return(&cart.Ledger{}, nil)
	m.sessions.On("Current", ctx, sid).Return(nil, nil)
	m.drafts.On("Draft", ctx, sid).Return(&Draft{}, nil)

	confirmation, rejection, err := svc.Submit(ctx, sid)

	require.NoError(t, err)
	assert.Nil(t, confirmation)
	require.NotNil(t, rejection)
	assert.Equal(t, ReasonNotAuthenticated, rejection.Reason)

	m.orders.AssertNotCalled(t, "SubmitOrder", mock.Anything, mock.Anything)
	m.contacts.AssertNotCalled(t, "UpdateContact", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.carts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}

func TestServiceSubmitPassesSubmissionErrorThrough(t *testing.T) {
	svc, m := newPipeline()
	ctx := context.Background()

	m.carts.On("Ledger", ctx, sid).Return(testLedger(), nil)
	m.sessions.On("Current", ctx, sid).Return(testIdentity(), nil)
	m.drafts.On("Draft", ctx, sid).Return(&Draft{}, nil)
	m.orders.On("SubmitOrder", ctx, mock.AnythingOfType("*checkout.OrderPayload")).
		Return(nil, &SubmissionError{Messages: []string{
			"user_phone is required",
			"products[0]: quantity must be at least 1",
		}})

	_, _, err := svc.Submit(ctx, sid)

	require.Error(t, err)
	var submission *SubmissionError
	require.ErrorAs(t, err, &submission)
	assert.Len(t, submission.Messages, 2)

	// A rejected submission leaves the cart alone so the user can retry.
	m.carts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}

func TestServiceSetContact(t *testing.T) {
	svc, m := newPipeline()
	ctx := context.Background()

	stored := &Draft{Notes: strPtr("ring the bell")}
	m.drafts.On("Draft", ctx, sid).Return(stored, nil)
	m.drafts.On("Save", ctx, sid, mock.MatchedBy(func(d *Draft) bool {
		return d.AddressOverride != nil && *d.AddressOverride == "99 New Avenue" &&
			d.Notes != nil && *d.Notes == "ring the bell"
	})).Return(nil)

	draft, err := svc.SetContact(ctx, sid, Overrides{Address: strPtr("99 New Avenue")})

	require.NoError(t, err)
	assert.Equal(t, "99 New Avenue", *draft.AddressOverride)
	m.drafts.AssertExpectations(t)
}

func TestServiceSummary(t *testing.T) {
	svc, m := newPipeline()
	ctx := context.Background()

	m.carts.On("Ledger", ctx, sid).Return(testLedger(), nil)
	m.sessions.On("Current", ctx, sid).Return(testIdentity(), nil)
	m.drafts.On("Draft", ctx, sid).Return(&Draft{}, nil)

	result, rejection, err := svc.Summary(ctx, sid)

	require.NoError(t, err)
	require.Nil(t, rejection)
	assert.Equal(t, int64(2000), result.Payload.TotalPrice)

	// Summary is a preview; nothing is submitted or mutated.
	m.orders.AssertNotCalled(t, "SubmitOrder", mock.Anything, mock.Anything)
}

func TestServiceEndSession(t *testing.T) {
	svc, m := newPipeline()
	ctx := context.Background()

	m.sessions.On("Clear", ctx, sid).Return(nil)
	m.carts.On("Clear", ctx, sid).Return(nil)
	m.drafts.On("Reset", ctx, sid).Return(nil)

	require.NoError(t, svc.EndSession(ctx, sid))

	m.sessions.AssertExpectations(t)
	m.carts.AssertExpectations(t)
	m.drafts.AssertExpectations(t)
}
