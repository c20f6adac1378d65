// internal/domain/checkout/reconcile_test.go
package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/session"
)

func testLedger() *cart.Ledger {
	ledger := &cart.Ledger{}
	ledger.Add(cart.AddRequest{ProductID: "prod-a", UnitPrice: 1000, Quantity: 2, StockLimit: 99})
	return ledger
}

func testIdentity() *session.Identity {
	return &session.Identity{
		UserID:        "user-1",
		Name:          "Ada",
		Email:         "ada@example.com",
		StoredAddress: strPtr("12 Old Street"),
		StoredPhone:   strPtr("555-0101"),
		Role:          "customer",
	}
}

func TestReconcileNotAuthenticated(t *testing.T) {
	ledger := testLedger()

	result, rejection := Reconcile(ledger, nil, &Draft{})

	assert.Nil(t, result)
	require.NotNil(t, rejection)
	assert.Equal(t, ReasonNotAuthenticated, rejection.Reason)
	assert.True(t, rejection.Recoverable)

	// The cart survives the login round trip untouched.
	assert.Len(t, ledger.Lines, 1)
	assert.Equal(t, int64(2000), ledger.Total())
}

func TestReconcileEmptyCart(t *testing.T) {
	result, rejection := Reconcile(&cart.Ledger{}, testIdentity(), &Draft{})

	assert.Nil(t, result)
	require.NotNil(t, rejection)
	assert.Equal(t, ReasonEmptyCart, rejection.Reason)
	assert.True(t, rejection.Recoverable)
}

func TestReconcileAuthCheckedBeforeCart(t *testing.T) {
	// An anonymous session with an empty cart is reported as unauthenticated
	// first; login is the first step toward a submittable state.
	_, rejection := Reconcile(&cart.Ledger{}, nil, &Draft{})

	require.NotNil(t, rejection)
	assert.Equal(t, ReasonNotAuthenticated, rejection.Reason)
}

func TestReconcileMissingContactInfo(t *testing.T) {
	identity := &session.Identity{UserID: "user-1"}

	result, rejection := Reconcile(testLedger(), identity, &Draft{})

	assert.Nil(t, result)
	require.NotNil(t, rejection)
	assert.Equal(t, ReasonMissingContactInfo, rejection.Reason)
	assert.ElementsMatch(t, []string{"address", "phone"}, rejection.MissingFields)
	assert.True(t, rejection.Recoverable)
}

func TestReconcileWhitespaceContactIsMissing(t *testing.T) {
	identity := testIdentity()
	draft := &Draft{AddressOverride: strPtr("   ")}

	_, rejection := Reconcile(testLedger(), identity, draft)

	require.NotNil(t, rejection)
	assert.Equal(t, ReasonMissingContactInfo, rejection.Reason)
	assert.Equal(t, []string{"address"}, rejection.MissingFields)
}

func TestReconcileHappyPath(t *testing.T) {
	ledger := testLedger()
	identity := testIdentity()

	result, rejection := Reconcile(ledger, identity, &Draft{})

	require.Nil(t, rejection)
	require.NotNil(t, result)

	payload := result.Payload
	assert.Equal(t, "user-1", payload.UserID)
	assert.Equal(t, "12 Old Street", payload.Address)
	assert.Equal(t, "555-0101", payload.Phone)
	assert.Equal(t, "", payload.Notes)
	assert.Equal(t, int64(2000), payload.TotalPrice)
	require.Len(t, payload.Products, 1)
	assert.Equal(t, PayloadLine{ProductID: "prod-a", Quantity: 2, UnitPrice: 1000}, payload.Products[0])

	// Contact came straight from the stored profile, so no sync is needed.
	assert.False(t, result.ContactNeedsSync)
}

func TestReconcileOverrideTriggersContactSync(t *testing.T) {
	draft := &Draft{
		AddressOverride: strPtr("99 New Avenue"),
		Notes:           strPtr("leave at door"),
	}

	result, rejection := Reconcile(testLedger(), testIdentity(), draft)

	require.Nil(t, rejection)
	assert.Equal(t, "99 New Avenue", result.Payload.Address)
	assert.Equal(t, "555-0101", result.Payload.Phone)
	assert.Equal(t, "leave at door", result.Payload.Notes)
	assert.True(t, result.ContactNeedsSync)
}

func TestReconcileOverrideEqualToStoredNeedsNoSync(t *testing.T) {
	draft := &Draft{AddressOverride: strPtr("12 Old Street")}

	result, rejection := Reconcile(testLedger(), testIdentity(), draft)

	require.Nil(t, rejection)
	assert.False(t, result.ContactNeedsSync)
}

func TestReconcileInvalidProductReference(t *testing.T) {
	ledger := &cart.Ledger{Lines: []cart.Line{
		{LineID: "l1", ProductID: "prod-a", UnitPrice: 1000, Quantity: 1, StockLimit: 99},
		{LineID: "l2", ProductID: "", UnitPrice: 500, Quantity: 1, StockLimit: 99},
	}}

	result, rejection := Reconcile(ledger, testIdentity(), &Draft{})

	assert.Nil(t, result)
	require.NotNil(t, rejection)
	assert.Equal(t, ReasonInvalidProductReference, rejection.Reason)
	assert.False(t, rejection.Recoverable)
}

func TestReconcileTotalMatchesLedgerTotal(t *testing.T) {
	ledger := &cart.Ledger{}
	ledger.Add(cart.AddRequest{ProductID: "prod-a", UnitPrice: 333, Quantity: 3, StockLimit: 99})
	ledger.Add(cart.AddRequest{ProductID: "prod-b", UnitPrice: 1099, Quantity: 2, StockLimit: 99})

	result, rejection := Reconcile(ledger, testIdentity(), &Draft{})

	require.Nil(t, rejection)
	assert.Equal(t, ledger.Total(), result.Payload.TotalPrice)
	assert.Equal(t, int64(3197), result.Payload.TotalPrice)
}

func TestReconcileIsPureAndIdempotent(t *testing.T) {
	ledger := testLedger()
	identity := testIdentity()
	draft := &Draft{AddressOverride: strPtr("99 New Avenue")}

	first, rejection := Reconcile(ledger, identity, draft)
	require.Nil(t, rejection)

	second, rejection := Reconcile(ledger, identity, draft)
	require.Nil(t, rejection)

	assert.Equal(t, first, second)

	// Inputs are untouched.
	assert.Len(t, ledger.Lines, 1)
	assert.Equal(t, "12 Old Street", identity.Address())
	assert.Equal(t, "99 New Avenue", *draft.AddressOverride)
	assert.Nil(t, draft.PhoneOverride)
}

func TestReconcileNilDraft(t *testing.T) {
	result, rejection := Reconcile(testLedger(), testIdentity(), nil)

	require.Nil(t, rejection)
	assert.Equal(t, "12 Old Street", result.Payload.Address)
}
