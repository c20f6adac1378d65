// internal/domain/checkout/reconcile.go
package checkout

import (
	"strings"

	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/session"
)

// Reason classifies why a reconciliation could not produce a payload.
type Reason string

const (
	// ReasonNotAuthenticated means no identity is established; the caller
	// redirects to login and the cart survives the round trip.
	ReasonNotAuthenticated Reason = "not_authenticated"
	// ReasonEmptyCart means there is nothing to order.
	ReasonEmptyCart Reason = "empty_cart"
	// ReasonMissingContactInfo means the resolved address or phone is blank;
	// the caller routes to the contact form, the draft is preserved.
	ReasonMissingContactInfo Reason = "missing_contact_info"
	// ReasonInvalidProductReference means a cart line has no product id.
	// Stale or corrupt entries must never reach the order endpoint.
	ReasonInvalidProductReference Reason = "invalid_product_reference"
)

// Rejection is the typed, non-error outcome of a failed reconciliation.
// Callers branch on Reason to drive navigation; nothing here is thrown.
type Rejection struct {
	Reason        Reason   `json:"reason"`
	MissingFields []string `json:"missing_fields,omitempty"`
	Recoverable   bool     `json:"recoverable"`
}

// PayloadLine is one order line. UnitPrice is the price snapshotted when the
// product was added to the cart; nothing is recomputed here.
type PayloadLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"product_rtp"`
}

// OrderPayload is the body submitted to the order-creation endpoint. Field
// names, including the "user_adress" spelling, are fixed by that contract.
type OrderPayload struct {
	UserID     string        `json:"user_id"`
	Address    string        `json:"user_adress"`
	Phone      string        `json:"user_phone"`
	Notes      string        `json:"notes"`
	TotalPrice int64         `json:"total_price"`
	Products   []PayloadLine `json:"products"`
}

// Result carries a submittable payload plus advisory metadata.
// ContactNeedsSync is true when the resolved contact fields differ from the
// profile's stored values, telling the caller to persist the update before
// submitting; it is not part of the payload itself.
type Result struct {
	Payload          OrderPayload `json:"payload"`
	ContactNeedsSync bool         `json:"contact_needs_sync"`
}

// Reconcile combines cart, session and draft into a single order payload, or
// rejects with an actionable reason. It is pure: inputs are never mutated and
// identical inputs produce identical results.
func Reconcile(ledger *cart.Ledger, identity *session.Identity, draft *Draft) (*Result, *Rejection) {
	if identity == nil || identity.UserID == "" {
		return nil, &Rejection{Reason: ReasonNotAuthenticated, Recoverable: true}
	}

	if ledger == nil || ledger.IsEmpty() {
		return nil, &Rejection{Reason: ReasonEmptyCart, Recoverable: true}
	}

	if draft == nil {
		draft = &Draft{}
	}
	contact := draft.Resolve(identity)

	var missing []string
	if strings.TrimSpace(contact.Address) == "" {
		missing = append(missing, "address")
	}
	if strings.TrimSpace(contact.Phone) == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return nil, &Rejection{
			Reason:        ReasonMissingContactInfo,
			MissingFields: missing,
			Recoverable:   true,
		}
	}

	lines := ledger.Items()
	products := make([]PayloadLine, len(lines))
	for i, line := range lines {
		if line.ProductID == "" {
			return nil, &Rejection{Reason: ReasonInvalidProductReference}
		}
		products[i] = PayloadLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
	}

	return &Result{
		Payload: OrderPayload{
			UserID:     identity.UserID,
			Address:    contact.Address,
			Phone:      contact.Phone,
			Notes:      contact.Notes,
			TotalPrice: ledger.Total(),
			Products:   products,
		},
		ContactNeedsSync: contact.Address != identity.Address() || contact.Phone != identity.Phone(),
	}, nil
}
