// internal/domain/checkout/draft.go
package checkout

import (
	"github.com/your-org/storefront/internal/domain/session"
)

// Draft holds the user-entered contact overrides pending order submission.
// Fields are overrides, not copies: nil means "use the profile's stored
// value". A set empty string is an explicit value and is kept as such, so it
// still fails the blank-contact check at reconciliation rather than silently
// falling back.
type Draft struct {
	AddressOverride *string `json:"address_override,omitempty"`
	PhoneOverride   *string `json:"phone_override,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// Overrides carries a partial contact update from the contact-details form.
// Omitted (nil) fields leave the draft untouched.
type Overrides struct {
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// ContactInfo is the resolved contact block used to build an order payload.
type ContactInfo struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Notes   string `json:"notes"`
}

// Apply replaces each provided field and leaves omitted fields untouched.
func (d *Draft) Apply(o Overrides) {
	if o.Address != nil {
		d.AddressOverride = o.Address
	}
	if o.Phone != nil {
		d.PhoneOverride = o.Phone
	}
	if o.Notes != nil {
		d.Notes = o.Notes
	}
}

// Reset clears all overrides.
func (d *Draft) Reset() {
	d.AddressOverride = nil
	d.PhoneOverride = nil
	d.Notes = nil
}

// Resolve merges the draft with the session's stored profile values: an
// explicit override wins, then the stored value, then empty. Pure read.
func (d *Draft) Resolve(identity *session.Identity) ContactInfo {
	info := ContactInfo{}

	if d.AddressOverride != nil {
		info.Address = *d.AddressOverride
	} else if identity != nil {
		info.Address = identity.Address()
	}

	if d.PhoneOverride != nil {
		info.Phone = *d.PhoneOverride
	} else if identity != nil {
		info.Phone = identity.Phone()
	}

	if d.Notes != nil {
		info.Notes = *d.Notes
	}

	return info
}
