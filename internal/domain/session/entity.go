// internal/domain/session/entity.go
package session

// Identity is the last-known-good authenticated identity for a browser
// session. It is either fully present or absent; there is no partially
// authenticated state. StoredAddress and StoredPhone mirror the profile
// values persisted server-side; nil means the profile has none on record.
type Identity struct {
	UserID        string  `json:"user_id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	StoredAddress *string `json:"stored_address,omitempty"`
	StoredPhone   *string `json:"stored_phone,omitempty"`
	Role          string  `json:"role"`
}

// Address returns the stored address or empty when the profile has none.
func (id *Identity) Address() string {
	if id.StoredAddress == nil {
		return ""
	}
	return *id.StoredAddress
}

// Phone returns the stored phone or empty when the profile has none.
func (id *Identity) Phone() string {
	if id.StoredPhone == nil {
		return ""
	}
	return *id.StoredPhone
}
