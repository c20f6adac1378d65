// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/storefront/internal/domain/session"
	"gorm.io/gorm"
)

// Roles
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Auth providers
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// User represents a storefront account. Address and Phone are nullable:
// nil means the profile has no value on record, which is different from an
// empty string the user explicitly saved.
type User struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	Email     string         `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password  string         `gorm:"size:255" json:"-"` // Empty for OAuth-only accounts
	Name      string         `gorm:"size:200" json:"name"`
	Address   *string        `gorm:"size:500" json:"address"`
	Phone     *string        `gorm:"size:20" json:"phone"`
	Role      string         `gorm:"size:20;default:'customer'" json:"role"`
	Provider  string         `gorm:"size:20;default:'local'" json:"provider"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// BeforeCreate normalizes the email and assigns a uuid primary key.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Email = strings.ToLower(u.Email)
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// Identity maps the account onto the session identity shape.
func (u *User) Identity() session.Identity {
	return session.Identity{
		UserID:        u.ID,
		Name:          u.Name,
		Email:         u.Email,
		StoredAddress: u.Address,
		StoredPhone:   u.Phone,
		Role:          u.Role,
	}
}
