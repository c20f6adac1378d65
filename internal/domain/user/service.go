// internal/domain/user/service.go
package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/pkg/auth"
	"gorm.io/gorm"
)

// Service handles accounts: credential and OAuth sign-in, profile reads and
// the contact update the checkout pipeline requests before submitting.
type Service struct {
	db              *gorm.DB
	config          *config.Config
	passwordManager *auth.PasswordManager
	jwtManager      *auth.JWTManager
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		passwordManager: auth.NewPasswordManager(cfg),
		jwtManager:      auth.NewJWTManager(cfg),
	}
}

// RegisterRequest represents account registration data
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

// LoginRequest represents credential login data
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleProfile is the verified profile the OAuth handshake produced. The
// handshake itself happens outside this service; only its result lands here.
type GoogleProfile struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthResponse represents a successful sign-in
type AuthResponse struct {
	User        *User  `json:"user"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(req *RegisterRequest) (*AuthResponse, error) {
	var existing User
	if result := s.db.Where("email = ?", req.Email).First(&existing); result.Error == nil {
		return nil, fmt.Errorf("account with this email already exists")
	}

	hashed, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := User{
		Email:    req.Email,
		Password: hashed,
		Name:     req.Name,
		Role:     RoleCustomer,
		Provider: ProviderLocal,
		IsActive: true,
	}
	if err := s.db.Create(&account).Error; err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return s.authResponse(&account)
}

// Login authenticates by email and password.
func (s *Service) Login(req *LoginRequest) (*AuthResponse, error) {
	var account User
	result := s.db.Where("email = ? AND is_active = ?", req.Email, true).First(&account)
	if result.Error != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := s.passwordManager.VerifyPassword(req.Password, account.Password); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	return s.authResponse(&account)
}

// EstablishOAuth signs in a verified Google profile, creating the account on
// first sight and reusing it afterwards.
func (s *Service) EstablishOAuth(profile *GoogleProfile) (*AuthResponse, error) {
	if profile.Email == "" {
		return nil, fmt.Errorf("oauth profile missing email")
	}

	var account User
	result := s.db.Where("email = ?", profile.Email).First(&account)
	if result.Error == gorm.ErrRecordNotFound {
		account = User{
			Email:    profile.Email,
			Name:     profile.Name,
			Role:     RoleCustomer,
			Provider: ProviderGoogle,
			IsActive: true,
		}
		if err := s.db.Create(&account).Error; err != nil {
			return nil, fmt.Errorf("failed to create account: %w", err)
		}
	} else if result.Error != nil {
		return nil, fmt.Errorf("failed to look up account: %w", result.Error)
	}

	if !account.IsActive {
		return nil, fmt.Errorf("account is disabled")
	}

	return s.authResponse(&account)
}

// GetByEmail loads an active account by email.
func (s *Service) GetByEmail(email string) (*User, error) {
	var account User
	result := s.db.Where("email = ? AND is_active = ?", strings.ToLower(email), true).First(&account)
	if result.Error != nil {
		return nil, fmt.Errorf("account not found")
	}
	return &account, nil
}

// GetProfile loads an active account by id.
func (s *Service) GetProfile(userID string) (*User, error) {
	var account User
	result := s.db.Where("id = ? AND is_active = ?", userID, true).First(&account)
	if result.Error != nil {
		return nil, fmt.Errorf("account not found")
	}
	return &account, nil
}

// UpdateContact persists a corrected address and phone to the profile. The
// checkout pipeline awaits this before submitting an order so the stored
// profile matches the order's shipping fields.
func (s *Service) UpdateContact(ctx context.Context, userID, address, phone string) error {
	result := s.db.WithContext(ctx).Model(&User{}).
		Where("id = ? AND is_active = ?", userID, true).
		Updates(map[string]interface{}{
			"address": address,
			"phone":   phone,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update contact details: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("account not found")
	}
	return nil
}

// ResetPassword replaces the account's password. Token validation happens in
// the reset token store before this is called; only the new credential is
// checked here.
func (s *Service) ResetPassword(ctx context.Context, userID, newPassword string) error {
	hashed, err := s.passwordManager.HashPassword(newPassword)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).Model(&User{}).
		Where("id = ? AND is_active = ?", userID, true).
		Update("password", hashed)
	if result.Error != nil {
		return fmt.Errorf("failed to update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("account not found")
	}
	return nil
}

func (s *Service) authResponse(account *User) (*AuthResponse, error) {
	token, err := s.jwtManager.GenerateToken(account.ID, account.Email, account.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	account.Password = ""
	return &AuthResponse{
		User:        account,
		AccessToken: token,
		ExpiresIn:   int64(s.config.JWT.AccessTokenExpiry.Seconds()),
	}, nil
}
