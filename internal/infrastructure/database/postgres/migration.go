// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/domain/support"
	"github.com/your-org/storefront/internal/domain/user"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		&user.User{},
		&product.Product{},
		&order.Order{},
		&order.OrderItem{},
		&support.Ticket{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	log.Println("✅ Database migrations completed")
	return nil
}

// SeedDevelopmentData inserts a starter admin account and catalog rows.
// It is idempotent and only intended for development databases.
func (m *Migration) SeedDevelopmentData() error {
	var count int64
	if err := m.db.Model(&user.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}
	if count > 0 {
		return nil
	}

	log.Println("🌱 Seeding development data...")

	hashed, err := bcrypt.GenerateFromPassword([]byte("Admin12345"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	admin := &user.User{
		Email:    "admin@example.com",
		Password: string(hashed),
		Name:     "Store Admin",
		Role:     user.RoleAdmin,
		Provider: user.ProviderLocal,
		IsActive: true,
	}
	if err := m.db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	salePrice := int64(129900)
	products := []product.Product{
		{
			Title:       "Walnut Desk Organizer",
			Description: "Five-compartment organizer in oiled walnut.",
			Price:       189900,
			Stock:       40,
			TrackStock:  true,
			IsActive:    true,
		},
		{
			Title:       "Ceramic Pour-Over Set",
			Description: "Dripper and carafe, matte glaze.",
			Price:       159900,
			SalePrice:   &salePrice,
			Stock:       25,
			TrackStock:  true,
			IsActive:    true,
		},
		{
			Title:       "Linen Throw Blanket",
			Description: "Stonewashed linen, 130x180cm.",
			Price:       99900,
			Stock:       0,
			TrackStock:  false,
			IsActive:    true,
		},
	}
	for i := range products {
		if err := m.db.Create(&products[i]).Error; err != nil {
			return fmt.Errorf("failed to seed product %q: %w", products[i].Title, err)
		}
	}

	log.Println("✅ Development data seeded")
	return nil
}
