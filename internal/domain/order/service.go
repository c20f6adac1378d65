// internal/domain/order/service.go
package order

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/pkg/email"
	"gorm.io/gorm"
)

// Service persists submitted orders. It is the order-creation endpoint behind
// the checkout pipeline's OrderSubmitter contract.
type Service struct {
	db           *gorm.DB
	config       *config.Config
	emailService *email.EmailService
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:           db,
		config:       cfg,
		emailService: email.NewEmailService(cfg),
	}
}

// SubmitOrder validates the payload, collecting every violation rather than
// stopping at the first, then creates the order and its items in one
// transaction. Prices are taken verbatim from the payload; nothing is
// re-priced here.
func (s *Service) SubmitOrder(ctx context.Context, payload *checkout.OrderPayload) (*checkout.OrderConfirmation, error) {
	if messages := s.validatePayload(ctx, payload); len(messages) > 0 {
		return nil, &checkout.SubmissionError{Messages: messages}
	}

	newOrder := Order{
		OrderNumber: GenerateOrderNumber(),
		UserID:      payload.UserID,
		Address:     payload.Address,
		Phone:       payload.Phone,
		Notes:       payload.Notes,
		TotalPrice:  payload.TotalPrice,
		Status:      OrderStatusPending,
	}
	for _, line := range payload.Products {
		newOrder.Items = append(newOrder.Items, OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.UnitPrice * int64(line.Quantity),
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&newOrder).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// The order is committed at this point. The confirmation email is sent
	// off the request path and a failed send is logged, never surfaced.
	go s.sendConfirmationEmail(context.Background(), &newOrder)

	return &checkout.OrderConfirmation{
		OrderID:     fmt.Sprintf("%d", newOrder.ID),
		OrderNumber: newOrder.OrderNumber,
	}, nil
}

func (s *Service) sendConfirmationEmail(ctx context.Context, o *Order) {
	var account user.User
	if err := s.db.WithContext(ctx).First(&account, "id = ?", o.UserID).Error; err != nil {
		logrus.WithError(err).WithField("order_number", o.OrderNumber).
			Warn("Order confirmation email skipped: account lookup failed")
		return
	}

	data := email.OrderConfirmationData{
		OrderNumber: o.OrderNumber,
		OrderTotal:  fmt.Sprintf("$%.2f", o.FormattedTotal()),
		OrderDate:   o.CreatedAt.UTC().Format("January 2, 2006"),
	}
	data.UserName = account.Name
	data.UserEmail = account.Email

	if err := s.emailService.SendOrderConfirmationEmail(ctx, data); err != nil {
		logrus.WithError(err).WithField("order_number", o.OrderNumber).
			Warn("Failed to send order confirmation email")
	}
}

// ListUserOrders returns a user's orders, newest first.
func (s *Service) ListUserOrders(userID string, page, limit int) ([]Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := s.db.Model(&Order{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []Order
	offset := (page - 1) * limit
	if err := query.Preload("Items").Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	return orders, total, nil
}

// GetByNumber returns one of the user's orders by its order number.
func (s *Service) GetByNumber(userID, orderNumber string) (*Order, error) {
	var o Order
	result := s.db.Preload("Items").
		Where("user_id = ? AND order_number = ?", userID, orderNumber).
		First(&o)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}
	return &o, nil
}

// validatePayload returns the full list of contract violations. The messages
// are surfaced to the client as-is, so each must stand on its own.
func (s *Service) validatePayload(ctx context.Context, payload *checkout.OrderPayload) []string {
	var messages []string

	if payload.UserID == "" {
		messages = append(messages, "user_id is required")
	}
	if payload.Address == "" {
		messages = append(messages, "user_adress is required")
	}
	if payload.Phone == "" {
		messages = append(messages, "user_phone is required")
	}
	if len(payload.Products) == 0 {
		messages = append(messages, "order must contain at least one product")
	}

	var computedTotal int64
	for i, line := range payload.Products {
		if line.ProductID == "" {
			messages = append(messages, fmt.Sprintf("products[%d]: product_id is required", i))
			continue
		}
		if line.Quantity < 1 {
			messages = append(messages, fmt.Sprintf("products[%d]: quantity must be at least 1", i))
		}
		if line.UnitPrice < 0 {
			messages = append(messages, fmt.Sprintf("products[%d]: product_rtp cannot be negative", i))
		}

		var count int64
		s.db.WithContext(ctx).Model(&product.Product{}).
			Where("id = ? AND is_active = ?", line.ProductID, true).
			Count(&count)
		if count == 0 {
			messages = append(messages, fmt.Sprintf("products[%d]: product %s not found", i, line.ProductID))
		}

		computedTotal += line.UnitPrice * int64(line.Quantity)
	}

	if len(payload.Products) > 0 && payload.TotalPrice != computedTotal {
		messages = append(messages, fmt.Sprintf("total_price mismatch: expected %d, got %d", computedTotal, payload.TotalPrice))
	}

	return messages
}
