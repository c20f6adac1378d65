// internal/domain/order/entity.go
package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order represents a submitted order. Contact fields are copied from the
// reconciled payload at submission time and are not re-resolved afterwards.
type Order struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	OrderNumber string         `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	UserID      string         `gorm:"not null;index;size:36" json:"user_id"`
	Address     string         `gorm:"not null;size:500" json:"user_adress"`
	Phone       string         `gorm:"not null;size:20" json:"user_phone"`
	Notes       string         `gorm:"type:text" json:"notes"`
	TotalPrice  int64          `gorm:"not null" json:"total_price"` // In cents
	Status      OrderStatus    `gorm:"not null;default:'pending'" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem represents one line of an order
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	ProductID string    `gorm:"not null;index;size:36" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice int64     `gorm:"not null" json:"product_rtp"`  // Price per unit in cents
	LineTotal int64     `gorm:"not null" json:"line_total"`   // Quantity * UnitPrice
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }

// GenerateOrderNumber builds a unique, human-quotable order number.
// Format: ORD-YYYYMMDD-XXXXXXXX
func GenerateOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}

// CanBeCancelled checks if the order can still be cancelled
func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusPaid
}

// FormattedTotal returns the total in display currency.
func (o *Order) FormattedTotal() float64 {
	return float64(o.TotalPrice) / 100
}
