// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/product"
)

// Session carts live in Redis for 24 hours, keyed by the browser session id.
const ledgerTTL = 24 * time.Hour

// Service persists each browser session's Ledger in Redis and snapshots
// catalog data onto lines at add time.
type Service struct {
	redisClient *redis.Client
	products    *product.Service
	config      *config.Config
}

// NewService creates a new cart service
func NewService(redisClient *redis.Client, products *product.Service, cfg *config.Config) *Service {
	return &Service{
		redisClient: redisClient,
		products:    products,
		config:      cfg,
	}
}

// AddItemRequest represents an add to cart request
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// AdjustItemRequest represents a quantity adjustment request
type AdjustItemRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// LedgerResponse represents a cart with its running total
type LedgerResponse struct {
	SessionID string `json:"session_id"`
	Items     []Line `json:"items"`
	Total     int64  `json:"total"` // Cents; format only at presentation
	Added     *bool  `json:"added,omitempty"`
}

// Ledger loads the session's ledger from Redis, returning an empty ledger
// when none exists yet.
func (s *Service) Ledger(ctx context.Context, sessionID string) (*Ledger, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id required for cart access")
	}

	data, err := s.redisClient.Get(ctx, ledgerKey(sessionID)).Result()
	if err == redis.Nil {
		return &Ledger{UpdatedAt: time.Now().UTC()}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var ledger Ledger
	if err := json.Unmarshal([]byte(data), &ledger); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return &ledger, nil
}

// Save writes the session's ledger back to Redis with a refreshed TTL.
func (s *Service) Save(ctx context.Context, sessionID string, ledger *Ledger) error {
	data, err := json.Marshal(ledger)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.redisClient.Set(ctx, ledgerKey(sessionID), data, ledgerTTL).Err(); err != nil {
		return fmt.Errorf("failed to store cart: %w", err)
	}
	return nil
}

// AddItem validates the product against the catalog, snapshots its
// discount-adjusted price and stock limit, and appends a line. The returned
// response reports added=false when the product is already in the cart.
func (s *Service) AddItem(ctx context.Context, sessionID string, req *AddItemRequest) (*LedgerResponse, error) {
	prod, err := s.products.Get(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product not found or inactive")
	}

	limit := DefaultStockLimit
	if prod.TrackStock && prod.Stock > 0 {
		limit = prod.Stock
	}

	ledger, err := s.Ledger(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	_, added := ledger.Add(AddRequest{
		ProductID:  prod.ID,
		UnitPrice:  prod.EffectivePrice(),
		Quantity:   req.Quantity,
		StockLimit: limit,
	})

	if added {
		if err := s.Save(ctx, sessionID, ledger); err != nil {
			return nil, err
		}
	}

	resp := s.toResponse(sessionID, ledger)
	resp.Added = &added
	return resp, nil
}

// AdjustItem applies a signed quantity delta to a line.
func (s *Service) AdjustItem(ctx context.Context, sessionID, lineID string, delta int) (*LedgerResponse, error) {
	ledger, err := s.Ledger(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ledger.AdjustQuantity(lineID, delta)
	if err := s.Save(ctx, sessionID, ledger); err != nil {
		return nil, err
	}
	return s.toResponse(sessionID, ledger), nil
}

// RemoveItem deletes a line from the session's cart.
func (s *Service) RemoveItem(ctx context.Context, sessionID, lineID string) (*LedgerResponse, error) {
	ledger, err := s.Ledger(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ledger.Remove(lineID)
	if err := s.Save(ctx, sessionID, ledger); err != nil {
		return nil, err
	}
	return s.toResponse(sessionID, ledger), nil
}

// Clear removes the session's cart entirely.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := s.redisClient.Del(ctx, ledgerKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// Get returns the session's cart in response form.
func (s *Service) Get(ctx context.Context, sessionID string) (*LedgerResponse, error) {
	ledger, err := s.Ledger(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(sessionID, ledger), nil
}

func (s *Service) toResponse(sessionID string, ledger *Ledger) *LedgerResponse {
	return &LedgerResponse{
		SessionID: sessionID,
		Items:     ledger.Items(),
		Total:     ledger.Total(),
	}
}

func ledgerKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}
