// internal/domain/product/service.go
package product

import (
	"fmt"
	"strings"

	"github.com/your-org/storefront/internal/config"
	"gorm.io/gorm"
)

// Service handles catalog reads
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateRequest represents new catalog item data
type CreateRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required,gt=0"`
	SalePrice   *int64 `json:"sale_price"`
	Stock       int    `json:"stock"`
	TrackStock  bool   `json:"track_stock"`
	ImageURL    string `json:"image_url"`
	IsActive    bool   `json:"is_active"`
}

// UpdateRequest represents a partial catalog item update
type UpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	SalePrice   *int64  `json:"sale_price"`
	Stock       *int    `json:"stock"`
	TrackStock  *bool   `json:"track_stock"`
	ImageURL    *string `json:"image_url"`
	IsActive    *bool   `json:"is_active"`
}

// ListRequest represents catalog list query parameters
type ListRequest struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
	Search string `form:"search"`
}

// ListResponse represents a page of catalog items
type ListResponse struct {
	Products []Product `json:"products"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}

// List returns active catalog items, newest first.
func (s *Service) List(req *ListRequest) (*ListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.Model(&Product{}).Where("is_active = ?", true)
	if req.Search != "" {
		// LOWER/LIKE instead of ILIKE so the match is not Postgres-only.
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(req.Search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	var products []Product
	offset := (req.Page - 1) * req.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	return &ListResponse{
		Products: products,
		Total:    total,
		Page:     req.Page,
		Limit:    req.Limit,
	}, nil
}

// Create adds a new catalog item.
func (s *Service) Create(req *CreateRequest) (*Product, error) {
	if req.Price <= 0 {
		return nil, fmt.Errorf("price must be positive")
	}

	p := Product{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		SalePrice:   req.SalePrice,
		Stock:       req.Stock,
		TrackStock:  req.TrackStock,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	}
	if err := s.db.Create(&p).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &p, nil
}

// Update applies a partial update to a catalog item. Unlike Get, inactive
// items are reachable here so they can be reactivated.
func (s *Service) Update(id string, req *UpdateRequest) (*Product, error) {
	var p Product
	if err := s.db.Where("id = ?", id).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, fmt.Errorf("price must be positive")
		}
		updates["price"] = *req.Price
	}
	if req.SalePrice != nil {
		updates["sale_price"] = *req.SalePrice
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.TrackStock != nil {
		updates["track_stock"] = *req.TrackStock
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(&p).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}
	return &p, nil
}

// Get returns a single active product by id.
func (s *Service) Get(id string) (*Product, error) {
	var p Product
	result := s.db.Where("id = ? AND is_active = ?", id, true).First(&p)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}
	return &p, nil
}
