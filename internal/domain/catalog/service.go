// internal/domain/catalog/service.go
package catalog

import (
	"errors"
	"fmt"

	"github.com/your-org/grocery-backend/internal/config"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOutOfStock      = errors.New("insufficient stock")
)

// Service handles catalog business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ProductView is a product with its effective price resolved
type ProductView struct {
	Product
	CurrentPrice int64 `json:"current_price"`
	LowStock     bool  `json:"low_stock"`
}

// CreateProductRequest represents product creation data
type CreateProductRequest struct {
	Name      string      `json:"name" binding:"required"`
	Type      ProductType `json:"type" binding:"required"`
	Price     int64       `json:"price" binding:"required,min=1"`
	Stock     int         `json:"stock" binding:"min=0"`
	Threshold int         `json:"threshold" binding:"min=0"`
	ImageURL  string      `json:"image_url"`
}

// UpdateProductRequest represents product update data
type UpdateProductRequest struct {
	Name      *string      `json:"name"`
	Type      *ProductType `json:"type"`
	Price     *int64       `json:"price"`
	Stock     *int         `json:"stock"`
	Threshold *int         `json:"threshold"`
	ImageURL  *string      `json:"image_url"`
	IsActive  *bool        `json:"is_active"`
}

// ListActive returns all active products with effective prices
func (s *Service) ListActive(productType ProductType) ([]ProductView, error) {
	var products []Product
	query := s.db.Where("is_active = ?", true)
	if productType != "" {
		query = query.Where("type = ?", productType)
	}
	if err := query.Order("name ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return toViews(products), nil
}

// Get retrieves a single product by id
func (s *Service) Get(id uint) (*ProductView, error) {
	var p Product
	result := s.db.First(&p, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}
	view := toView(p)
	return &view, nil
}

// Create adds a new product (admin)
func (s *Service) Create(req *CreateProductRequest) (*ProductView, error) {
	if !req.Type.Valid() {
		return nil, fmt.Errorf("invalid product type: %s", req.Type)
	}

	p := Product{
		Name:      req.Name,
		Type:      req.Type,
		Price:     req.Price,
		Stock:     req.Stock,
		Threshold: req.Threshold,
		ImageURL:  req.ImageURL,
		IsActive:  true,
	}

	if err := s.db.Create(&p).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	view := toView(p)
	return &view, nil
}

// Update modifies product fields (admin)
func (s *Service) Update(id uint, req *UpdateProductRequest) (*ProductView, error) {
	var p Product
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Type != nil {
		if !req.Type.Valid() {
			return nil, fmt.Errorf("invalid product type: %s", *req.Type)
		}
		updates["type"] = *req.Type
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, fmt.Errorf("price must be positive")
		}
		updates["price"] = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, fmt.Errorf("stock cannot be negative")
		}
		updates["stock"] = *req.Stock
	}
	if req.Threshold != nil {
		updates["threshold"] = *req.Threshold
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

	return s.Get(id)
}

// Deactivate soft-deletes a product so historical orders keep their
// reference
func (s *Service) Deactivate(id uint) error {
	result := s.db.Model(&Product{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// AdjustStock applies a stock delta as a single guarded update. Negative
// deltas fail with ErrOutOfStock rather than driving stock below zero.
func (s *Service) AdjustStock(productID uint, delta int) error {
	return AdjustStockTx(s.db, productID, delta)
}

// AdjustStockTx is the transaction-scoped form of AdjustStock, used by
// order creation so the decrement commits or rolls back with the order.
func AdjustStockTx(tx *gorm.DB, productID uint, delta int) error {
	result := tx.Model(&Product{}).
		Where("id = ? AND stock + ? >= 0", productID, delta).
		UpdateColumn("stock", gorm.Expr("stock + ?", delta))

	if result.Error != nil {
		return fmt.Errorf("failed to adjust stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Either the product is missing or the delta would oversell
		var count int64
		if err := tx.Model(&Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to adjust stock: %w", err)
		}
		if count == 0 {
			return ErrProductNotFound
		}
		return ErrOutOfStock
	}
	return nil
}

// ListLowStock returns active products at or below their threshold (admin)
func (s *Service) ListLowStock() ([]ProductView, error) {
	var products []Product
	if err := s.db.Where("is_active = ? AND stock <= threshold", true).
		Order("stock ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list low stock products: %w", err)
	}
	return toViews(products), nil
}

func toView(p Product) ProductView {
	return ProductView{
		Product:      p,
		CurrentPrice: p.CurrentPrice(),
		LowStock:     p.IsLowStock(),
	}
}

func toViews(products []Product) []ProductView {
	views := make([]ProductView, len(products))
	for i, p := range products {
		views[i] = toView(p)
	}
	return views
}
