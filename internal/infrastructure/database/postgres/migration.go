// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"
	"time"

	"github.com/your-org/grocery-backend/internal/config"
	"github.com/your-org/grocery-backend/internal/domain/catalog"
	"github.com/your-org/grocery-backend/internal/domain/messaging"
	"github.com/your-org/grocery-backend/internal/domain/order"
	"github.com/your-org/grocery-backend/internal/domain/pricing"
	"github.com/your-org/grocery-backend/internal/domain/settings"
	"github.com/your-org/grocery-backend/internal/domain/user"
	"github.com/your-org/grocery-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// Migration handles database schema management
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{db: db}
}

// RunAutoMigrations runs gorm auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database migrations...")

	models := []interface{}{
		&user.User{},
		&catalog.Product{},
		&pricing.Coupon{},
		&pricing.LoyaltySetting{},
		&order.Order{},
		&order.OrderItem{},
		&messaging.Message{},
		&settings.SystemSetting{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	log.Println("✅ Database migrations completed")
	return nil
}

// CreateIndexes creates indexes the auto-migration does not cover. The
// partial index on pending unassigned orders keeps the carrier pool query
// fast as order history grows.
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_orders_pool
		 ON orders (priority_level DESC, order_time ASC)
		 WHERE status = 'pending' AND carrier_id IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_orders_carrier_status
		 ON orders (carrier_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_customer_status
		 ON orders (customer_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_receiver_unread
		 ON messages (receiver_id) WHERE is_read = false`,
	}

	for _, ddl := range indexes {
		if err := m.db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	log.Println("✅ Database indexes created")
	return nil
}

// SeedInitialData seeds development data: an admin account, a few
// products, a coupon and a loyalty configuration. Idempotent; skips
// anything that already exists.
func (m *Migration) SeedInitialData(cfg *config.Config) error {
	log.Println("🌱 Seeding initial data...")

	passwords := auth.NewPasswordManager(cfg)

	var adminCount int64
	if err := m.db.Model(&user.User{}).Where("role = ?", user.RoleAdmin).Count(&adminCount).Error; err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	}
	if adminCount == 0 {
		hash, err := passwords.HashPassword("admin1234")
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		admin := &user.User{
			Email:     "admin@grocery.local",
			Password:  hash,
			FirstName: "Store",
			LastName:  "Owner",
			Role:      user.RoleAdmin,
			IsActive:  true,
		}
		if err := m.db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to seed admin account: %w", err)
		}
	}

	var productCount int64
	if err := m.db.Model(&catalog.Product{}).Count(&productCount).Error; err != nil {
		return fmt.Errorf("failed to check products: %w", err)
	}
	if productCount == 0 {
		products := []catalog.Product{
			{Name: "Tomato", Type: catalog.ProductTypeVegetable, Price: 450, Stock: 120, Threshold: 20, IsActive: true},
			{Name: "Cucumber", Type: catalog.ProductTypeVegetable, Price: 300, Stock: 80, Threshold: 15, IsActive: true},
			{Name: "Potato", Type: catalog.ProductTypeVegetable, Price: 250, Stock: 200, Threshold: 30, IsActive: true},
			{Name: "Apple", Type: catalog.ProductTypeFruit, Price: 600, Stock: 90, Threshold: 20, IsActive: true},
			{Name: "Banana", Type: catalog.ProductTypeFruit, Price: 550, Stock: 15, Threshold: 20, IsActive: true},
			{Name: "Orange", Type: catalog.ProductTypeFruit, Price: 500, Stock: 60, Threshold: 10, IsActive: true},
		}
		if err := m.db.Create(&products).Error; err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}
	}

	var couponCount int64
	if err := m.db.Model(&pricing.Coupon{}).Count(&couponCount).Error; err != nil {
		return fmt.Errorf("failed to check coupons: %w", err)
	}
	if couponCount == 0 {
		coupon := &pricing.Coupon{
			Code:               "WELCOME10",
			DiscountPercentage: 10,
			MinPurchaseAmount:  10000,
			ValidUntil:         time.Now().AddDate(1, 0, 0),
			IsActive:           true,
		}
		if err := m.db.Create(coupon).Error; err != nil {
			return fmt.Errorf("failed to seed coupon: %w", err)
		}
	}

	var loyaltyCount int64
	if err := m.db.Model(&pricing.LoyaltySetting{}).Count(&loyaltyCount).Error; err != nil {
		return fmt.Errorf("failed to check loyalty settings: %w", err)
	}
	if loyaltyCount == 0 {
		minOrders := 5
		setting := &pricing.LoyaltySetting{
			MinOrders:          &minOrders,
			DiscountPercentage: 10,
			IsActive:           true,
		}
		if err := m.db.Create(setting).Error; err != nil {
			return fmt.Errorf("failed to seed loyalty settings: %w", err)
		}
	}

	log.Println("✅ Initial data seeded")
	return nil
}

// GetTableInfo logs row counts for the main tables
func (m *Migration) GetTableInfo() {
	tables := []string{"users", "products", "orders", "order_items", "coupons", "loyalty_settings", "messages", "system_settings"}
	for _, table := range tables {
		var count int64
		if err := m.db.Table(table).Count(&count).Error; err != nil {
			continue
		}
		log.Printf("📋 %s: %d rows", table, count)
	}
}
