// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Role identifies what a user is allowed to do
type Role string

const (
	RoleCustomer Role = "customer"
	RoleCarrier  Role = "carrier"
	RoleAdmin    Role = "admin"
)

// Valid reports whether the role is one of the known values
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleCarrier, RoleAdmin:
		return true
	}
	return false
}

// User represents the user entity
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Email     string `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password  string `gorm:"not null;size:255" json:"-"` // Don't return in JSON
	FirstName string `gorm:"size:100" json:"first_name"`
	LastName  string `gorm:"size:100" json:"last_name"`
	Phone     string `gorm:"size:20" json:"phone"`
	Role      Role   `gorm:"not null;size:20;default:'customer';index" json:"role"`

	// Delivery location; snapshotted onto orders at checkout time
	Address      string `gorm:"size:500" json:"address"`
	Neighborhood string `gorm:"size:100;index" json:"neighborhood"`

	IsActive    bool           `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook to handle business logic before user creation
func (u *User) BeforeCreate(tx *gorm.DB) error {
	// Email should be lowercase
	u.Email = strings.ToLower(u.Email)
	if u.Role == "" {
		u.Role = RoleCustomer
	}
	return nil
}

// GetFullName returns the user's full name
func (u *User) GetFullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsCarrier reports whether the user delivers orders
func (u *User) IsCarrier() bool {
	return u.Role == RoleCarrier
}

// IsAdmin reports whether the user manages the store
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
