package models

import (
	"time"

	"github.com/debasish790/backend-bill/billing"
	"gorm.io/gorm"
)

const (
	RoleVendor = "vendor"
	RoleAdmin  = "admin"
)

// User is a vendor account and the store profile printed on its invoices.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	Role         string         `gorm:"size:20;default:'vendor'" json:"role"` // vendor, admin
	IsActive     bool           `gorm:"default:true" json:"is_active"`

	StoreName    string `gorm:"size:255;not null" json:"store_name"`
	StoreAddress string `gorm:"size:500" json:"store_address"`
	Contact      string `gorm:"size:20" json:"contact"`
	GSTIN        string `gorm:"size:15;not null" json:"gstin"`
	Description  string `gorm:"type:text" json:"desc"`
	Location     string `gorm:"size:100" json:"location"`
	Prefix       string `gorm:"size:4;not null" json:"prefix"`
	Logo         string `gorm:"size:500" json:"logo"`

	// SerialInitialized is set by the first successful invoice submission and
	// never cleared.
	SerialInitialized bool `gorm:"default:false" json:"serial_initialized"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// Profile returns the store details used on documents.
func (u User) Profile(defaultPrefix string) billing.VendorProfile {
	prefix := u.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	return billing.VendorProfile{
		StoreName:   u.StoreName,
		Address:     u.StoreAddress,
		Contact:     u.Contact,
		GSTIN:       u.GSTIN,
		Description: u.Description,
		Prefix:      prefix,
	}
}
