package models

import (
	"time"

	"github.com/debasish790/backend-bill/billing"
	"gorm.io/gorm"
)

// Category names are unique per vendor, ignoring case. Deleted rows do not count.
type Category struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	VendorID  uint           `gorm:"not null;index;uniqueIndex:idx_category_vendor_name,where:deleted_at IS NULL" json:"vendor_id"`
	Name      string         `gorm:"size:255;not null;uniqueIndex:idx_category_vendor_name,expression:lower(name)" json:"category_name"`
}

// TableName overrides the table name
func (Category) TableName() string {
	return "categories"
}

func (c Category) ToBilling() billing.Category {
	return billing.Category{ID: billing.Ref(c.ID), Name: c.Name}
}
