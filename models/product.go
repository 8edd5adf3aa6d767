package models

import (
	"time"

	"github.com/debasish790/backend-bill/billing"
	"gorm.io/gorm"
)

type Product struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	VendorID   uint           `gorm:"not null;index" json:"vendor_id"`
	CategoryID uint           `gorm:"not null;index;uniqueIndex:idx_product_category_name,where:deleted_at IS NULL" json:"category_id"`
	Name       string         `gorm:"size:255;not null;uniqueIndex:idx_product_category_name,expression:lower(name)" json:"product_name"`
	Price      float64        `gorm:"not null" json:"price"`
	HSN        string         `gorm:"size:8" json:"hsn,omitempty"`
	GSTRate    *float64       `json:"gst_rate,omitempty"`
	Image      string         `gorm:"size:500" json:"image,omitempty"`
}

// TableName overrides the table name
func (Product) TableName() string {
	return "products"
}

func (p Product) ToBilling() billing.Product {
	return billing.Product{
		ID:         billing.Ref(p.ID),
		Name:       p.Name,
		CategoryID: billing.Ref(p.CategoryID),
		Price:      p.Price,
		HSN:        p.HSN,
		GSTRate:    p.GSTRate,
		Image:      p.Image,
	}
}

// Assign copies the editable state of a billing product back onto the model.
func (p *Product) Assign(b billing.Product) {
	p.Name = b.Name
	p.CategoryID = uint(b.CategoryID)
	p.Price = b.Price
	p.HSN = b.HSN
	p.GSTRate = b.GSTRate
	p.Image = b.Image
}
