package handlers

import (
	"fmt"

	"github.com/debasish790/backend-bill/billing"
	"github.com/debasish790/backend-bill/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Snapshot loaders. Every query is scoped to one vendor.

func loadCatalog(db *gorm.DB, vendorID uint) ([]billing.Product, error) {
	var products []models.Product
	if err := db.Where("vendor_id = ?", vendorID).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	return lo.Map(products, func(p models.Product, _ int) billing.Product { return p.ToBilling() }), nil
}

func loadCategories(db *gorm.DB, vendorID uint) ([]billing.Category, error) {
	var categories []models.Category
	if err := db.Where("vendor_id = ?", vendorID).Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	return lo.Map(categories, func(c models.Category, _ int) billing.Category { return c.ToBilling() }), nil
}

func preloadRows(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}

// loadInvoices returns the vendor's ledger, newest first.
func loadInvoices(db *gorm.DB, vendorID uint) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := db.Preload("Rows", preloadRows).
		Where("vendor_id = ?", vendorID).
		Order("date DESC, id DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}
	return invoices, nil
}

func loadInvoice(db *gorm.DB, vendorID, id uint) (models.Invoice, error) {
	var inv models.Invoice
	err := db.Preload("Rows", preloadRows).
		Where("vendor_id = ?", vendorID).
		First(&inv, id).Error
	return inv, err
}

func toLedger(invoices []models.Invoice) []billing.Invoice {
	return lo.Map(invoices, func(inv models.Invoice, _ int) billing.Invoice { return inv.ToBilling() })
}

// loadLedger loads the vendor's invoices as billing values.
func loadLedger(db *gorm.DB, vendorID uint) ([]billing.Invoice, error) {
	invoices, err := loadInvoices(db, vendorID)
	if err != nil {
		return nil, err
	}
	return toLedger(invoices), nil
}

func loadVendor(db *gorm.DB, vendorID uint) (models.User, error) {
	var user models.User
	err := db.First(&user, vendorID).Error
	return user, err
}
