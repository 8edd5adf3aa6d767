// Package events carries change notifications from writers to connected clients.
// The set of event names is closed: every event type lives in this file.
package events

type Name string

const (
	InvoiceAddedName    Name = "invoice-added"
	ProductAddedName    Name = "product-added"
	ProductUpdatedName  Name = "product-updated"
	ProductDeletedName  Name = "product-deleted"
	CategoryAddedName   Name = "category-added"
	CategoryUpdatedName Name = "category-updated"
	CategoryDeletedName Name = "category-deleted"
	ProfileUpdatedName  Name = "profile-updated"
)

// Event is implemented only by the types below.
type Event interface {
	Type() Name
	sealed()
}

type InvoiceAdded struct {
	InvoiceID     uint    `json:"invoice_id"`
	InvoiceNumber string  `json:"invoice_number"`
	TotalAmount   float64 `json:"total_amount"`
}

func (InvoiceAdded) Type() Name { return InvoiceAddedName }
func (InvoiceAdded) sealed()    {}

type ProductAdded struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
}

func (ProductAdded) Type() Name { return ProductAddedName }
func (ProductAdded) sealed()    {}

type ProductUpdated struct {
	ProductID uint `json:"product_id"`
}

func (ProductUpdated) Type() Name { return ProductUpdatedName }
func (ProductUpdated) sealed()    {}

type ProductDeleted struct {
	ProductID uint `json:"product_id"`
}

func (ProductDeleted) Type() Name { return ProductDeletedName }
func (ProductDeleted) sealed()    {}

type CategoryAdded struct {
	CategoryID uint   `json:"category_id"`
	Name       string `json:"name"`
}

func (CategoryAdded) Type() Name { return CategoryAddedName }
func (CategoryAdded) sealed()    {}

type CategoryUpdated struct {
	CategoryID uint `json:"category_id"`
}

func (CategoryUpdated) Type() Name { return CategoryUpdatedName }
func (CategoryUpdated) sealed()    {}

type CategoryDeleted struct {
	CategoryID uint `json:"category_id"`
}

func (CategoryDeleted) Type() Name { return CategoryDeletedName }
func (CategoryDeleted) sealed()    {}

type ProfileUpdated struct {
	VendorID uint `json:"vendor_id"`
}

func (ProfileUpdated) Type() Name { return ProfileUpdatedName }
func (ProfileUpdated) sealed()    {}
