package models

import (
	"time"

	"github.com/debasish790/backend-bill/billing"
)

// Invoice is append-only: there is no update or delete path.
type Invoice struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time    `json:"created_at"`
	VendorID       uint         `gorm:"not null;uniqueIndex:idx_vendor_invoice_number" json:"vendor_id"`
	InvoiceNumber  string       `gorm:"size:50;not null;uniqueIndex:idx_vendor_invoice_number" json:"invoice_number"`
	Date           time.Time    `gorm:"not null;index" json:"date"`
	CustomerName   string       `gorm:"size:255" json:"customer_name"`
	CustomerMobile string       `gorm:"size:20" json:"customer_mobile"`
	Subtotal       float64      `gorm:"not null" json:"subtotal"`
	CGSTAmount     float64      `gorm:"not null" json:"cgst_amount"`
	SGSTAmount     float64      `gorm:"not null" json:"sgst_amount"`
	TotalAmount    float64      `gorm:"not null" json:"total_amount"`
	Rows           []InvoiceRow `gorm:"foreignKey:InvoiceID" json:"rows"`
}

// TableName overrides the table name
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceRow stores only what was entered; tax figures are derived.
type InvoiceRow struct {
	ID         uint    `gorm:"primaryKey" json:"-"`
	InvoiceID  uint    `gorm:"not null;index" json:"-"`
	Position   int     `gorm:"not null;default:0" json:"-"`
	CategoryID uint    `gorm:"not null" json:"category_id"`
	ProductID  uint    `gorm:"not null;index" json:"product_id"`
	Quantity   float64 `gorm:"not null" json:"quantity"`
	Rate       float64 `gorm:"not null" json:"rate"`
}

// TableName overrides the table name
func (InvoiceRow) TableName() string {
	return "invoice_rows"
}

func (inv Invoice) ToBilling() billing.Invoice {
	rows := make([]billing.Row, 0, len(inv.Rows))
	for _, r := range inv.Rows {
		rows = append(rows, billing.Row{
			CategoryID: billing.Ref(r.CategoryID),
			ProductID:  billing.Ref(r.ProductID),
			Quantity:   billing.NumericFrom(r.Quantity),
			Rate:       billing.NumericFrom(r.Rate),
		})
	}
	return billing.Invoice{
		ID:             billing.Ref(inv.ID),
		VendorID:       billing.Ref(inv.VendorID),
		InvoiceNumber:  inv.InvoiceNumber,
		Date:           inv.Date,
		CustomerName:   inv.CustomerName,
		CustomerMobile: inv.CustomerMobile,
		Rows:           rows,
		TotalAmount:    inv.TotalAmount,
	}
}

// NewInvoice builds the record for a submitted invoice from its computed body.
func NewInvoice(vendorID uint, number string, date time.Time, customerName, customerMobile string, res billing.Result) Invoice {
	inv := Invoice{
		VendorID:       vendorID,
		InvoiceNumber:  number,
		Date:           date,
		CustomerName:   customerName,
		CustomerMobile: customerMobile,
		Subtotal:       res.Subtotal,
		CGSTAmount:     res.CGSTAmount,
		SGSTAmount:     res.SGSTAmount,
		TotalAmount:    res.TotalAmount,
	}
	for i, row := range res.Rows {
		inv.Rows = append(inv.Rows, InvoiceRow{
			Position:   i,
			CategoryID: uint(row.CategoryID),
			ProductID:  uint(row.ProductID),
			Quantity:   row.Qty,
			Rate:       row.UnitRate,
		})
	}
	return inv
}
