// Package billing holds the GST invoice rules: line-item tax computation, per
// financial year serial allocation and the usage locks on catalog entries.
//
// Everything here is a pure function of in-memory snapshots. Callers load the
// vendor's products, categories and invoices, call into this package, and persist
// whatever it decides.
package billing

import "time"

// Product is a catalog entry as seen by the tax and usage rules.
// HSN and GSTRate are either both set or both empty.
type Product struct {
	ID         Ref
	Name       string
	CategoryID Ref
	Price      float64
	HSN        string
	GSTRate    *float64
	Image      string
}

// Rate returns the nominal GST percentage, 0 for exempt products.
func (p Product) Rate() float64 {
	if p.GSTRate == nil {
		return 0
	}
	return *p.GSTRate
}

type Category struct {
	ID   Ref
	Name string
}

// Row is one invoice line as entered. Quantity and Rate keep their raw text.
type Row struct {
	CategoryID Ref     `json:"category_id"`
	ProductID  Ref     `json:"product_id"`
	Quantity   Numeric `json:"quantity"`
	Rate       Numeric `json:"rate"`
}

// Invoice is a ledger entry. Invoices are never mutated once created.
type Invoice struct {
	ID             Ref
	VendorID       Ref
	InvoiceNumber  string
	Date           time.Time
	CustomerName   string
	CustomerMobile string
	Rows           []Row
	TotalAmount    float64
}

// VendorProfile is the issuing store printed on documents.
type VendorProfile struct {
	StoreName   string
	Address     string
	Contact     string
	GSTIN       string
	Description string
	Prefix      string
}
