package billing

import (
	"strings"

	"github.com/samber/lo"
)

// IsProductUsed reports whether any invoice row references productID. It is
// recomputed from the ledger on every call.
func IsProductUsed(productID Ref, invoices []Invoice) bool {
	if productID.IsZero() {
		return false
	}
	return lo.ContainsBy(invoices, func(inv Invoice) bool {
		return lo.ContainsBy(inv.Rows, func(row Row) bool {
			return row.ProductID == productID
		})
	})
}

// IsCategoryUsed reports whether any product belongs to categoryID.
func IsCategoryUsed(categoryID Ref, products []Product) bool {
	if categoryID.IsZero() {
		return false
	}
	return lo.ContainsBy(products, func(p Product) bool {
		return p.CategoryID == categoryID
	})
}

// ProductChange is a partial update. Nil fields are left untouched.
type ProductChange struct {
	Name       *string
	CategoryID *Ref
	Price      *float64
	HSN        *string
	GSTRate    *float64
	Image      *string
}

// Apply returns current with the change applied.
func (c ProductChange) Apply(current Product) Product {
	next := current
	if c.Name != nil {
		next.Name = strings.TrimSpace(*c.Name)
	}
	if c.CategoryID != nil {
		next.CategoryID = *c.CategoryID
	}
	if c.Price != nil {
		next.Price = *c.Price
	}
	if c.HSN != nil {
		next.HSN = strings.TrimSpace(*c.HSN)
		if next.HSN == "" {
			next.GSTRate = nil
		}
	}
	if c.GSTRate != nil {
		rate := *c.GSTRate
		next.GSTRate = &rate
	}
	if c.Image != nil {
		next.Image = *c.Image
	}
	return next
}

// CheckProductEdit rejects a change to name, category, price, HSN or GST rate of a
// used product. Fields set to their current value are not changes.
func CheckProductEdit(current Product, change ProductChange, used bool) error {
	if !used {
		return nil
	}
	next := change.Apply(current)
	var fields []string
	if next.Name != current.Name {
		fields = append(fields, "name")
	}
	if next.CategoryID != current.CategoryID {
		fields = append(fields, "category_id")
	}
	if next.Price != current.Price {
		fields = append(fields, "price")
	}
	if next.HSN != current.HSN {
		fields = append(fields, "hsn")
	}
	if next.Rate() != current.Rate() || (next.GSTRate == nil) != (current.GSTRate == nil) {
		fields = append(fields, "gst_rate")
	}
	if len(fields) > 0 {
		return &LockConflictError{Entity: "product", ID: current.ID, Fields: fields}
	}
	return nil
}

// CheckCategoryEdit rejects renaming a category that products refer to.
func CheckCategoryEdit(current Category, name string, used bool) error {
	if used && strings.TrimSpace(name) != current.Name {
		return &LockConflictError{Entity: "category", ID: current.ID, Fields: []string{"name"}}
	}
	return nil
}

// CheckProductDelete rejects deleting a product referenced by an invoice.
func CheckProductDelete(p Product, used bool) error {
	if used {
		return &LockConflictError{Entity: "product", ID: p.ID}
	}
	return nil
}

// CheckCategoryDelete rejects deleting a category that still has products.
func CheckCategoryDelete(c Category, used bool) error {
	if used {
		return &LockConflictError{Entity: "category", ID: c.ID}
	}
	return nil
}
