package billing

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

var hsnPattern = regexp.MustCompile(`^\d{6,8}$`)

// ValidateRows checks the raw rows of an invoice about to be submitted. It looks
// at the text the client sent, so a quantity that Compute would read as 0 fails
// here instead of producing a zero line.
func ValidateRows(rows []Row) error {
	if len(rows) == 0 {
		return invalid("rows", ErrNoRows)
	}
	for i, row := range rows {
		field := func(name string) string { return fmt.Sprintf("rows[%d].%s", i, name) }
		switch {
		case row.CategoryID.IsZero():
			return invalid(field("category_id"), ErrRowIncomplete)
		case row.ProductID.IsZero():
			return invalid(field("product_id"), ErrRowIncomplete)
		case row.Quantity.IsBlank():
			return invalid(field("quantity"), ErrRowIncomplete)
		case row.Rate.IsBlank():
			return invalid(field("rate"), ErrRowIncomplete)
		case !row.Quantity.Positive():
			return &ValidationError{Err: ErrInvalidQuantity, Field: field("quantity"), Details: string(row.Quantity)}
		case !row.Rate.Positive():
			return &ValidationError{Err: ErrInvalidRate, Field: field("rate"), Details: string(row.Rate)}
		}
	}
	return nil
}

// ValidateTotals rejects a computed invoice whose figures are not finite. Each
// factor can be finite while their product overflows, and such an amount could
// neither be encoded nor printed once stored.
func ValidateTotals(res Result) error {
	for i, row := range res.Rows {
		if !finite(row.Total) {
			return &ValidationError{Err: ErrAmountOutOfRange, Field: fmt.Sprintf("rows[%d].quantity", i)}
		}
	}
	if !finite(res.TotalAmount) {
		return invalid("rows", ErrAmountOutOfRange)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidateRowProducts checks that every row points at a catalog product of the
// row's category.
func ValidateRowProducts(rows []Row, catalog []Product) error {
	byID := make(map[Ref]Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}
	for i, row := range rows {
		p, ok := byID[row.ProductID]
		if !ok || p.CategoryID != row.CategoryID {
			return &ValidationError{
				Err:     ErrUnknownProduct,
				Field:   fmt.Sprintf("rows[%d].product_id", i),
				Details: row.ProductID.String(),
			}
		}
	}
	return nil
}

// ValidateTaxCode enforces the HSN format, the GST range and that the two are
// given together.
func ValidateTaxCode(hsn string, gstRate *float64) error {
	hsn = strings.TrimSpace(hsn)
	if hsn == "" && gstRate == nil {
		return nil
	}
	if hsn == "" || gstRate == nil {
		return invalid("hsn", ErrTaxCodeIncomplete)
	}
	if !hsnPattern.MatchString(hsn) {
		return &ValidationError{Err: ErrInvalidHSN, Field: "hsn", Details: hsn}
	}
	if *gstRate < 0 || *gstRate > 100 {
		return &ValidationError{Err: ErrInvalidGSTRate, Field: "gst_rate", Details: fmt.Sprint(*gstRate)}
	}
	return nil
}

// ValidateProduct checks a product about to be created or updated.
func ValidateProduct(p Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return invalid("name", ErrRowIncomplete)
	}
	if p.CategoryID.IsZero() {
		return invalid("category_id", ErrRowIncomplete)
	}
	if p.Price <= 0 {
		return invalid("price", ErrInvalidRate)
	}
	return ValidateTaxCode(p.HSN, p.GSTRate)
}

// ValidatePrefix checks an invoice-number prefix. The prefix becomes the first
// segment of the number, so it cannot contain the separator.
func ValidatePrefix(prefix string) error {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" || utf8.RuneCountInString(prefix) > 4 || strings.Contains(prefix, "/") {
		return &ValidationError{Err: ErrInvalidPrefix, Field: "prefix", Details: prefix}
	}
	return nil
}
