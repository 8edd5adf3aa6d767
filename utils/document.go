package utils

import (
	"strings"
	"time"

	"github.com/debasish790/backend-bill/billing"
	"github.com/shopspring/decimal"
)

// Currency is printed before amounts. Core PDF fonts and thermal printers have
// no rupee glyph.
const Currency = "Rs."

const walkInCustomer = "Walk-in"

// InvoiceDocument is everything printed on an invoice.
type InvoiceDocument struct {
	Vendor  billing.VendorProfile
	Invoice billing.Invoice
	Summary billing.Result
}

// Money formats an amount with two decimals, rounding half away from zero.
func Money(v float64) string {
	return Currency + decimal.NewFromFloat(v).StringFixed(2)
}

// Percent drops trailing zeros: 18 -> "18", 2.5 -> "2.5".
func Percent(v float64) string {
	return decimal.NewFromFloat(v).String() + "%"
}

func (d InvoiceDocument) customer() string {
	if strings.TrimSpace(d.Invoice.CustomerName) == "" {
		return walkInCustomer
	}
	return d.Invoice.CustomerName
}

func (d InvoiceDocument) date() string {
	return d.Invoice.Date.Format("02/01/2006 15:04")
}

func (d InvoiceDocument) storeName() string {
	if d.Vendor.StoreName == "" {
		return "Invoice"
	}
	return d.Vendor.StoreName
}

func (d InvoiceDocument) productName(row billing.EnrichedRow) string {
	if row.ProductName == "" {
		return "Product " + row.ProductID.String()
	}
	return row.ProductName
}

// quantity prints whole quantities without decimals.
func quantity(v float64) string {
	return decimal.NewFromFloat(v).String()
}

// FileName is the download name for an invoice document.
func FileName(number, ext string) string {
	safe := strings.NewReplacer("/", "-", " ", "_").Replace(number)
	if safe == "" {
		safe = time.Now().Format("20060102150405")
	}
	return "invoice-" + safe + "." + ext
}
