package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const receiptWidth = 32

// ReceiptPrinter writes a plain-text receipt for 58mm thermal printers.
type ReceiptPrinter struct {
	Width int
}

func NewReceiptPrinter() *ReceiptPrinter {
	return &ReceiptPrinter{Width: receiptWidth}
}

func (p *ReceiptPrinter) PrintReceipt(w io.Writer, doc InvoiceDocument) error {
	width := p.Width
	if width <= 0 {
		width = receiptWidth
	}
	rule := strings.Repeat("-", width)
	bw := bufio.NewWriter(w)

	lines := []string{center(doc.storeName(), width)}
	if doc.Vendor.Description != "" {
		lines = append(lines, center(doc.Vendor.Description, width))
	}
	if doc.Vendor.GSTIN != "" {
		lines = append(lines, center("GSTIN: "+doc.Vendor.GSTIN, width))
	}
	lines = append(lines,
		rule,
		"Invoice#: "+doc.Invoice.InvoiceNumber,
		"Date: "+doc.date(),
		"Customer: "+doc.customer(),
		"Mobile: "+doc.Invoice.CustomerMobile,
		rule,
	)
	for _, it := range doc.Summary.Rows {
		lines = append(lines,
			doc.productName(it),
			"HSN: "+it.HSN,
			fmt.Sprintf("Qty: %s x %s", quantity(it.Qty), Money(it.UnitRate)),
			"Taxable: "+Money(it.TaxableValue),
			fmt.Sprintf("GST %s: %s", Percent(it.GSTRate), Money(it.CGST+it.SGST)),
			"Total: "+Money(it.Total),
			"",
		)
	}
	lines = append(lines,
		rule,
		columns("Subtotal", Money(doc.Summary.Subtotal), width),
		columns("CGST", Money(doc.Summary.CGSTAmount), width),
		columns("SGST", Money(doc.Summary.SGSTAmount), width),
		rule,
		columns("GRAND TOTAL", Money(doc.Summary.TotalAmount), width),
		"",
		center("Thank you for your purchase!", width),
	)

	for _, l := range lines {
		if _, err := bw.WriteString(l + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", (width-n)/2) + s
}

func columns(left, right string, width int) string {
	gap := width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
