package utils

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/debasish790/backend-bill/billing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("paper jam") }

func sampleDocument() InvoiceDocument {
	gst := 18.0
	catalog := []billing.Product{{ID: 1, Name: "Rice", CategoryID: 1, Price: 50, HSN: "100630", GSTRate: &gst}}
	rows := []billing.Row{{CategoryID: 1, ProductID: 1, Quantity: "2", Rate: "50"}}
	return InvoiceDocument{
		Vendor: billing.VendorProfile{StoreName: "Apna Store", GSTIN: "29ABCDE1234F1Z5", Description: "Groceries", Prefix: "AS"},
		Invoice: billing.Invoice{
			InvoiceNumber: "AS/2024-2025/050",
			Date:          time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC),
			Rows:          rows,
		},
		Summary: billing.Compute(rows, catalog),
	}
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "Rs.118.00", Money(118))
	assert.Equal(t, "Rs.0.13", Money(0.125))
	assert.Equal(t, "Rs.9.00", Money(9))
	assert.Equal(t, "18%", Percent(18))
	assert.Equal(t, "2.5%", Percent(2.5))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "invoice-AS-2024-2025-050.pdf", FileName("AS/2024-2025/050", "pdf"))
}

func TestRenderInvoice(t *testing.T) {
	renderer := NewDocumentRenderer()

	data, err := renderer.RenderInvoice(sampleDocument())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestPrintReceipt(t *testing.T) {
	var buf bytes.Buffer
	err := NewReceiptPrinter().PrintReceipt(&buf, sampleDocument())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Invoice#: AS/2024-2025/050")
	assert.Contains(t, out, "Customer: Walk-in")
	assert.Contains(t, out, "Qty: 2 x Rs.50.00")
	assert.Contains(t, out, "GST 18%: Rs.18.00")
	assert.Contains(t, out, "Total: Rs.118.00")

	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "GRAND TOTAL") {
			assert.Len(t, line, receiptWidth)
			assert.True(t, strings.HasSuffix(line, "Rs.118.00"))
		}
	}
}

func TestPrintReceipt_WriteError(t *testing.T) {
	err := NewReceiptPrinter().PrintReceipt(failingWriter{}, sampleDocument())
	assert.Error(t, err)
}
