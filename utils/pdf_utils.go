package utils

import (
	"fmt"

	"github.com/debasish790/backend-bill/billing"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/linestyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type DocumentRendererInterface interface {
	RenderInvoice(doc InvoiceDocument) ([]byte, error)
}

// PDFRenderer lays invoices out on narrow receipt paper.
type PDFRenderer struct {
	widthMM  float64
	heightMM float64
}

func NewDocumentRenderer() DocumentRendererInterface {
	return &PDFRenderer{widthMM: 100, heightMM: 250}
}

func (r *PDFRenderer) RenderInvoice(doc InvoiceDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithDimensions(r.widthMM, r.heightMM).
		WithLeftMargin(5).
		WithRightMargin(5).
		WithTopMargin(5).
		Build()

	m := maroto.New(cfg)
	m.AddRows(header(doc)...)
	m.AddRows(divider())
	m.AddRows(details(doc)...)
	m.AddRows(divider())
	for _, r := range doc.Summary.Rows {
		m.AddRows(item(doc, r)...)
	}
	m.AddRows(divider())
	m.AddRows(totals(doc.Summary)...)
	m.AddRows(divider())
	m.AddRows(text.NewRow(6, "Thank you for your business!", props.Text{Size: 8, Align: align.Center}))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invoice pdf: %w", err)
	}
	return out.GetBytes(), nil
}

func divider() core.Row {
	return line.NewRow(3, props.Line{Style: linestyle.Dashed, Thickness: 0.2})
}

func header(doc InvoiceDocument) []core.Row {
	rows := []core.Row{
		text.NewRow(8, doc.storeName(), props.Text{Size: 13, Style: fontstyle.Bold, Align: align.Center}),
	}
	for _, s := range []string{doc.Vendor.Description, doc.Vendor.Address, doc.Vendor.Contact} {
		if s != "" {
			rows = append(rows, text.NewRow(4, s, props.Text{Size: 7, Align: align.Center}))
		}
	}
	if doc.Vendor.GSTIN != "" {
		rows = append(rows, text.NewRow(4, "GSTIN: "+doc.Vendor.GSTIN, props.Text{Size: 7, Align: align.Center}))
	}
	return rows
}

func details(doc InvoiceDocument) []core.Row {
	style := props.Text{Size: 8}
	return []core.Row{
		text.NewRow(4, "INV#: "+doc.Invoice.InvoiceNumber, props.Text{Size: 8, Style: fontstyle.Bold}),
		text.NewRow(4, "DATE: "+doc.date(), style),
		text.NewRow(4, "CUSTOMER: "+doc.customer(), style),
		text.NewRow(4, "MOBILE: "+doc.Invoice.CustomerMobile, style),
	}
}

func item(doc InvoiceDocument, it billing.EnrichedRow) []core.Row {
	small := props.Text{Size: 7}
	right := props.Text{Size: 7, Align: align.Right}
	return []core.Row{
		text.NewRow(5, doc.productName(it), props.Text{Size: 8, Style: fontstyle.Bold}),
		text.NewRow(4, "HSN: "+it.HSN, small),
		pair(4, fmt.Sprintf("Qty: %sx%s", quantity(it.Qty), Money(it.UnitRate)), Money(it.TaxableValue), small, right),
		pair(4, fmt.Sprintf("GST %s: %s", Percent(it.GSTRate), Money(it.CGST+it.SGST)), "Total: "+Money(it.Total), small, right),
	}
}

func totals(sum billing.Result) []core.Row {
	left := props.Text{Size: 8}
	right := props.Text{Size: 8, Align: align.Right}
	boldLeft := props.Text{Size: 9, Style: fontstyle.Bold}
	boldRight := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	return []core.Row{
		pair(4, "Subtotal:", Money(sum.Subtotal), left, right),
		pair(4, "CGST:", Money(sum.CGSTAmount), left, right),
		pair(4, "SGST:", Money(sum.SGSTAmount), left, right),
		pair(6, "GRAND TOTAL:", Money(sum.TotalAmount), boldLeft, boldRight),
	}
}

func pair(height float64, label, value string, labelProps, valueProps props.Text) core.Row {
	return row.New(height).Add(
		text.NewCol(6, label, labelProps),
		text.NewCol(6, value, valueProps),
	)
}
