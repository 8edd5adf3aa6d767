package billing

import (
	"sort"
	"time"
)

const notAvailable = "N/A"

// ReportLine is one invoice row of the sales report.
type ReportLine struct {
	InvoiceNumber string    `json:"invoice_number"`
	Date          time.Time `json:"date"`
	FinancialYear string    `json:"financial_year"`
	Category      string    `json:"category"`
	Product       string    `json:"product"`
	HSN           string    `json:"hsn"`
	GSTRate       float64   `json:"gst_rate"`
	Rate          float64   `json:"rate"`
	Quantity      float64   `json:"quantity"`
	Amount        float64   `json:"amount"`
	CGST          float64   `json:"cgst"`
	SGST          float64   `json:"sgst"`
	Total         float64   `json:"total"`
	InvoiceTotal  float64   `json:"invoice_total"`
}

type CategorySales struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type Report struct {
	FinancialYear string          `json:"financial_year"`
	Lines         []ReportLine    `json:"lines"`
	CategorySales []CategorySales `json:"category_sales"`
}

// BuildReport lists every row of every invoice, whatever its financial year, each
// line tagged with the year it falls in. Only CategorySales is restricted to fy.
// Rows are recomputed against the catalog, which is safe because products
// referenced by invoices are locked.
func BuildReport(invoices []Invoice, catalog []Product, categories []Category, fy string) Report {
	categoryNames := make(map[Ref]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	rep := Report{FinancialYear: fy, Lines: []ReportLine{}, CategorySales: []CategorySales{}}
	sales := map[string]float64{}
	for _, inv := range invoices {
		invFY := FinancialYear(inv.Date)
		computed := Compute(inv.Rows, catalog)
		for _, row := range computed.Rows {
			line := ReportLine{
				InvoiceNumber: inv.InvoiceNumber,
				Date:          inv.Date,
				FinancialYear: invFY,
				Category:      orNotAvailable(categoryNames[row.CategoryID]),
				Product:       orNotAvailable(row.ProductName),
				HSN:           orNotAvailable(row.HSN),
				GSTRate:       row.GSTRate,
				Rate:          row.UnitRate,
				Quantity:      row.Qty,
				Amount:        row.TaxableValue,
				CGST:          row.CGST,
				SGST:          row.SGST,
				Total:         row.Total,
				InvoiceTotal:  inv.TotalAmount,
			}
			rep.Lines = append(rep.Lines, line)
			if invFY == fy {
				sales[line.Category] += line.Total
			}
		}
	}

	for name, total := range sales {
		if total > 0 {
			rep.CategorySales = append(rep.CategorySales, CategorySales{Category: name, Total: total})
		}
	}
	sort.Slice(rep.CategorySales, func(i, j int) bool {
		return rep.CategorySales[i].Category < rep.CategorySales[j].Category
	})
	return rep
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
