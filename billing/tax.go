package billing

// EnrichedRow is a Row with its derived tax figures.
type EnrichedRow struct {
	Row
	ProductName  string  `json:"product_name"`
	HSN          string  `json:"hsn"`
	GSTRate      float64 `json:"gst_rate"`
	Qty          float64 `json:"qty"`
	UnitRate     float64 `json:"unit_rate"`
	TaxableValue float64 `json:"taxable_value"`
	CGST         float64 `json:"cgst"`
	SGST         float64 `json:"sgst"`
	Total        float64 `json:"total"`
}

// Result is the computed invoice body.
type Result struct {
	Rows        []EnrichedRow `json:"rows"`
	Subtotal    float64       `json:"subtotal"`
	CGSTAmount  float64       `json:"cgst_amount"`
	SGSTAmount  float64       `json:"sgst_amount"`
	TotalAmount float64       `json:"total_amount"`
}

// Compute derives taxable value, CGST, SGST and totals for every row.
//
// A row whose product is not in the catalog is taxed at 0% with an empty HSN.
// Unparseable quantities and rates count as 0. Each GST half is applied to the
// taxable value on its own (taxable * rate/200), and the sums accumulate in row
// order.
func Compute(rows []Row, catalog []Product) Result {
	byID := make(map[Ref]Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	res := Result{Rows: make([]EnrichedRow, 0, len(rows))}
	for _, row := range rows {
		product, ok := byID[row.ProductID]
		var gstRate float64
		if ok {
			gstRate = product.Rate()
		}

		qty := row.Quantity.Float()
		rate := row.Rate.Float()
		taxable := qty * rate
		cgst := taxable * (gstRate / 200)
		sgst := taxable * (gstRate / 200)

		res.Subtotal += taxable
		res.CGSTAmount += cgst
		res.SGSTAmount += sgst

		res.Rows = append(res.Rows, EnrichedRow{
			Row:          row,
			ProductName:  product.Name,
			HSN:          product.HSN,
			GSTRate:      gstRate,
			Qty:          qty,
			UnitRate:     rate,
			TaxableValue: taxable,
			CGST:         cgst,
			SGST:         sgst,
			Total:        taxable + cgst + sgst,
		})
	}
	res.TotalAmount = res.Subtotal + res.CGSTAmount + res.SGSTAmount
	return res
}
