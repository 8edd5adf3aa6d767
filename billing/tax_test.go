package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rate(v float64) *float64 { return &v }

func TestCompute(t *testing.T) {
	catalog := []Product{
		{ID: 1, Name: "Shirt", CategoryID: 10, Price: 100, HSN: "610510", GSTRate: rate(18)},
		{ID: 2, Name: "Rice", CategoryID: 11, Price: 40},
		{ID: 3, Name: "Book", CategoryID: 12, Price: 250, HSN: "490110", GSTRate: rate(0)},
	}

	t.Run("18 percent splits evenly", func(t *testing.T) {
		res := Compute([]Row{{CategoryID: 10, ProductID: 1, Quantity: "2", Rate: "100"}}, catalog)

		require.Len(t, res.Rows, 1)
		row := res.Rows[0]
		assert.InDelta(t, 200.00, row.TaxableValue, 1e-9)
		assert.InDelta(t, 18.00, row.CGST, 1e-9)
		assert.InDelta(t, 18.00, row.SGST, 1e-9)
		assert.InDelta(t, 236.00, row.Total, 1e-9)
		assert.Equal(t, "610510", row.HSN)
		assert.Equal(t, "Shirt", row.ProductName)
		assert.Equal(t, float64(18), row.GSTRate)
	})

	t.Run("exempt and zero rated rows carry no tax", func(t *testing.T) {
		res := Compute([]Row{
			{ProductID: 2, Quantity: "3", Rate: "40"},
			{ProductID: 3, Quantity: "1", Rate: "250"},
		}, catalog)

		for _, row := range res.Rows {
			assert.Zero(t, row.CGST)
			assert.Zero(t, row.SGST)
			assert.Equal(t, row.TaxableValue, row.Total)
		}
		assert.Equal(t, 370.0, res.TotalAmount)
	})

	t.Run("unknown product defaults to zero rate and empty hsn", func(t *testing.T) {
		res := Compute([]Row{{ProductID: 99, Quantity: "1", Rate: "10"}}, catalog)

		assert.Equal(t, "", res.Rows[0].HSN)
		assert.Zero(t, res.Rows[0].GSTRate)
		assert.Equal(t, 10.0, res.Rows[0].Total)
	})

	t.Run("unparseable numbers count as zero", func(t *testing.T) {
		res := Compute([]Row{
			{ProductID: 1, Quantity: "", Rate: "100"},
			{ProductID: 1, Quantity: "abc", Rate: "100"},
			{ProductID: 1, Quantity: "2", Rate: "NaN"},
		}, catalog)

		require.Len(t, res.Rows, 3)
		for _, row := range res.Rows {
			assert.Zero(t, row.TaxableValue)
			assert.Zero(t, row.Total)
		}
		assert.Zero(t, res.TotalAmount)
	})

	t.Run("each half is computed from the taxable value", func(t *testing.T) {
		rows := []Row{{ProductID: 1, Quantity: "3", Rate: "33.33"}}
		res := Compute(rows, catalog)

		taxable := 3 * 33.33
		assert.Equal(t, taxable*(18.0/200), res.Rows[0].CGST)
		assert.Equal(t, res.Rows[0].CGST, res.Rows[0].SGST)
	})

	t.Run("aggregates match the sum of rows", func(t *testing.T) {
		res := Compute([]Row{
			{ProductID: 1, Quantity: "2", Rate: "100"},
			{ProductID: 2, Quantity: "5", Rate: "40"},
			{ProductID: 1, Quantity: "1.5", Rate: "19.99"},
		}, catalog)

		var sum float64
		for _, row := range res.Rows {
			sum += row.Total
		}
		assert.InDelta(t, sum, res.TotalAmount, 1e-9)
		assert.InDelta(t, res.Subtotal+res.CGSTAmount+res.SGSTAmount, res.TotalAmount, 1e-12)
		assert.Equal(t, res.CGSTAmount, res.SGSTAmount)
	})

	t.Run("empty input", func(t *testing.T) {
		res := Compute(nil, catalog)
		assert.Empty(t, res.Rows)
		assert.Zero(t, res.TotalAmount)
	})
}
