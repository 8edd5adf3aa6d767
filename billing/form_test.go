package billing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce(t *testing.T) {
	catalog := []Product{
		{ID: 5, Name: "Shirt", CategoryID: 1, Price: 499.5, HSN: "610510", GSTRate: rate(12)},
	}

	form := NewInvoiceForm()
	step := func(action FormAction) {
		t.Helper()
		next, err := Reduce(form, action, catalog)
		require.NoError(t, err)
		form = next
	}

	step(FormAction{Type: ActionSelectCategory, Row: 0, Value: "1"})
	step(FormAction{Type: ActionSelectProduct, Row: 0, Value: "5"})
	assert.Equal(t, Ref(5), form.Rows[0].ProductID)
	assert.Equal(t, Numeric("499.5"), form.Rows[0].Rate)

	step(FormAction{Type: ActionSetQuantity, Row: 0, Value: "2"})
	step(FormAction{Type: ActionAddRow})
	require.Len(t, form.Rows, 2)

	step(FormAction{Type: ActionSetCustomerName, Value: "Asha"})
	assert.Equal(t, "Asha", form.CustomerName)

	res := Compute(form.Rows, catalog)
	assert.InDelta(t, 999.0, res.Subtotal, 1e-9)

	// Changing the category discards the chosen product and its rate.
	step(FormAction{Type: ActionSelectCategory, Row: 0, Value: "2"})
	assert.True(t, form.Rows[0].ProductID.IsZero())
	assert.Equal(t, Numeric(""), form.Rows[0].Rate)
	assert.Equal(t, Numeric("2"), form.Rows[0].Quantity)

	step(FormAction{Type: ActionRemoveRow, Row: 1})
	require.Len(t, form.Rows, 1)

	// The last row cannot be removed.
	step(FormAction{Type: ActionRemoveRow, Row: 0})
	require.Len(t, form.Rows, 1)

	step(FormAction{Type: ActionReset})
	assert.Equal(t, NewInvoiceForm(), form)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	form := InvoiceForm{Rows: []Row{{Quantity: "1"}, {Quantity: "2"}}}

	next, err := Reduce(form, FormAction{Type: ActionSetQuantity, Row: 1, Value: "9"}, nil)
	require.NoError(t, err)

	assert.Equal(t, Numeric("2"), form.Rows[1].Quantity)
	assert.Equal(t, Numeric("9"), next.Rows[1].Quantity)
}

func TestReduce_Errors(t *testing.T) {
	form := NewInvoiceForm()

	_, err := Reduce(form, FormAction{Type: ActionSetRate, Row: 3, Value: "1"}, nil)
	assert.Error(t, err)

	_, err = Reduce(form, FormAction{Type: ActionSelectProduct, Row: 0, Value: "x"}, nil)
	assert.Error(t, err)

	_, err = Reduce(form, FormAction{Type: "explode"}, nil)
	assert.Error(t, err)
}

func TestInvoiceForm_JSON(t *testing.T) {
	body := `{"customer_name":"Ravi","rows":[{"category_id":"1","product_id":{"_id":5},"quantity":2,"rate":"10.5"}]}`

	var form InvoiceForm
	require.NoError(t, json.Unmarshal([]byte(body), &form))
	require.Len(t, form.Rows, 1)
	assert.Equal(t, Ref(1), form.Rows[0].CategoryID)
	assert.Equal(t, Ref(5), form.Rows[0].ProductID)
	assert.Equal(t, Numeric("2"), form.Rows[0].Quantity)
	assert.Equal(t, 10.5, form.Rows[0].Rate.Float())

	out, err := json.Marshal(form)
	require.NoError(t, err)
	assert.JSONEq(t, `{"customer_name":"Ravi","customer_mobile":"","rows":[{"category_id":1,"product_id":5,"quantity":"2","rate":"10.5"}]}`, string(out))
}
