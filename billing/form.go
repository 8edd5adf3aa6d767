package billing

import "fmt"

// InvoiceForm is the whole state of an invoice being edited. It is plain data so
// a client can hold it, send it back with an action, and get the next state.
type InvoiceForm struct {
	CustomerName   string `json:"customer_name"`
	CustomerMobile string `json:"customer_mobile"`
	Rows           []Row  `json:"rows"`
	StartingSerial string `json:"starting_serial,omitempty"`
}

// NewInvoiceForm returns a form with one empty row.
func NewInvoiceForm() InvoiceForm {
	return InvoiceForm{Rows: []Row{{}}}
}

type ActionType string

const (
	ActionAddRow            ActionType = "add-row"
	ActionRemoveRow         ActionType = "remove-row"
	ActionSelectCategory    ActionType = "select-category"
	ActionSelectProduct     ActionType = "select-product"
	ActionSetQuantity       ActionType = "set-quantity"
	ActionSetRate           ActionType = "set-rate"
	ActionSetCustomerName   ActionType = "set-customer-name"
	ActionSetCustomerMobile ActionType = "set-customer-mobile"
	ActionSetStartingSerial ActionType = "set-starting-serial"
	ActionReset             ActionType = "reset"
)

// FormAction is one edit. Row is the target row for row-level actions.
type FormAction struct {
	Type  ActionType `json:"type" binding:"required"`
	Row   int        `json:"row"`
	Value string     `json:"value"`
}

// Reduce applies action to form and returns the new state; form itself is not
// modified. Selecting a category clears the row's product and rate; selecting a
// product fills the rate from its catalog price.
func Reduce(form InvoiceForm, action FormAction, catalog []Product) (InvoiceForm, error) {
	next := form
	next.Rows = append([]Row(nil), form.Rows...)
	if len(next.Rows) == 0 {
		next.Rows = []Row{{}}
	}

	rowAt := func() (*Row, error) {
		if action.Row < 0 || action.Row >= len(next.Rows) {
			return nil, fmt.Errorf("row %d out of range", action.Row)
		}
		return &next.Rows[action.Row], nil
	}

	switch action.Type {
	case ActionAddRow:
		next.Rows = append(next.Rows, Row{})
	case ActionRemoveRow:
		if _, err := rowAt(); err != nil {
			return form, err
		}
		if len(next.Rows) > 1 {
			next.Rows = append(next.Rows[:action.Row], next.Rows[action.Row+1:]...)
		}
	case ActionSelectCategory:
		row, err := rowAt()
		if err != nil {
			return form, err
		}
		id, err := ParseRef(action.Value)
		if err != nil {
			return form, err
		}
		row.CategoryID = id
		row.ProductID = 0
		row.Rate = ""
	case ActionSelectProduct:
		row, err := rowAt()
		if err != nil {
			return form, err
		}
		id, err := ParseRef(action.Value)
		if err != nil {
			return form, err
		}
		row.ProductID = id
		for _, p := range catalog {
			if p.ID == id {
				row.Rate = NumericFrom(p.Price)
				break
			}
		}
	case ActionSetQuantity:
		row, err := rowAt()
		if err != nil {
			return form, err
		}
		row.Quantity = Numeric(action.Value)
	case ActionSetRate:
		row, err := rowAt()
		if err != nil {
			return form, err
		}
		row.Rate = Numeric(action.Value)
	case ActionSetCustomerName:
		next.CustomerName = action.Value
	case ActionSetCustomerMobile:
		next.CustomerMobile = action.Value
	case ActionSetStartingSerial:
		next.StartingSerial = action.Value
	case ActionReset:
		next = NewInvoiceForm()
	default:
		return form, fmt.Errorf("unknown form action %q", action.Type)
	}
	return next, nil
}
