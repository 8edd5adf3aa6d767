package billing

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoRows                 = errors.New("invoice must contain at least one row")
	ErrRowIncomplete          = errors.New("please fill all item fields")
	ErrInvalidQuantity        = errors.New("quantity must be a positive number")
	ErrInvalidRate            = errors.New("rate must be a positive number")
	ErrAmountOutOfRange       = errors.New("amount is too large")
	ErrUnknownProduct         = errors.New("product not found")
	ErrInvalidHSN             = errors.New("HSN must be 6-8 digits")
	ErrInvalidGSTRate         = errors.New("GST rate must be between 0 and 100")
	ErrTaxCodeIncomplete      = errors.New("HSN and GST rate must be provided together")
	ErrStartingSerialRequired = errors.New("a starting serial number is required for the first invoice")
	ErrInvalidStartingSerial  = errors.New("starting serial must be a positive number of at most 3 digits")
	ErrInvalidPrefix          = errors.New("prefix must be at most 4 characters and must not contain '/'")

	// ErrEntityLocked is wrapped by every LockConflictError.
	ErrEntityLocked = errors.New("entity is used and cannot be changed")
)

// ValidationError blocks a submission before anything is written.
type ValidationError struct {
	Err     error
	Field   string
	Details string
}

func (e *ValidationError) Error() string {
	msg := e.Err.Error()
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Details != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Details)
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, err error) *ValidationError {
	return &ValidationError{Err: err, Field: field}
}

// LockConflictError reports an attempt to change identity fields of a usage-locked
// product or category. Fields is empty when the attempted change is a delete.
type LockConflictError struct {
	Entity string
	ID     Ref
	Fields []string
}

func (e *LockConflictError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s %d is used and cannot be deleted", e.Entity, e.ID)
	}
	return fmt.Sprintf("%s %d is used; read-only fields: %s", e.Entity, e.ID, strings.Join(e.Fields, ", "))
}

func (e *LockConflictError) Unwrap() error {
	return ErrEntityLocked
}
