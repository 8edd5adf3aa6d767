package billing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FinancialYear returns the "YYYY-YYYY" key of the April-to-March year containing t,
// evaluated in t's location.
func FinancialYear(t time.Time) string {
	year := t.Year()
	if t.Month() >= time.April {
		return fmt.Sprintf("%d-%d", year, year+1)
	}
	return fmt.Sprintf("%d-%d", year-1, year)
}

// FormatInvoiceNumber renders "{prefix}/{fy}/{serial}". The serial is padded to
// three digits and never truncated.
func FormatInvoiceNumber(prefix, fy string, serial int) string {
	return fmt.Sprintf("%s/%s/%03d", prefix, fy, serial)
}

// SplitInvoiceNumber returns the financial year and serial segments of an invoice
// number. A missing or malformed serial is reported as 0.
func SplitInvoiceNumber(number string) (fy string, serial int) {
	parts := strings.Split(number, "/")
	if len(parts) > 1 {
		fy = parts[1]
	}
	if len(parts) > 2 {
		if n, err := strconv.Atoi(strings.TrimSpace(parts[2])); err == nil && n > 0 {
			serial = n
		}
	}
	return fy, serial
}

// NextSerial is one past the highest serial issued in fy, or 1 when fy has none.
func NextSerial(invoices []Invoice, fy string) int {
	highest := 0
	for _, inv := range invoices {
		invFY, serial := SplitInvoiceNumber(inv.InvoiceNumber)
		if invFY != fy {
			continue
		}
		if serial > highest {
			highest = serial
		}
	}
	return highest + 1
}

// ParseStartingSerial validates a manually entered first serial: one to three
// digits, greater than zero.
func ParseStartingSerial(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, invalid("starting_serial", ErrStartingSerialRequired)
	}
	if len(raw) > 3 {
		return 0, invalid("starting_serial", ErrInvalidStartingSerial)
	}
	for _, c := range raw {
		if c < '0' || c > '9' {
			return 0, invalid("starting_serial", ErrInvalidStartingSerial)
		}
	}
	n, _ := strconv.Atoi(raw)
	if n <= 0 {
		return 0, invalid("starting_serial", ErrInvalidStartingSerial)
	}
	return n, nil
}

// SerialMode tells whether the next serial is computed or entered by hand.
type SerialMode int

const (
	SerialComputed SerialMode = iota
	// SerialManual applies once, to a vendor that has never issued an invoice.
	SerialManual
)

func (m SerialMode) String() string {
	if m == SerialManual {
		return "manual"
	}
	return "computed"
}

// Allocator decides the serial of a vendor's next invoice.
//
// A vendor starts in SerialManual when it has no invoices and has never completed
// a submission. Commit moves it to SerialComputed; there is no way back. The
// allocator only reads the ledger, it does not reserve numbers.
type Allocator struct {
	mode SerialMode
}

// NewAllocator derives the mode from the persisted "initialized" flag and the
// vendor's invoice history.
func NewAllocator(initialized bool, invoices []Invoice) *Allocator {
	if !initialized && len(invoices) == 0 {
		return &Allocator{mode: SerialManual}
	}
	return &Allocator{mode: SerialComputed}
}

func (a *Allocator) Mode() SerialMode {
	return a.mode
}

func (a *Allocator) RequiresStartingSerial() bool {
	return a.mode == SerialManual
}

// Allocate returns the serial for the next invoice in fy. In manual mode the
// starting serial is mandatory and used as is; otherwise it is ignored.
func (a *Allocator) Allocate(invoices []Invoice, fy, startingSerial string) (int, error) {
	if a.mode == SerialManual {
		return ParseStartingSerial(startingSerial)
	}
	return NextSerial(invoices, fy), nil
}

// Commit records that an invoice was submitted successfully. It reports whether
// this left manual mode, which is the transition the caller has to persist.
func (a *Allocator) Commit() bool {
	left := a.mode == SerialManual
	a.mode = SerialComputed
	return left
}
