package billing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Numeric keeps a form value exactly as the client typed it. Computation reads it
// through Float, which degrades to 0; validation goes through Positive. Both use
// the same parse, so a value that validates is the value that gets computed.
type Numeric string

func NumericFrom(v float64) Numeric {
	return Numeric(strconv.FormatFloat(v, 'f', -1, 64))
}

// parse accepts plain decimal text only (no hex, inf or nan) whose float64 value
// is finite.
func (n Numeric) parse() (float64, bool) {
	s := strings.TrimSpace(string(n))
	if _, err := decimal.NewFromString(s); err != nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Float returns the parsed value, or 0 when the text is blank or not a finite number.
func (n Numeric) Float() float64 {
	v, _ := n.parse()
	return v
}

func (n Numeric) IsBlank() bool {
	return strings.TrimSpace(string(n)) == ""
}

// Positive reports whether the text is a decimal whose float64 value is finite
// and strictly positive. Exponents that underflow to 0 or overflow fail.
func (n Numeric) Positive() bool {
	v, ok := n.parse()
	return ok && v > 0
}

func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*n = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Numeric(s)
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		*n = Numeric(data)
	default:
		return fmt.Errorf("invalid numeric value %s", data)
	}
	return nil
}

func (n Numeric) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(n))
}
