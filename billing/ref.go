package billing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Ref is a canonical entity id. Clients send references as a bare number, as the
// number's string form, or as an embedded document exposing "_id" or "id"; all of
// them decode to the same Ref. The zero Ref means "not selected".
type Ref uint

func (r Ref) IsZero() bool {
	return r == 0
}

func (r Ref) String() string {
	return strconv.FormatUint(uint64(r), 10)
}

// ParseRef accepts the decimal string form of an id. Blank input is the zero Ref.
func ParseRef(s string) (Ref, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(s, 10, 0)
	if err != nil {
		return 0, fmt.Errorf("invalid reference %q: %w", s, err)
	}
	return Ref(n), nil
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = 0
		return nil
	}

	switch data[0] {
	case '{':
		var doc struct {
			OID json.RawMessage `json:"_id"`
			ID  json.RawMessage `json:"id"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
		inner := doc.OID
		if len(inner) == 0 {
			inner = doc.ID
		}
		inner = bytes.TrimSpace(inner)
		if len(inner) == 0 || inner[0] == '{' {
			return fmt.Errorf("invalid reference %s", data)
		}
		return r.UnmarshalJSON(inner)
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := ParseRef(s)
		if err != nil {
			return err
		}
		*r = v
		return nil
	default:
		v, err := ParseRef(string(data))
		if err != nil {
			return err
		}
		*r = v
		return nil
	}
}

func (r Ref) MarshalJSON() ([]byte, error) {
	return []byte(r.String()), nil
}
