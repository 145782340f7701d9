package capability

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DN is a suggested nominal diameter (mm). An overflow renders as ">400",
// meaning the load exceeds the table and needs engineering review.
type DN struct {
	Value    float64
	Overflow bool
}

func (d DN) String() string {
	v := strconv.FormatFloat(d.Value, 'f', -1, 64)
	if d.Overflow {
		return ">" + v
	}
	return v
}

// MarshalJSON writes a number, or a string for overflow markers
func (d DN) MarshalJSON() ([]byte, error) {
	if d.Overflow {
		return json.Marshal(d.String())
	}
	return json.Marshal(d.Value)
}

// UnmarshalJSON accepts a number, numeric text or a ">N" overflow marker
func (d *DN) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*d = DN{Value: v}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("suggested_dn: expected number or string, got %s", data)
	}
	overflow := strings.HasPrefix(s, ">")
	v, err := strconv.ParseFloat(strings.TrimPrefix(s, ">"), 64)
	if err != nil {
		return fmt.Errorf("suggested_dn: %w", err)
	}
	*d = DN{Value: v, Overflow: overflow}
	return nil
}
