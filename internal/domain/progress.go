package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Percent is a reading progress percentage. The backend serializes decimal
// fields as strings ("50.0"), so both JSON numbers and numeric strings decode.
// Values are kept as-is; nothing clamps to [0,100].
type Percent float64

// UnmarshalJSON accepts 50, 33.3, "50.0" and null
func (p *Percent) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = 0
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid percent %s: %w", raw, err)
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*p = 0
			return nil
		}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid percent %q: %w", raw, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("invalid percent %q: not a finite number", raw)
	}
	*p = Percent(v)
	return nil
}

// Float returns the raw value
func (p Percent) Float() float64 {
	return float64(p)
}

// String formats with the shortest representation: 50, 33.3
func (p Percent) String() string {
	return strconv.FormatFloat(float64(p), 'f', -1, 64)
}
