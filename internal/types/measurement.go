package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Measurement is a float that decodes from a JSON number or a numeric string.
// A trailing unit suffix such as "kg" or " cm" is dropped: "70kg" -> 70.
type Measurement float64

// UnmarshalJSON implements the json.Unmarshaler interface.
func (m *Measurement) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*m = Measurement(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("measurement: expected number or string")
	}

	parsed, err := ParseMeasurement(s)
	if err != nil {
		return err
	}
	*m = Measurement(parsed)
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (m Measurement) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(m))
}

// Float64 converts Measurement back to float64.
func (m Measurement) Float64() float64 {
	return float64(m)
}

// ParseMeasurement parses a numeric string with an optional unit suffix.
func ParseMeasurement(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	number := strings.TrimRightFunc(trimmed, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsSpace(r)
	})
	if number == "" {
		return 0, fmt.Errorf("measurement: invalid value %q", raw)
	}

	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, fmt.Errorf("measurement: invalid value %q", raw)
	}
	if value < 0 {
		return 0, fmt.Errorf("measurement: negative value %q", raw)
	}
	return value, nil
}
