// Package wire defines the JSON, TOML and YAML shapes of a retirement plan
// and converts them to and from the domain model.
package wire

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/simaogato/retireplan-backend/internal/domain"
)

// Number is a lenient numeric field.
// It accepts JSON numbers, numeric strings ("1,250.50", "$300") and null.
// Input that cannot be read as a number decodes to zero instead of failing the request.
type Number float64

// Float returns n as float64, mapping NaN and infinities to zero
func (n Number) Float() float64 {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// MarshalJSON writes n as a plain JSON number
func (n Number) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, n.Float(), 'f', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	var s string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			*n = 0
			return nil
		}
	} else {
		s = string(data)
	}

	*n = parseNumber(s)
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (n *Number) UnmarshalText(text []byte) error {
	*n = parseNumber(string(text))
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler
func (n *Number) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case int64:
		*n = Number(x)
	case float64:
		*n = Number(x)
	case string:
		*n = parseNumber(x)
	default:
		*n = 0
	}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (n *Number) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		*n = 0
		return nil
	}
	*n = parseNumber(node.Value)
	return nil
}

func parseNumber(s string) Number {
	f := domain.Float(domain.ParseAmount(s))
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return Number(f)
}

// Int rounds n to the nearest whole number
func (n Number) Int() int {
	return int(math.Round(n.Float()))
}
