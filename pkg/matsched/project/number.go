package project

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a leniently decoded numeric field. JSON numbers and numeric
// strings are accepted; null, booleans, garbage strings and non-finite
// values decode as an absent number instead of failing the whole record.
type Number struct {
	Value float64
	Valid bool
}

// Num builds a valid Number.
func Num(v float64) Number { return Number{Value: v, Valid: true} }

// Or returns the value when valid, otherwise fallback.
func (n Number) Or(fallback float64) float64 {
	if n.Valid {
		return n.Value
	}
	return fallback
}

// Positive reports whether the number is present and > 0.
func (n Number) Positive() bool { return n.Valid && n.Value > 0 }

// FirstPositive returns the first present, positive value among ns, or 0.
func FirstPositive(ns ...Number) float64 {
	for _, n := range ns {
		if n.Positive() {
			return n.Value
		}
	}
	return 0
}

func (n *Number) UnmarshalJSON(b []byte) error {
	*n = Number{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	var raw string
	if b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return nil
		}
		raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	} else {
		raw = string(b)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	*n = Num(v)
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}
