package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the ISO date format used by forms, CSV files and exports.
// Single-digit month and day are accepted on input.
const DateLayout = "2006-01-02"

const dateInputLayout = "2006-1-2"

// MaxMontoIntegerDigits bounds monto to NUMERIC(15,2).
const MaxMontoIntegerDigits = 13

// ParseFecha parses an ISO date. A blank string returns nil.
func ParseFecha(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateInputLayout, s)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida %q: se espera AAAA-MM-DD", s)
	}
	return &t, nil
}

// FormatFecha renders an optional date, empty when nil.
func FormatFecha(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

// ParseMonto parses an optional amount rounded to two decimals. A blank
// string returns an invalid (null) NullDecimal.
func ParseMonto(s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("monto inválido %q", s)
	}
	d = d.Round(2)
	if len(d.Abs().Truncate(0).String()) > MaxMontoIntegerDigits {
		return decimal.NullDecimal{}, fmt.Errorf("monto fuera de rango %q", s)
	}
	return decimal.NewNullDecimal(d), nil
}

// FormatMonto renders an optional amount with two decimals, empty when null.
func FormatMonto(m decimal.NullDecimal) string {
	if !m.Valid {
		return ""
	}
	return m.Decimal.StringFixed(2)
}
