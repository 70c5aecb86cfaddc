package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseFecha(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantNil bool
		wantErr bool
	}{
		{in: "", wantNil: true},
		{in: "   ", wantNil: true},
		{in: "2024-03-15", want: "2024-03-15"},
		{in: "2024-3-5", want: "2024-03-05"},
		{in: " 2024-12-31 ", want: "2024-12-31"},
		{in: "15/03/2024", wantErr: true},
		{in: "2024-02-30", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFecha(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil {
				if got != nil {
					t.Errorf("expected nil, got %v", got)
				}
				return
			}
			if FormatFecha(got) != tt.want {
				t.Errorf("expected %s, got %s", tt.want, FormatFecha(got))
			}
		})
	}
}

func TestParseMonto(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: ""},
		{in: "100", want: "100.00"},
		{in: "1234.567", want: "1234.57"},
		{in: "0", want: "0.00"},
		{in: "-15.5", want: "-15.50"},
		{in: "9999999999999.99", want: "9999999999999.99"},
		{in: "99999999999999", wantErr: true},
		{in: "abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMonto(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if FormatMonto(got) != tt.want {
				t.Errorf("expected %q, got %q", tt.want, FormatMonto(got))
			}
		})
	}
}

func TestFormatMonto_Null(t *testing.T) {
	if FormatMonto(decimal.NullDecimal{}) != "" {
		t.Error("expected empty string for null monto")
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2024, 5, 6, 23, 59, 0, 0, time.FixedZone("x", -3*3600))
	got := DateOnly(in)
	if got.Format(DateLayout) != "2024-05-06" || got.Hour() != 0 || got.Location() != time.UTC {
		t.Errorf("unexpected truncation: %v", got)
	}
}
