// Package marketdata fetches daily index closes from a remote chart provider
// and derives the figures shown on the market dashboard.
package marketdata

import (
	"context"
	"time"
)

// Point is one daily close.
type Point struct {
	Date  time.Time
	Close float64
}

// ChartProvider returns the daily closes of a symbol over the last days
// calendar days, oldest first. Missing quotes are omitted from the result.
type ChartProvider interface {
	// Name returns the provider's display name (e.g., "Yahoo Finance").
	Name() string

	FetchDailyCloses(ctx context.Context, symbol string, days int) ([]Point, error)
}

// Market is a logical market and the ticker aliases that can represent it,
// in order of preference.
type Market struct {
	Code    string
	Name    string
	Tickers []string
}

// DefaultMarkets returns the index tickers for Chile, Perú and Colombia.
func DefaultMarkets() []Market {
	return []Market{
		{Code: "CL", Name: "Chile", Tickers: []string{"^IPSA", "ECH"}},
		{Code: "PE", Name: "Perú", Tickers: []string{"^SPBLPGPT", "EPU"}},
		{Code: "CO", Name: "Colombia", Tickers: []string{"^COLCAP", "ICOLCAP.CL"}},
	}
}
