package services

import (
	"context"

	"nuam/internal/marketdata"
)

// marketService builds the market dashboard from live quotes. Nothing is
// cached: every call hits the provider.
type marketService struct {
	adapter     *marketdata.Adapter
	markets     []marketdata.Market
	historyDays int
}

// NewMarketService creates a MarketServicer over provider for markets.
func NewMarketService(provider marketdata.ChartProvider, markets []marketdata.Market, historyDays int) MarketServicer {
	return &marketService{
		adapter:     marketdata.NewAdapter(provider),
		markets:     markets,
		historyDays: historyDays,
	}
}

// Snapshots returns one snapshot per market, in configuration order.
func (s *marketService) Snapshots(ctx context.Context) []marketdata.Snapshot {
	snapshots := make([]marketdata.Snapshot, 0, len(s.markets))
	for _, m := range s.markets {
		snapshots = append(snapshots, s.adapter.Snapshot(ctx, m, s.historyDays))
	}
	return snapshots
}
