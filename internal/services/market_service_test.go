package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"nuam/internal/logger"
	"nuam/internal/marketdata"
)

func init() {
	logger.Init("test")
}

// stubChartProvider returns fixed closes per symbol.
type stubChartProvider struct {
	closes map[string][]float64
}

func (p *stubChartProvider) Name() string { return "stub" }

func (p *stubChartProvider) FetchDailyCloses(_ context.Context, symbol string, days int) ([]marketdata.Point, error) {
	closes, ok := p.closes[symbol]
	if !ok {
		return nil, errors.New("unknown symbol")
	}
	if len(closes) > days {
		closes = closes[len(closes)-days:]
	}
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	points := make([]marketdata.Point, len(closes))
	for i, c := range closes {
		points[i] = marketdata.Point{Date: start.AddDate(0, 0, i), Close: c}
	}
	return points, nil
}

func TestMarketSnapshots(t *testing.T) {
	provider := &stubChartProvider{closes: map[string][]float64{
		"ECH": {90, 95, 100, 110},
		"EPU": {50, 50},
	}}
	svc := NewMarketService(provider, marketdata.DefaultMarkets(), 30)

	snaps := svc.Snapshots(context.Background())
	if len(snaps) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(snaps))
	}

	cl := snaps[0]
	if cl.Code != "CL" || cl.Price == nil || *cl.Price != 110 {
		t.Errorf("expected Chile to fall back to ECH, got %+v", cl)
	}
	if cl.Variation == nil || *cl.Variation != 10 || cl.Trend != marketdata.TrendUp {
		t.Errorf("expected +10%% upward variation, got %v %s", cl.Variation, cl.Trend)
	}
	if len(cl.History.Closes) != 4 {
		t.Errorf("expected full history, got %v", cl.History.Closes)
	}

	pe := snaps[1]
	if pe.Trend != marketdata.TrendFlat {
		t.Errorf("expected flat Perú, got %s", pe.Trend)
	}

	co := snaps[2]
	if co.Price != nil || co.Variation != nil || co.Trend != marketdata.TrendUnknown || len(co.History.Closes) != 0 {
		t.Errorf("expected Colombia without data, got %+v", co)
	}
}
