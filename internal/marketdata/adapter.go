package marketdata

import (
	"context"
	"math"

	"go.uber.org/zap"

	"nuam/internal/logger"
)

const (
	latestWindowDays    = 5
	variationWindowDays = 2
	historyLabelLayout  = "02-01"
)

// Trend classifies a day-over-day variation.
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendFlat    Trend = "flat"
	TrendUnknown Trend = "unknown"
)

// History is a chart-ready close series: Labels[i] is the "dd-mm" date of Closes[i].
type History struct {
	Labels []string  `json:"labels"`
	Closes []float64 `json:"closes"`
}

// Snapshot is everything the dashboard shows for one market. Nil pointers
// mean the provider had no data.
type Snapshot struct {
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	Price     *float64 `json:"price"`
	Variation *float64 `json:"variation"`
	Trend     Trend    `json:"trend"`
	History   History  `json:"history"`
}

// Adapter queries a ChartProvider with ticker fallback. Provider failures
// are logged and reported as "no data", never returned.
type Adapter struct {
	provider ChartProvider
	log      *zap.SugaredLogger
}

// NewAdapter creates an Adapter over provider.
func NewAdapter(provider ChartProvider) *Adapter {
	return &Adapter{provider: provider, log: logger.Named("marketdata")}
}

// series returns the first non-empty series among candidates.
func (a *Adapter) series(ctx context.Context, candidates []string, days int) []Point {
	for _, symbol := range candidates {
		points, err := a.provider.FetchDailyCloses(ctx, symbol, days)
		if err != nil {
			a.log.Warnw("quote fetch failed",
				"provider", a.provider.Name(),
				"symbol", symbol,
				"days", days,
				"error", err,
			)
			continue
		}
		if len(points) > 0 {
			return points
		}
	}
	return nil
}

// LatestClose returns the most recent close rounded to 2 decimals.
func (a *Adapter) LatestClose(ctx context.Context, candidates []string) (float64, bool) {
	points := a.series(ctx, candidates, latestWindowDays)
	if len(points) == 0 {
		return 0, false
	}
	return Round2(points[len(points)-1].Close), true
}

// Variation returns the percent change between the last two closes of a
// two-day window.
func (a *Adapter) Variation(ctx context.Context, candidates []string) (float64, bool) {
	points := a.series(ctx, candidates, variationWindowDays)
	closes := make([]float64, len(points))
	for i, p := range points {
		closes[i] = p.Close
	}
	return PercentChange(closes)
}

// History returns the last days of closes for charting. On failure both
// sequences are empty.
func (a *Adapter) History(ctx context.Context, candidates []string, days int) History {
	points := a.series(ctx, candidates, days)
	h := History{Labels: make([]string, 0, len(points)), Closes: make([]float64, 0, len(points))}
	for _, p := range points {
		h.Labels = append(h.Labels, p.Date.Format(historyLabelLayout))
		h.Closes = append(h.Closes, Round2(p.Close))
	}
	return h
}

// Snapshot collects price, variation, trend and history for m.
func (a *Adapter) Snapshot(ctx context.Context, m Market, historyDays int) Snapshot {
	s := Snapshot{Code: m.Code, Name: m.Name}
	if price, ok := a.LatestClose(ctx, m.Tickers); ok {
		s.Price = &price
	}
	variation, ok := a.Variation(ctx, m.Tickers)
	if ok {
		s.Variation = &variation
	}
	s.Trend = TrendOf(variation, ok)
	s.History = a.History(ctx, m.Tickers, historyDays)
	return s
}

// PercentChange computes the change from the second-to-last to the last
// close, rounded to 2 decimals. Non-positive closes are missing quotes and
// are dropped first, so a zero baseline never reaches the division. It
// reports false when fewer than two closes remain.
func PercentChange(closes []float64) (float64, bool) {
	valid := make([]float64, 0, len(closes))
	for _, c := range closes {
		if c > 0 {
			valid = append(valid, c)
		}
	}
	if len(valid) < 2 {
		return 0, false
	}
	prev, last := valid[len(valid)-2], valid[len(valid)-1]
	return Round2((last - prev) / prev * 100), true
}

// TrendOf maps a variation to a Trend by sign.
func TrendOf(variation float64, ok bool) Trend {
	switch {
	case !ok:
		return TrendUnknown
	case variation > 0:
		return TrendUp
	case variation < 0:
		return TrendDown
	default:
		return TrendFlat
	}
}

// Round2 rounds half away from zero to 2 decimals.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
