package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultYahooChartURL is the v8 chart endpoint; the symbol is appended as a path segment.
	DefaultYahooChartURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	yahooUA              = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"
)

// yahooChartResponse is the top-level v8 chart response.
type yahooChartResponse struct {
	Chart struct {
		Result []yahooChartResult `json:"result"`
		Error  *yahooChartError   `json:"error"`
	} `json:"chart"`
}

type yahooChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// yahooChartResult holds parallel timestamp and close arrays. Closes are
// null on days without a quote.
type yahooChartResult struct {
	Meta struct {
		Symbol               string `json:"symbol"`
		ExchangeTimezoneName string `json:"exchangeTimezoneName"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

// YahooProvider fetches daily closes from the Yahoo Finance chart API.
type YahooProvider struct {
	httpClient *http.Client
	baseURL    string
}

// NewYahooProvider creates a Yahoo chart client. An empty baseURL uses
// DefaultYahooChartURL.
func NewYahooProvider(httpClient *http.Client, baseURL string) *YahooProvider {
	if baseURL == "" {
		baseURL = DefaultYahooChartURL
	}
	return &YahooProvider{httpClient: httpClient, baseURL: strings.TrimRight(baseURL, "/")}
}

// Name returns the provider's display name.
func (p *YahooProvider) Name() string { return "Yahoo Finance" }

// FetchDailyCloses fetches the daily closes of symbol for the last days days.
func (p *YahooProvider) FetchDailyCloses(ctx context.Context, symbol string, days int) ([]Point, error) {
	if days < 1 {
		days = 1
	}
	reqURL := fmt.Sprintf("%s/%s?range=%dd&interval=1d", p.baseURL, url.PathEscape(symbol), days)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", yahooUA)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var chart yahooChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("chart error for %s: %s", symbol, chart.Chart.Error.Description)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("no chart result for %s", symbol)
	}

	return chart.Chart.Result[0].points(), nil
}

// points zips timestamps with closes, dropping null and non-positive closes.
func (r yahooChartResult) points() []Point {
	if len(r.Indicators.Quote) == 0 {
		return nil
	}
	closes := r.Indicators.Quote[0].Close

	loc := time.UTC
	if r.Meta.ExchangeTimezoneName != "" {
		if l, err := time.LoadLocation(r.Meta.ExchangeTimezoneName); err == nil {
			loc = l
		}
	}

	points := make([]Point, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		if i >= len(closes) || closes[i] == nil || *closes[i] <= 0 {
			continue
		}
		y, m, d := time.Unix(ts, 0).In(loc).Date()
		points = append(points, Point{
			Date:  time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
			Close: *closes[i],
		})
	}
	return points
}
