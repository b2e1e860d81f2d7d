// Package yahoo implements the price provider against the Yahoo Finance
// chart API. Responses are cached on disk with a daily expiry, so repeated
// projections within a day never hit the upstream twice for the same range.
package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ewanh/compchart/date"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Provider fetches daily close prices from Yahoo Finance.
type Provider struct {
	baseURL string
	client  *http.Client
}

// New returns a provider with a daily-expiring disk cache on its transport.
func New() *Provider {
	return &Provider{baseURL: defaultBaseURL, client: newDailyCachingClient()}
}

// chartURL builds the v8 chart endpoint address for a symbol and range.
// period2 is exclusive on the Yahoo side, hence the extra day.
func (p *Provider) chartURL(symbol string, r date.Range) string {
	return fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&events=history",
		p.baseURL, url.PathEscape(symbol), unix(r.From), unix(r.To.Add(1)))
}

func unix(d date.Date) int64 {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).Unix()
}

// chartResponse mirrors the part of the Yahoo chart payload we consume.
//
//	{"chart":{"result":[{"timestamp":[...],
//	   "indicators":{"quote":[{"close":[...]}]}}],"error":null}}
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchDailyCloses returns the close price per trading day for the requested
// range. Days Yahoo reports with a null close (halts, partial sessions) are
// skipped.
func (p *Provider) FetchDailyCloses(ctx context.Context, symbol string, r date.Range) (*date.History[float64], error) {
	var content chartResponse
	if err := jwget(ctx, p.client, p.chartURL(symbol, r), &content); err != nil {
		return nil, err
	}
	if e := content.Chart.Error; e != nil {
		return nil, fmt.Errorf("yahoo chart error for %s: %s (%s)", symbol, e.Description, e.Code)
	}
	if len(content.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo chart returned no result for %s", symbol)
	}

	result := content.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo chart returned no quote series for %s", symbol)
	}
	closes := result.Indicators.Quote[0].Close

	h := new(date.History[float64])
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		on := date.New(time.Unix(ts, 0).UTC().Date())
		h.Append(on, *closes[i])
	}
	return h, nil
}
