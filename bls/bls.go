// Package bls implements the consumer-price index provider against the US
// Bureau of Labor Statistics public timeseries API.
package bls

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/ewanh/compchart/date"
)

const defaultBaseURL = "https://api.bls.gov/publicAPI/v1/timeseries/data/"

// The v1 API serves at most this many years per request.
const maxYearSpan = 10

// Provider fetches CPI series from the BLS API.
type Provider struct {
	baseURL string
	apiKey  string // optional registration key for higher rate limits
	client  *http.Client
}

// New returns a provider. The api key may be empty; the public tier is
// enough for a handful of requests per day.
func New(apiKey string) *Provider {
	return &Provider{baseURL: defaultBaseURL, apiKey: apiKey, client: http.DefaultClient}
}

// request is the BLS API request payload.
type request struct {
	SeriesID        []string `json:"seriesid"`
	StartYear       int      `json:"startyear,omitempty"`
	EndYear         int      `json:"endyear,omitempty"`
	RegistrationKey string   `json:"registrationkey,omitempty"`
}

// response mirrors the part of the BLS payload we consume.
type response struct {
	Status  string `json:"status"`
	Message []string
	Results struct {
		Series []struct {
			Data []struct {
				Year   string `json:"year"`
				Period string `json:"period"` // "M01".."M12", or "M13" for annual averages
				Value  string `json:"value"`  // "-" when not yet published
			} `json:"data"`
		} `json:"series"`
	} `json:"Results"`
}

// FetchIndex returns the monthly index values for the requested range, each
// dated at the first day of its month. The API serves at most ten years per
// call, so wider ranges are fetched in chunks.
func (p *Provider) FetchIndex(ctx context.Context, series string, r date.Range) (*date.History[float64], error) {
	h := new(date.History[float64])
	for from := r.From.Year(); from <= r.To.Year(); from += maxYearSpan {
		to := from + maxYearSpan - 1
		if to > r.To.Year() {
			to = r.To.Year()
		}
		if err := p.fetchYears(ctx, series, from, to, h); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// fetchYears fetches one API call worth of years into h.
func (p *Provider) fetchYears(ctx context.Context, series string, startYear, endYear int, h *date.History[float64]) error {
	payload, err := json.Marshal(request{
		SeriesID:        []string{series},
		StartYear:       startYear,
		EndYear:         endYear,
		RegistrationKey: p.apiKey,
	})
	if err != nil {
		return err
	}

	log.Printf("fetching BLS series %s for %d-%d", series, startYear, endYear)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to query BLS for %s: %w", series, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to query BLS for %s: received status %s", series, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read BLS response body: %w", err)
	}

	var content response
	if err := json.Unmarshal(body, &content); err != nil {
		return fmt.Errorf("failed to parse BLS response: %w", err)
	}
	if content.Status != "REQUEST_SUCCEEDED" {
		return fmt.Errorf("BLS request for %s failed: %s %v", series, content.Status, content.Message)
	}
	if n := len(content.Results.Series); n != 1 {
		return fmt.Errorf("BLS returned %d series for %s, want exactly 1", n, series)
	}

	for _, entry := range content.Results.Series[0].Data {
		if entry.Value == "-" {
			continue // not yet published
		}
		on, err := parseEntryDate(entry.Year, entry.Period)
		if err != nil {
			// M13 annual averages and the like are simply not monthly points.
			continue
		}
		val, err := strconv.ParseFloat(entry.Value, 64)
		if err != nil {
			return fmt.Errorf("failed to parse BLS value %q for %s %s: %w", entry.Value, entry.Year, entry.Period, err)
		}
		h.Append(on, val)
	}
	return nil
}

// parseEntryDate converts a BLS (year, period) pair like ("2024", "M05") into
// the first day of that month.
func parseEntryDate(year, period string) (date.Date, error) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return date.Date{}, fmt.Errorf("invalid BLS year %q: %w", year, err)
	}
	if len(period) != 3 || period[0] != 'M' {
		return date.Date{}, fmt.Errorf("invalid BLS period %q", period)
	}
	m, err := strconv.Atoi(period[1:])
	if err != nil || m < 1 || m > 12 {
		return date.Date{}, fmt.Errorf("invalid BLS period %q", period)
	}
	return date.New(y, time.Month(m), 1), nil
}
