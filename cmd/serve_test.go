package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/ewanh/compchart"
	"github.com/ewanh/compchart/date"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

const testPlanJSON = `{
  "misc": {"startDate": "2022-01-10", "endDate": "2023-01-10", "predictedInflation": 1.03},
  "base": {"name": "Base Salary", "pay": [{"startDate": "2022-01-10", "amount": 100000}]},
  "bonus": {
    "signing": {"name": "Signing Bonus", "amount": 0, "duration": {"years": 0, "months": 0, "days": 0}},
    "annual": {"name": "Annual Bonus", "default": 0, "past": []}
  },
  "stocks": []
}`

// testServer wires a server around a deterministic price provider.
func testServer(provider compchart.PriceProviderFunc) *server {
	pricer := compchart.NewPricer(provider, compchart.NewPriceCache(time.Hour))
	return newServer(compchart.NewEngine(pricer, nil), 5*time.Second)
}

func okProvider(ctx context.Context, symbol string, r date.Range) (*date.History[float64], error) {
	h := new(date.History[float64])
	h.Append(date.MustParse("2022-01-03"), 100)
	return h, nil
}

// do runs one request through the server's handler and returns the context.
func do(t *testing.T, s *server, method, path, contentType, body string) *fasthttp.RequestCtx {
	t.Helper()
	var req fasthttp.Request
	req.SetRequestURI("http://test" + path)
	req.Header.SetMethod(method)
	if contentType != "" {
		req.Header.SetContentType(contentType)
	}
	if body != "" {
		req.SetBodyString(body)
	}
	ctx := new(fasthttp.RequestCtx)
	ctx.Init(&req, nil, nil)
	s.handle(ctx)
	return ctx
}

func TestServePlot(t *testing.T) {
	s := testServer(okProvider)
	ctx := do(t, s, fasthttp.MethodPost, plotPath, "application/json", testPlanJSON)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))
	assert.NotEmpty(t, ctx.Response.Header.Peek("X-Request-Id"))

	var traces []compchart.Trace
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &traces))
	require.Len(t, traces, 4)

	names := make([]string, len(traces))
	for i, tr := range traces {
		names[i] = tr.Name
		assert.Len(t, tr.X, 13, "trace %q", tr.Name)
		assert.Len(t, tr.Y, 13, "trace %q", tr.Name)
	}
	assert.Contains(t, names, "Base Salary")
	assert.Equal(t, compchart.TotalLabel, names[len(names)-1])
}

func TestServePlotRejections(t *testing.T) {
	s := testServer(okProvider)
	tests := []struct {
		name        string
		method      string
		contentType string
		body        string
		status      int
	}{
		{"wrong method", fasthttp.MethodGet, "application/json", "", fasthttp.StatusMethodNotAllowed},
		{"wrong content type", fasthttp.MethodPost, "text/plain", testPlanJSON, fasthttp.StatusUnsupportedMediaType},
		{"malformed body", fasthttp.MethodPost, "application/json", "{", fasthttp.StatusBadRequest},
		{"invalid plan", fasthttp.MethodPost, "application/json",
			`{"misc": {"startDate": "2023-01-10", "endDate": "2022-01-10", "predictedInflation": 1.03},
			  "base": {"name": "Base", "pay": [{"startDate": "2022-01-10", "amount": 100000}]},
			  "bonus": {"signing": {"name": "s", "amount": 0, "duration": {"years":0,"months":0,"days":0}},
			            "annual": {"name": "a", "default": 0, "past": []}},
			  "stocks": []}`,
			fasthttp.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := do(t, s, tc.method, plotPath, tc.contentType, tc.body)
			require.Equal(t, tc.status, ctx.Response.StatusCode())

			var resp errorResponse
			require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
			assert.Equal(t, tc.status, resp.Status)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestServePlotUpstreamOutage(t *testing.T) {
	s := testServer(func(context.Context, string, date.Range) (*date.History[float64], error) {
		return nil, assert.AnError
	})
	plan := `{
	  "misc": {"startDate": "2022-01-10", "endDate": "2023-01-10", "predictedInflation": 1.03},
	  "base": {"name": "Base Salary", "pay": [{"startDate": "2022-01-10", "amount": 100000}]},
	  "bonus": {"signing": {"name": "s", "amount": 0, "duration": {"years":0,"months":0,"days":0}},
	            "annual": {"name": "a", "default": 0, "past": []}},
	  "stocks": [{"name": "RSU", "ticker": "ACME", "startDate": "2022-01-10", "endDate": "2026-01-10", "shares": 100}]
	}`
	ctx := do(t, s, fasthttp.MethodPost, plotPath, "application/json", plan)
	require.Equal(t, fasthttp.StatusBadGateway, ctx.Response.StatusCode())

	var resp errorResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, fasthttp.StatusBadGateway, resp.Status)
}

func TestServeRouting(t *testing.T) {
	s := testServer(okProvider)

	ctx := do(t, s, fasthttp.MethodGet, "/healthz", "", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "ok", string(ctx.Response.Body()))

	ctx = do(t, s, fasthttp.MethodGet, "/nope", "", "")
	require.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())

	ctx = do(t, s, fasthttp.MethodGet, "/metrics", "", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), "compchart_projection_duration_seconds")
}
