package cmd

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ewanh/compchart"
	"github.com/goccy/go-json"
	"github.com/google/subcommands"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// plotPath is the projection endpoint, kept compatible with the original
// charting front-end.
const plotPath = "/api/v1.0/plot/"

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the projection HTTP server" }
func (*serveCmd) Usage() string {
	return `serve [-addr <host:port>]

  Runs the HTTP server. POST ` + plotPath + ` accepts a compensation plan as
  JSON and responds with the chart traces. Configuration is read from the
  COMPCHART_* environment (and an optional YAML file via COMPCHART_CONFIG);
  the -addr flag overrides the configured listen address.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "listen address, overrides the configured one")
}

func (c *serveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadServeConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.addr != "" {
		cfg.Addr = c.addr
	}
	if cfg.BLSAPIKey != "" {
		*blsAPIKey = cfg.BLSAPIKey
	}
	if cfg.NoInflation {
		*noInflation = true
	}

	srv := newServer(NewEngine(), cfg.RequestTimeout)
	log.Printf("compchart server listening on %s", cfg.Addr)
	if err := fasthttp.ListenAndServe(cfg.Addr, srv.handle); err != nil {
		log.Printf("server failed: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// server routes the few endpoints of the projection service.
type server struct {
	engine  *compchart.Engine
	timeout time.Duration
	metrics fasthttp.RequestHandler
}

func newServer(engine *compchart.Engine, timeout time.Duration) *server {
	return &server{
		engine:  engine,
		timeout: timeout,
		metrics: fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler()),
	}
}

func (s *server) handle(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case plotPath:
		s.handlePlot(ctx)
	case "/metrics":
		s.metrics(ctx)
	case "/healthz":
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("ok")
	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

// handlePlot computes a projection for the posted plan.
func (s *server) handlePlot(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	reqID := uuid.New().String()
	ctx.Response.Header.Set("X-Request-Id", reqID)

	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "use POST")
		projectionRequests.WithLabelValues("error").Inc()
		return
	}
	if ct := string(ctx.Request.Header.ContentType()); !strings.HasPrefix(ct, "application/json") {
		writeError(ctx, fasthttp.StatusUnsupportedMediaType, "Content-Type not supported, use application/json")
		projectionRequests.WithLabelValues("error").Inc()
		return
	}

	plan, err := compchart.DecodePlan(bytes.NewReader(ctx.PostBody()))
	if err != nil {
		log.Printf("[%s] rejected plan: %v", reqID, err)
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		projectionRequests.WithLabelValues("invalid_plan").Inc()
		return
	}

	// The request timeout bounds total wall-clock latency, upstream retries
	// included.
	tctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	traces, err := s.engine.Project(tctx, plan)
	projectionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		log.Printf("[%s] projection failed: %v", reqID, err)
		switch {
		case errors.Is(err, compchart.ErrUpstreamUnavailable):
			writeError(ctx, fasthttp.StatusBadGateway, err.Error())
			projectionRequests.WithLabelValues("upstream").Inc()
		case compchart.IsValidation(err):
			writeError(ctx, fasthttp.StatusBadRequest, err.Error())
			projectionRequests.WithLabelValues("invalid_plan").Inc()
		default:
			writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
			projectionRequests.WithLabelValues("error").Inc()
		}
		return
	}

	body, err := json.Marshal(traces)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		projectionRequests.WithLabelValues("error").Inc()
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetBody(body)
	projectionRequests.WithLabelValues("ok").Inc()
	log.Printf("[%s] served %d traces in %s", reqID, len(traces), time.Since(start))
}

type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	body, _ := json.Marshal(errorResponse{Status: status, Message: message})
	ctx.SetBody(body)
}
