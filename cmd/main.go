// Package cmd implements the CLI application to compute and serve
// compensation projections.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ewanh/compchart"
	"github.com/ewanh/compchart/bls"
	"github.com/ewanh/compchart/yahoo"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&projectCmd{}, "projections")
	c.Register(&reportCmd{}, "projections")
	c.Register(&serveCmd{}, "server")
	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var blsAPIKey = flag.String("bls-api-key", os.Getenv("BLS_API_KEY"), "BLS registration key for higher CPI rate limits (optional)")
var noInflation = flag.Bool("no-inflation", false, "skip the CPI fetch and the real-dollar reference trace")
var cacheTTL = flag.Duration("price-cache-ttl", 24*time.Hour, "in-memory price cache time-to-live (clamped to one day)")

// sharedCache is process wide so the serve command reuses fetches across requests.
var sharedCache *compchart.PriceCache

// NewEngine wires the production providers into a projection engine.
func NewEngine() *compchart.Engine {
	if sharedCache == nil {
		sharedCache = compchart.NewPriceCache(*cacheTTL)
	}
	pricer := compchart.NewPricer(yahoo.New(), sharedCache)

	var adjuster *compchart.InflationAdjuster
	if !*noInflation {
		adjuster = compchart.NewInflationAdjuster(bls.New(*blsAPIKey), "")
	}
	return compchart.NewEngine(pricer, adjuster)
}

// DecodePlanFile reads and validates a plan from a JSON file.
func DecodePlanFile(path string) (*compchart.CompensationPlan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open plan file %q: %w", path, err)
	}
	defer f.Close()
	return compchart.DecodePlan(f)
}
