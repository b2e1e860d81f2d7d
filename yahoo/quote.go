package yahoo

import (
	"context"
	"fmt"
	"math"

	"github.com/PaesslerAG/jsonpath"
)

// Quote returns the latest regular-market price for a symbol.
//
// The price sits deep inside the chart payload's meta object; rather than
// mirroring the whole structure we pluck it out with a jsonpath query.
func (p *Provider) Quote(ctx context.Context, symbol string) (float64, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", p.baseURL, symbol)

	var jobj any
	if err := jwget(ctx, p.client, addr, &jobj); err != nil {
		return math.NaN(), fmt.Errorf("error in wget %q: %w", symbol, err)
	}

	path := "$.chart.result[0].meta.regularMarketPrice"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("error parsing quote for %q: %q %w", symbol, path, err)
	}
	// jsonpath is never clear about whether it returns a list of 1 answer or a
	// single answer: keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	val, ok := jval.(float64)
	if !ok {
		return math.NaN(), fmt.Errorf("error parsing quote for %q: %q not a float: %v", symbol, path, jval)
	}
	if val <= 0 {
		return math.NaN(), fmt.Errorf("no usable market price for %q: %v", symbol, val)
	}
	return val, nil
}
