package compchart

import (
	"context"

	"github.com/ewanh/compchart/date"
)

// PriceProvider fetches historical daily close prices for a security symbol.
// Implementations live outside the engine (see the yahoo package); tests
// substitute deterministic fakes so the engine never needs the network.
type PriceProvider interface {
	// FetchDailyCloses returns the close price per trading day for the
	// requested range. Non-trading days are simply absent. The returned
	// history may cover less than the requested range when the symbol's
	// recorded history is shorter.
	FetchDailyCloses(ctx context.Context, symbol string, r date.Range) (*date.History[float64], error)
}

// IndexProvider fetches a consumer-price-like index series.
type IndexProvider interface {
	// FetchIndex returns the monthly index value for the requested range,
	// dated at each month's publication date.
	FetchIndex(ctx context.Context, series string, r date.Range) (*date.History[float64], error)
}

// PriceProviderFunc adapts a function to the PriceProvider interface.
type PriceProviderFunc func(ctx context.Context, symbol string, r date.Range) (*date.History[float64], error)

func (f PriceProviderFunc) FetchDailyCloses(ctx context.Context, symbol string, r date.Range) (*date.History[float64], error) {
	return f(ctx, symbol, r)
}

// IndexProviderFunc adapts a function to the IndexProvider interface.
type IndexProviderFunc func(ctx context.Context, series string, r date.Range) (*date.History[float64], error)

func (f IndexProviderFunc) FetchIndex(ctx context.Context, series string, r date.Range) (*date.History[float64], error) {
	return f(ctx, series, r)
}
