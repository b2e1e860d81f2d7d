package compchart

import (
	"errors"
	"fmt"
)

// ErrUpstreamUnavailable is the sentinel wrapped by every UpstreamError, so
// callers can test with errors.Is regardless of which provider failed.
var ErrUpstreamUnavailable = errors.New("upstream data provider unavailable")

// errNoPrices flags a provider response with no usable close at all; an empty
// history must never silently become a zero price.
var errNoPrices = errors.New("provider returned no prices for the requested range")

// ValidationError reports a plan that violates one of its invariants.
// Field identifies the offending part of the wire payload.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid plan: %s: %s", e.Field, e.Msg)
}

// invalidf is a shorthand to build a ValidationError.
func invalidf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err contains a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// UpstreamError reports a price or index provider that exhausted its retry
// budget or timed out.
type UpstreamError struct {
	Provider string // e.g. "yahoo", "bls"
	Symbol   string // security symbol or index series id
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Symbol, e.Err)
}

func (e *UpstreamError) Unwrap() []error { return []error{ErrUpstreamUnavailable, e.Err} }

// ComputationError reports an internal invariant violation, such as series
// reaching the aggregator with mismatched date axes. It is a defect, never a
// user error, and is always surfaced.
type ComputationError struct {
	Msg string
}

func (e *ComputationError) Error() string { return "internal: " + e.Msg }

// defectf builds a ComputationError.
func defectf(format string, args ...any) error {
	return &ComputationError{Msg: fmt.Sprintf(format, args...)}
}
