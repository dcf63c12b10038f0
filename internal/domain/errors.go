package domain

import "errors"

// Provider-reported conditions. The request reached the provider and it answered without data.
var (
	ErrSymbolNotFound = errors.New("symbol not found")
	ErrRateLimited    = errors.New("rate limited")
	ErrNoQuote        = errors.New("no quote data")
)

// Failures on our side of the exchange.
var (
	ErrTransport = errors.New("transport error")
	ErrMalformed = errors.New("malformed payload")
)

// IsProviderReported reports whether err means the provider answered but had nothing for us.
func IsProviderReported(err error) bool {
	return errors.Is(err, ErrSymbolNotFound) || errors.Is(err, ErrRateLimited) || errors.Is(err, ErrNoQuote)
}
