package collector

import "errors"

// Error classes returned by the adapters. Match them with errors.Is; the
// wrapped message carries the provider details.
var (
	// ErrProviderUnavailable means the provider could not be reached or
	// answered with a non-2xx status.
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrMalformedResponse means the payload was not valid JSON or lacked
	// a required field.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrUnknownTicker means the provider returned no data for the symbol.
	ErrUnknownTicker = errors.New("unknown ticker")
	// ErrConfiguration means the adapter was built with options that make
	// a fetch impossible.
	ErrConfiguration = errors.New("configuration error")
)
