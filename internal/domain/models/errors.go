package models

import "errors"

// Provider failures. Short series are not errors: indicators come back empty.
var (
	ErrProviderUnavailable = errors.New("market data provider unavailable")
	ErrRateLimited         = errors.New("rate limited")
	ErrNotFound            = errors.New("not found")
)
