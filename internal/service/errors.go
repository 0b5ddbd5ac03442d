package service

import "errors"

// ErrCurrencyUnavailable indicates a requested code is missing from the rate table.
var ErrCurrencyUnavailable = errors.New("currency not available in rate table")

// ErrCacheWrite indicates a freshly fetched document could not be persisted.
var ErrCacheWrite = errors.New("cache write failed")

// ErrFetch indicates the rate document could not be downloaded.
var ErrFetch = errors.New("rate fetch failed")

// ErrParse indicates the downloaded rate document could not be parsed.
var ErrParse = errors.New("rate document parse failed")
