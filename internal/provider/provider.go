// Package provider fetches raw rate documents from remote sources.
package provider

import "context"

// RateSource fetches the current rate document as raw bytes.
type RateSource interface {
	Fetch(ctx context.Context) ([]byte, error)
}
