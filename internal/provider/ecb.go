package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultECBURL is the ECB daily reference rates document.
const DefaultECBURL = "https://www.ecb.europa.eu/stats/eurofxref/eurofxref-daily.xml"

const maxDocumentBytes = 1 << 20

var _ RateSource = (*ECBSource)(nil)

// ECBSource fetches the daily reference rates document from the ECB.
type ECBSource struct {
	url       string
	userAgent string
	client    *http.Client
}

// NewECBSource creates a new ECBSource. A zero timeoutSec disables the client timeout.
func NewECBSource(url, userAgent string, timeoutSec int) *ECBSource {
	if url == "" {
		url = DefaultECBURL
	}
	return &ECBSource{
		url:       url,
		userAgent: userAgent,
		client:    &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}
}

// Fetch performs a single GET for the rate document and returns its body.
func (s *ECBSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("ECB request creation failed: %w", err)
	}
	req.Header.Set("Accept", "application/xml, text/xml")
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ECB request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("ECB returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read ECB response: %w", err)
	}
	return body, nil
}
