package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"

	"NewsScanner/internal/domain"
	"NewsScanner/internal/ports"
)

const maxDocumentBytes = 10 << 20

// HTTPFetcher downloads listing pages and transcodes them to UTF-8.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

var _ ports.DocumentFetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher wires an HTTP client; a nil client gets the given timeout.
func NewHTTPFetcher(client *http.Client, userAgent string, timeout time.Duration) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	if userAgent == "" {
		userAgent = "NewsScanner/1.0"
	}
	return &HTTPFetcher{client: client, userAgent: userAgent}
}

// Fetch performs a single GET. Transport failures and non-200 responses are
// reported as *domain.FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.FetchError{URL: url, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &domain.FetchError{URL: url, Err: fmt.Errorf("request document: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.FetchError{URL: url, Status: resp.StatusCode}
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, maxDocumentBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, &domain.FetchError{URL: url, Err: fmt.Errorf("detect charset: %w", err)}
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, &domain.FetchError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}
	return raw, nil
}
