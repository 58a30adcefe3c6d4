// Package fetcher defines the page retrieval contract.
package fetcher

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// ErrFetch marks any failure to retrieve the target page: network
// errors and non-2xx responses alike. Callers treat it as terminal for
// the request; nothing retries.
var ErrFetch = errors.New("fetch failed")

// Request describes a single page retrieval.
type Request struct {
	URL     string
	Headers http.Header
}

// Response is the raw result of a successful retrieval.
type Response struct {
	URL        string
	StatusCode int
	Body       []byte
	Duration   time.Duration
}

// Fetcher retrieves a single page. Implementations perform exactly one
// attempt and report failure through ErrFetch.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (Response, error)
}
