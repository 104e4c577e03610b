package sitemirror

import "context"

// Response holds the outcome of a successful GET request.
type Response struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
}

// Fetcher retrieves raw bytes from URLs.
type Fetcher interface {
	// Fetch issues a GET request and returns the response.
	// Returns ETRANSPORT for network failures and ESTATUS for any
	// status other than 200 OK.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Response, error)

	// Close releases fetcher resources.
	Close() error
}
