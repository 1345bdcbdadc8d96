package binance

import (
	"errors"
	"fmt"
	"time"
)

// ErrMalformedResponse marks a response that decoded but is missing the
// fields the caller needs (for example an order book with no bid levels).
var ErrMalformedResponse = errors.New("malformed response")

// StatusError is a non-success HTTP status from the exchange. Rate limiting
// has its own type; everything else lands here.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Endpoint, e.StatusCode)
}

// RateLimitError is an HTTP 429 with the wait the exchange asked for.
type RateLimitError struct {
	Endpoint   string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited, retry after %v", e.Endpoint, e.RetryAfter)
}
