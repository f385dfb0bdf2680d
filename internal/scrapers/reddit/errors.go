package reddit

import (
	"errors"
	"fmt"
	"time"
)

// RateLimitError represents a 429 response from the Reddit API.
// It never escapes the scraper: page fetches absorb it with a fixed
// backoff and retry the same cursor.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("reddit: rate limited, retry after %s", e.RetryAfter)
}

// APIError represents a non-retryable Reddit API error response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("reddit: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// AuthExchangeError represents a rejected token exchange: the upstream
// provider answered, but refused to issue an access token.
type AuthExchangeError struct {
	StatusCode int
	Body       string
}

func (e *AuthExchangeError) Error() string {
	return fmt.Sprintf("reddit: token exchange rejected with status %d: %s", e.StatusCode, e.Body)
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsNotFound checks if the error indicates a missing resource.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401
	}
	return false
}
