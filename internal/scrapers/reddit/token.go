package reddit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/MdHasib01/commserver/internal/core/domain"
)

const (
	// defaultTokenURL is Reddit's OAuth token endpoint. Exchanges use
	// the refresh_token grant with HTTP basic client authentication.
	defaultTokenURL = "https://www.reddit.com/api/v1/access_token"

	// tokenTimeout bounds a single token exchange.
	tokenTimeout = 10 * time.Second

	// expiryBuffer refreshes tokens this long before they expire so an
	// in-flight API call never races the expiry.
	expiryBuffer = 60 * time.Second
)

// Credentials holds the Reddit script-app credentials used for the
// refresh token grant.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string

	// UserAgent is sent on every request. Reddit rejects generic
	// agents, so this is required configuration.
	UserAgent string
}

// Validate reports whether the credentials are complete enough to
// attempt a token exchange.
func (c Credentials) Validate() error {
	switch {
	case c.ClientID == "":
		return fmt.Errorf("%w: missing client id", domain.ErrAuthConfig)
	case c.ClientSecret == "":
		return fmt.Errorf("%w: missing client secret", domain.ErrAuthConfig)
	case c.RefreshToken == "":
		return fmt.Errorf("%w: missing refresh token", domain.ErrAuthConfig)
	case c.UserAgent == "":
		return fmt.Errorf("%w: missing user agent", domain.ErrAuthConfig)
	default:
		return nil
	}
}

// TokenBroker exchanges a long-lived refresh token for short-lived
// access tokens and caches the result. It is safe for concurrent use:
// when the cache is cold, exactly one caller performs the exchange and
// the rest block until it completes.
type TokenBroker struct {
	creds    Credentials
	tokenURL string

	mu          sync.RWMutex
	cachedToken string
	cacheExpiry time.Time
}

// NewTokenBroker creates a token broker for the given credentials.
func NewTokenBroker(creds Credentials) *TokenBroker {
	return &TokenBroker{
		creds:    creds,
		tokenURL: defaultTokenURL,
	}
}

// GetAccessToken returns a valid access token, refreshing if necessary.
func (b *TokenBroker) GetAccessToken(ctx context.Context) (string, error) {
	// Fast path: check cache with read lock
	b.mu.RLock()
	if b.cachedToken != "" && time.Now().Before(b.cacheExpiry) {
		token := b.cachedToken
		b.mu.RUnlock()
		return token, nil
	}
	b.mu.RUnlock()

	// Slow path: need refresh, acquire write lock
	b.mu.Lock()
	defer b.mu.Unlock()

	// Double-check after acquiring write lock: another caller may have
	// refreshed while we waited.
	if b.cachedToken != "" && time.Now().Before(b.cacheExpiry) {
		return b.cachedToken, nil
	}

	if err := b.creds.Validate(); err != nil {
		return "", err
	}

	token, err := b.exchange(ctx)
	if err != nil {
		return "", err
	}

	b.cachedToken = token.AccessToken
	if token.Expiry.IsZero() {
		b.cacheExpiry = time.Now().Add(1 * time.Hour).Add(-expiryBuffer)
	} else {
		b.cacheExpiry = token.Expiry.Add(-expiryBuffer)
	}

	return b.cachedToken, nil
}

// InvalidateCache clears the cached token, forcing the next call to
// perform an exchange.
func (b *TokenBroker) InvalidateCache() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cachedToken = ""
	b.cacheExpiry = time.Time{}
}

// exchange performs the refresh token grant.
func (b *TokenBroker) exchange(ctx context.Context) (*oauth2.Token, error) {
	cfg := &oauth2.Config{
		ClientID:     b.creds.ClientID,
		ClientSecret: b.creds.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  b.tokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	// Route the exchange through a client that carries our User-Agent;
	// Reddit rejects the default Go agent.
	httpClient := &http.Client{
		Timeout:   tokenTimeout,
		Transport: newUserAgentTransport(b.creds.UserAgent, nil),
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)

	source := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: b.creds.RefreshToken})
	token, err := source.Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			status := 0
			if retrieveErr.Response != nil {
				status = retrieveErr.Response.StatusCode
			}
			return nil, &AuthExchangeError{StatusCode: status, Body: string(retrieveErr.Body)}
		}
		return nil, fmt.Errorf("token exchange: %w", err)
	}

	return token, nil
}

// userAgentTransport stamps a User-Agent header on every request.
type userAgentTransport struct {
	agent string
	base  http.RoundTripper
}

func newUserAgentTransport(agent string, base http.RoundTripper) *userAgentTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &userAgentTransport{agent: agent, base: base}
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.agent)
	return t.base.RoundTrip(clone)
}
