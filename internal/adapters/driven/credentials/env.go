// Package credentials snapshots upstream API secrets from the
// environment. Secrets never live in the settings file; a .env file
// loaded by the entrypoint feeds the same variables in development.
package credentials

import (
	"os"

	"github.com/MdHasib01/commserver/internal/core/domain"
)

// Environment variable names.
const (
	EnvRedditClientID     = "REDDIT_CLIENT_ID"
	EnvRedditClientSecret = "REDDIT_CLIENT_SECRET"
	EnvRedditRefreshToken = "REDDIT_REFRESH_TOKEN"
	EnvRedditUserAgent    = "REDDIT_USER_AGENT"
	EnvAnthropicAPIKey    = "ANTHROPIC_API_KEY"
	EnvMongoURI           = "MONGODB_URI"
	EnvRedisURL           = "REDIS_URL"
)

// Credentials is a point-in-time snapshot of the secrets read from the
// environment.
type Credentials struct {
	// RedditClientID is the OAuth application client id.
	RedditClientID string

	// RedditClientSecret is the OAuth application client secret.
	RedditClientSecret string

	// RedditRefreshToken is the long-lived refresh token exchanged for
	// access tokens.
	RedditRefreshToken string

	// RedditUserAgent is sent on every Reddit request.
	RedditUserAgent string

	// AnthropicAPIKey authenticates comment generation calls.
	AnthropicAPIKey string

	// MongoURI overrides the settings-file Mongo URI when set.
	MongoURI string

	// RedisAddr overrides the settings-file Redis address when set.
	RedisAddr string
}

// FromEnv snapshots credentials from environment variables. Callers
// load .env files before calling this.
func FromEnv() Credentials {
	return Credentials{
		RedditClientID:     os.Getenv(EnvRedditClientID),
		RedditClientSecret: os.Getenv(EnvRedditClientSecret),
		RedditRefreshToken: os.Getenv(EnvRedditRefreshToken),
		RedditUserAgent:    os.Getenv(EnvRedditUserAgent),
		AnthropicAPIKey:    os.Getenv(EnvAnthropicAPIKey),
		MongoURI:           os.Getenv(EnvMongoURI),
		RedisAddr:          os.Getenv(EnvRedisURL),
	}
}

// HasReddit reports whether all Reddit OAuth credentials are present.
func (c Credentials) HasReddit() bool {
	return c.RedditClientID != "" &&
		c.RedditClientSecret != "" &&
		c.RedditRefreshToken != "" &&
		c.RedditUserAgent != ""
}

// HasAnthropic reports whether the Anthropic API key is present.
func (c Credentials) HasAnthropic() bool {
	return c.AnthropicAPIKey != ""
}

// ApplyOverrides layers environment connection strings over file-based
// settings. Environment values win when set.
func (c Credentials) ApplyOverrides(settings *domain.Settings) {
	if c.MongoURI != "" {
		settings.Mongo.URI = c.MongoURI
	}
	if c.RedisAddr != "" {
		settings.Redis.Addr = c.RedisAddr
	}
}
