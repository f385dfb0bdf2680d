package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MdHasib01/commserver/internal/core/domain"
)

func TestFromEnv_SnapshotsAllVariables(t *testing.T) {
	t.Setenv(EnvRedditClientID, "id")
	t.Setenv(EnvRedditClientSecret, "secret")
	t.Setenv(EnvRedditRefreshToken, "refresh")
	t.Setenv(EnvRedditUserAgent, "commserver:ingest:v1 (by /u/someone)")
	t.Setenv(EnvAnthropicAPIKey, "sk-ant-test")
	t.Setenv(EnvMongoURI, "mongodb://env-host:27017")
	t.Setenv(EnvRedisURL, "redis://env-host:6379")

	creds := FromEnv()

	assert.Equal(t, "id", creds.RedditClientID)
	assert.Equal(t, "secret", creds.RedditClientSecret)
	assert.Equal(t, "refresh", creds.RedditRefreshToken)
	assert.Equal(t, "commserver:ingest:v1 (by /u/someone)", creds.RedditUserAgent)
	assert.Equal(t, "sk-ant-test", creds.AnthropicAPIKey)
	assert.Equal(t, "mongodb://env-host:27017", creds.MongoURI)
	assert.Equal(t, "redis://env-host:6379", creds.RedisAddr)
	assert.True(t, creds.HasReddit())
	assert.True(t, creds.HasAnthropic())
}

func TestCredentials_HasReddit_MissingField(t *testing.T) {
	creds := Credentials{
		RedditClientID:     "id",
		RedditClientSecret: "secret",
		RedditRefreshToken: "refresh",
	}

	assert.False(t, creds.HasReddit(), "user agent is required")
}

func TestCredentials_HasAnthropic_Empty(t *testing.T) {
	assert.False(t, Credentials{}.HasAnthropic())
}

func TestCredentials_ApplyOverrides(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.Mongo.URI = "mongodb://file-host:27017"
	settings.Redis.Addr = "file-host:6379"

	creds := Credentials{MongoURI: "mongodb://env-host:27017"}
	creds.ApplyOverrides(&settings)

	assert.Equal(t, "mongodb://env-host:27017", settings.Mongo.URI)
	assert.Equal(t, "file-host:6379", settings.Redis.Addr, "unset env values leave settings alone")
}
