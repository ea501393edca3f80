package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/testdb")
	t.Setenv("MONGODB_DATABASE", "feedback_test")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("RATE_LIMIT_ENABLED", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "mongodb://localhost:27017/testdb", cfg.MongoDB.URI)
	require.Equal(t, "feedback_test", cfg.MongoDB.Database)
	require.Equal(t, "feedbacks", cfg.MongoDB.Collection)
	require.Equal(t, 10*time.Second, cfg.MongoDB.Timeout)
	require.Equal(t, "localhost:6380", cfg.Redis.Addr())
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	require.True(t, cfg.RateLimit.Enabled)
	require.Equal(t, "5001", cfg.Server.Port)
}

func TestLoadConfigRequiresMongoURI(t *testing.T) {
	t.Setenv("MONGODB_URI", "")

	cfg, err := LoadConfig()
	require.Nil(t, cfg)
	require.ErrorIs(t, err, ErrMissingMongoURI)
	var ce *ConfigurationError
	require.True(t, errors.As(err, &ce))
	require.Equal(t, "MONGODB_URI", ce.Key)
}

func TestRedisAddrEmptyWithoutHost(t *testing.T) {
	require.Empty(t, RedisConfig{Port: "6379"}.Addr())
}

func TestLoadMinIOConfig(t *testing.T) {
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("MINIO_SECRET_KEY", "s3cr3t")

	c := LoadMinIOConfig()
	require.Equal(t, "localhost:9000", c.Endpoint)
	require.True(t, c.UseSSL)
	require.Equal(t, "s3cr3t", c.SecretKey)
	require.Equal(t, "feedback", c.Bucket)
	require.NoError(t, c.Validate())
}
