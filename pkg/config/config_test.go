package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
fred:
  api_key: abc
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "development", c.Environment)
	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, 10*time.Second, c.Server.ShutdownTimeout)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "https://api.stlouisfed.org/fred", c.FRED.BaseURL)
	assert.Equal(t, "2000-01-01", c.FRED.ObservationStart)
	assert.Equal(t, "li.js-stream-content h3", c.News.Selector)
	assert.Equal(t, 5, c.News.Limit)
	assert.Equal(t, uint64(3), c.HTTPClient.MaxRetries)
	assert.Equal(t, 6*time.Hour, c.Cache.TTL)
	assert.Equal(t, "memory", c.Cache.Type)
	assert.Equal(t, -1, c.Kafka.RequiredAcks)
	assert.False(t, c.Kafka.Enabled)
	assert.Equal(t, "macro.briefings", c.Kafka.Topic)
	assert.Equal(t, 50*time.Millisecond, c.Kafka.BatchTimeout)
	assert.Equal(t, 9000, c.ClickHouse.Port)
	assert.Equal(t, 5*time.Minute, c.ClickHouse.ConnMaxLifetime)
	assert.Equal(t, "macropulse", c.Cache.Redis.Prefix)
	assert.Equal(t, "0 30 8 * * 1-5", c.Scheduler.Spec)
}

func TestLoadKeepsFileValues(t *testing.T) {
	path := writeConfig(t, `
environment: production
server:
  port: 9090
  read_timeout: 3s
fred:
  api_key: abc
news:
  limit: 3
cache:
  enabled: true
  type: layered
  ttl: 30m
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", c.Environment)
	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, 3*time.Second, c.Server.ReadTimeout)
	assert.Equal(t, 3, c.News.Limit)
	assert.True(t, c.Cache.Enabled)
	assert.Equal(t, "layered", c.Cache.Type)
	assert.Equal(t, 30*time.Minute, c.Cache.TTL)
}

func TestLoadValidation(t *testing.T) {
	cases := map[string]string{
		"missing api key": `server: {port: 8080}`,
		"bad environment": "environment: moon\nfred: {api_key: abc}",
		"news limit":      "fred: {api_key: abc}\nnews: {limit: 9}",
		"cache type":      "fred: {api_key: abc}\ncache: {type: disk}",
		"kafka brokers":   "fred: {api_key: abc}\nkafka: {enabled: true}",
		"log level":       "fred: {api_key: abc}\nlog: {level: loud}",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
fred:
  api_key: from-file
kafka:
  enabled: true
  brokers: [file:9092]
`)
	t.Setenv("FRED_API_KEY", "from-env")
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("REDIS_ADDR", "cache.internal:6380")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	c, err := LoadWithEnv(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", c.FRED.APIKey)
	assert.Equal(t, 9999, c.Server.Port)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "cache.internal", c.Cache.Redis.Host)
	assert.Equal(t, 6380, c.Cache.Redis.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.Kafka.Brokers)
}

func TestLoadWithEnvWithoutFile(t *testing.T) {
	t.Setenv("FRED_API_KEY", "k")
	c, err := LoadWithEnv("")
	require.NoError(t, err)
	assert.Equal(t, "k", c.FRED.APIKey)
}

func TestLoadWithEnvBadPort(t *testing.T) {
	t.Setenv("FRED_API_KEY", "k")
	t.Setenv("HTTP_PORT", "eighty")
	_, err := LoadWithEnv("")
	assert.Error(t, err)
}
