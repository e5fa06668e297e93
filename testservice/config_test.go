package testservice

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv(EnvPrefix+"_CONFIG", "")
	c, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 8000, c.Port)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 5*time.Second, c.CallbackTimeout)
	assert.Equal(t, "selection-harness", c.DynamoDB.Table)
	assert.Equal(t, "", c.StoreSettings().RedisURL)
}

func TestLoadConfigFileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 9100
log_level: debug
redis:
  url: redis://localhost:6379
dynamodb:
  endpoint: http://localhost:8001
`), 0o600))
	t.Setenv(EnvPrefix+"_PORT", "9200")
	t.Setenv(EnvPrefix+"_CONSUL_ADDRESS", "localhost:8500")

	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9200, c.Port)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, "redis://localhost:6379", c.Redis.URL)
	assert.Equal(t, "localhost:8500", c.Consul.Address)
	assert.Equal(t, "http://localhost:8001", c.StoreSettings().DynamoDBEndpoint)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv(EnvPrefix+"_LOG_LEVEL", "chatty")
	_, err := LoadConfig("")
	assert.ErrorContains(t, err, "chatty")

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	level, ok := parseLogLevel("WARN")
	assert.True(t, ok)
	assert.Equal(t, ldlog.Warn, level)
}
