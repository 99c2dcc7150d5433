package providers

import (
	"os"
	"path/filepath"
	"techpulse/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
webServer:
  host: 127.0.0.1
  port: 8080
persistence:
  filePath: /tmp/techpulse/state.json.zst
  saveInterval: 30s
logger:
  level: info
  mode: 0644
  dir: /tmp/techpulse
cache:
  enabled: true
  size: 8
sources:
  gnews:
    apiKey: from-file
`

func TestNewConfigProvider_ReadsFileEnvAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0644))
	t.Setenv("TECHPULSE_GEMINI_KEY", "AIzaSy-test-key-123")

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, "TechPulse", conf.AppName)
	assert.True(t, conf.Debug)
	assert.Equal(t, 8080, conf.WebServer.Port)
	assert.Equal(t, 30*time.Second, conf.Persistence.SaveInterval)
	assert.Equal(t, "from-file", conf.Sources.GNews.APIKey)
	assert.Equal(t, "AIzaSy-test-key-123", conf.AI.APIKey)

	assert.Equal(t, DefaultSourceTimeout, conf.Aggregator.Timeout)
	assert.Equal(t, DefaultSearchDebounce, conf.Aggregator.SearchDebounce)
	assert.Equal(t, DefaultCacheTTL, conf.Cache.TTL)
	assert.Equal(t, "Local", conf.Persistence.Timezone)
	assert.Equal(t, DefaultGeminiEndpoint, conf.AI.Endpoint)
	assert.Equal(t, DefaultAITimeout, conf.AI.Timeout)
}

func TestNewConfigProvider_MissingFile(t *testing.T) {
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: filepath.Join(t.TempDir(), "absent.yaml")})
	assert.Error(t, err)
}
