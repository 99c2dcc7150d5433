package providers

import (
	"techpulse/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Persistence: structures.Persistence{
			FilePath:     "/tmp/techpulse.json.zst",
			SaveInterval: 30 * time.Second,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
		Cache: structures.CacheConfig{
			Enabled: true,
			Size:    16,
			TTL:     5 * time.Minute,
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_EnabledCacheNeedsSize(t *testing.T) {
	c := validConfig()
	c.Cache.Size = 0
	assert.Error(t, NewCnfValidator(c).Validate())

	c.Cache.Enabled = false
	assert.NoError(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_NegativeTimeout(t *testing.T) {
	c := validConfig()
	c.Aggregator.Timeout = -time.Second
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_NegativeAITimeout(t *testing.T) {
	c := validConfig()
	c.AI.Timeout = -time.Second
	assert.Error(t, NewCnfValidator(c).Validate())
}
