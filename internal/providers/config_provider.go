package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"techpulse/internal/structures"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultSourceTimeout  = 8 * time.Second
	DefaultSearchDebounce = 300 * time.Millisecond
	DefaultCacheTTL       = 5 * time.Minute
	DefaultAITimeout      = 30 * time.Second
	DefaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "TECHPULSE_LOG_LEVEL")
	viper.BindEnv("persistence.filePath", "TECHPULSE_STATE_FILE")
	viper.BindEnv("cache.enabled", "TECHPULSE_CACHE_ENABLED")
	viper.BindEnv("sources.newsapi.apiKey", "TECHPULSE_NEWSAPI_KEY")
	viper.BindEnv("sources.gnews.apiKey", "TECHPULSE_GNEWS_KEY")
	viper.BindEnv("sources.currents.apiKey", "TECHPULSE_CURRENTS_KEY")
	viper.BindEnv("sources.newsdata.apiKey", "TECHPULSE_NEWSDATA_KEY")
	viper.BindEnv("ai.apiKey", "TECHPULSE_GEMINI_KEY")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	applyDefaults(&conf)

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "TechPulse"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

func applyDefaults(conf *structures.Config) {
	if conf.Aggregator.Timeout == 0 {
		conf.Aggregator.Timeout = DefaultSourceTimeout
	}
	if conf.Aggregator.SearchDebounce == 0 {
		conf.Aggregator.SearchDebounce = DefaultSearchDebounce
	}
	if conf.Cache.TTL == 0 {
		conf.Cache.TTL = DefaultCacheTTL
	}
	if conf.Persistence.Timezone == "" {
		conf.Persistence.Timezone = "Local"
	}
	if conf.AI.Timeout == 0 {
		conf.AI.Timeout = DefaultAITimeout
	}
	if conf.AI.Endpoint == "" {
		conf.AI.Endpoint = DefaultGeminiEndpoint
	}
}
