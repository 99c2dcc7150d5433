package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
	Timezone     string        `yaml:"timezone"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type AggregatorConfig struct {
	Timeout        time.Duration `yaml:"timeout"`
	SearchDebounce time.Duration `yaml:"searchDebounce"`
}

// SourceConfig holds the credential and endpoint of one news provider.
// An empty APIKey disables the provider.
type SourceConfig struct {
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseUrl"`
}

type SourcesConfig struct {
	NewsAPI  SourceConfig `yaml:"newsapi"`
	GNews    SourceConfig `yaml:"gnews"`
	Currents SourceConfig `yaml:"currents"`
	NewsData SourceConfig `yaml:"newsdata"`
}

type AIConfig struct {
	APIKey   string        `yaml:"apiKey"`
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server           `yaml:"webServer"`
	Persistence Persistence      `yaml:"persistence"`
	Logger      LoggerConfig     `yaml:"logger"`
	Cache       CacheConfig      `yaml:"cache"`
	Metrics     MetricsConfig    `yaml:"metrics"`
	Aggregator  AggregatorConfig `yaml:"aggregator"`
	Sources     SourcesConfig    `yaml:"sources"`
	AI          AIConfig         `yaml:"ai"`
}
