package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration. Constructed once at startup
// and passed into the components, nothing reads ambient global state.
type Config struct {
	Feed   FeedConfig   `yaml:"feed" json:"feed" jsonschema:"description=News feed polling configuration"`
	AI     AIConfig     `yaml:"ai" json:"ai" jsonschema:"description=AI backend configuration for news analysis"`
	Server ServerConfig `yaml:"server" json:"server" jsonschema:"description=Status server configuration"`
}

// FeedConfig holds settings for the signed telegraph feed
type FeedConfig struct {
	Endpoint string        `yaml:"endpoint" json:"endpoint" jsonschema:"default=https://www.cls.cn/nodeapi/telegraphList,description=Telegraph list API endpoint"`
	App      string        `yaml:"app" json:"app" jsonschema:"default=CailianpressWeb,description=App identifier sent in signed requests"`
	OS       string        `yaml:"os" json:"os" jsonschema:"default=web,description=OS tag sent in signed requests"`
	SV       string        `yaml:"sv" json:"sv" jsonschema:"default=7.2.2,description=Client version tag sent in signed requests"`
	Count    int           `yaml:"count" json:"count" jsonschema:"default=1,minimum=1,description=Items requested per poll (rn parameter)"`
	Interval time.Duration `yaml:"interval" json:"interval" jsonschema:"default=5s,description=Minimum delay between poll cycles"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Per-request timeout"`
}

// AIConfig holds the remote analysis backend configuration
type AIConfig struct {
	Provider    string        `yaml:"provider" json:"provider" jsonschema:"default=openai,enum=openai,enum=claude,description=Backend provider"`
	Endpoint    string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint override"`
	APIKey      string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model       string        `yaml:"model" json:"model" jsonschema:"description=Model name"`
	Temperature float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,description=Temperature for response generation"`
	MaxTokens   int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=800,description=Maximum tokens in response"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
}

// ServerConfig holds the optional status HTTP server settings
type ServerConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable the status HTTP server"`
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
}

// Load reads configuration from a YAML file, expands ${VAR} references from
// the environment and applies defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	switch {
	case err == nil:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case os.IsNotExist(err):
		// config file is optional, defaults cover the common single-binary run
	default:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Feed.Endpoint == "" {
		cfg.Feed.Endpoint = "https://www.cls.cn/nodeapi/telegraphList"
	}
	if cfg.Feed.App == "" {
		cfg.Feed.App = "CailianpressWeb"
	}
	if cfg.Feed.OS == "" {
		cfg.Feed.OS = "web"
	}
	if cfg.Feed.SV == "" {
		cfg.Feed.SV = "7.2.2"
	}
	if cfg.Feed.Count == 0 {
		cfg.Feed.Count = 1
	}
	if cfg.Feed.Interval == 0 {
		cfg.Feed.Interval = 5 * time.Second
	}
	if cfg.Feed.Timeout == 0 {
		cfg.Feed.Timeout = 10 * time.Second
	}

	if cfg.AI.Provider == "" {
		cfg.AI.Provider = "openai"
	}
	if cfg.AI.Temperature == 0 {
		cfg.AI.Temperature = 0.3
	}
	if cfg.AI.MaxTokens == 0 {
		cfg.AI.MaxTokens = 800
	}
	if cfg.AI.Timeout == 0 {
		cfg.AI.Timeout = 30 * time.Second
	}

	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
}

func validate(cfg *Config) error {
	if cfg.Feed.Count < 1 {
		return fmt.Errorf("feed.count must be at least 1")
	}
	if cfg.Feed.Interval < time.Second {
		return fmt.Errorf("feed.interval must be at least 1 second")
	}
	if cfg.Feed.Timeout < time.Second {
		return fmt.Errorf("feed.timeout must be at least 1 second")
	}
	if cfg.AI.Provider != "openai" && cfg.AI.Provider != "claude" {
		return fmt.Errorf("ai.provider must be openai or claude, got %q", cfg.AI.Provider)
	}
	if cfg.AI.Temperature < 0 || cfg.AI.Temperature > 2 {
		return fmt.Errorf("ai.temperature must be between 0 and 2")
	}
	if cfg.Server.Enabled && cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server.timeout must be at least 1 second")
	}
	return nil
}
