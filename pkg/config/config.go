package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database   DatabaseConfig   `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	LLM        LLMConfig        `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for article summarization"`
	Extraction ExtractionConfig `yaml:"extraction" json:"extraction" jsonschema:"description=Article page fetching and extraction"`
	Batch      BatchConfig      `yaml:"batch" json:"batch" jsonschema:"description=Batch processing and pacing"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10m,description=HTTP server timeout, must cover a whole batch"`
}

// DatabaseConfig holds sqlite connection settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:mpdigest.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// LLMConfig holds LLM configuration for article summarization
type LLMConfig struct {
	Endpoint     string        `yaml:"endpoint" json:"endpoint" jsonschema:"required,description=OpenAI-compatible API endpoint"`
	APIKey       string        `yaml:"api_key" json:"api_key" jsonschema:"required,description=API key (can use environment variable)"`
	Model        string        `yaml:"model" json:"model" jsonschema:"default=gpt-4o-mini,description=Model name"`
	Temperature  float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,description=Temperature for response generation"`
	MaxTokens    int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=1000,description=Maximum tokens in response"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=Request timeout"`
	SystemPrompt string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=System prompt for the LLM (optional)"`
	BatchDelay   time.Duration `yaml:"batch_delay" json:"batch_delay" jsonschema:"default=1s,description=Pause between sequential summarization calls (0 disables it)"`
}

// ExtractionConfig holds page fetching and extraction settings
type ExtractionConfig struct {
	Timeout             time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=20s,description=Page fetch timeout"`
	UserAgent           string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent override for page requests"`
	Host                string        `yaml:"host" json:"host" jsonschema:"default=mp.weixin.qq.com,description=Expected article host"`
	PathPrefix          string        `yaml:"path_prefix" json:"path_prefix" jsonschema:"default=/s,description=Expected article path prefix"`
	MaxContentLength    int           `yaml:"max_content_length" json:"max_content_length" jsonschema:"default=15000,description=Content is truncated to this many characters"`
	MinContentLength    int           `yaml:"min_content_length" json:"min_content_length" jsonschema:"default=50,description=Shorter content fails extraction"`
	MaxBodySize         int64         `yaml:"max_body_size" json:"max_body_size" jsonschema:"default=10485760,description=Maximum page body size in bytes"`
	ReadabilityFallback bool          `yaml:"readability_fallback" json:"readability_fallback" jsonschema:"default=false,description=Use generic readability extraction when no content selector matches"`
}

// BatchConfig holds batch size limits and pacing delays
type BatchConfig struct {
	MaxURLs        int           `yaml:"max_urls" json:"max_urls" jsonschema:"default=20,minimum=1,description=Maximum URLs per batch request"`
	WindowSize     int           `yaml:"window_size" json:"window_size" jsonschema:"default=2,minimum=1,description=Concurrent page fetches per window"`
	WindowDelay    time.Duration `yaml:"window_delay" json:"window_delay" jsonschema:"default=3s,description=Pause between fetch windows (0 disables it)"`
	ArticleDelay   time.Duration `yaml:"article_delay" json:"article_delay" jsonschema:"default=1s,description=Pause after each summarized article (0 disables it)"`
	DefaultAccount string        `yaml:"default_account" json:"default_account" jsonschema:"default=batch import,description=Account name used when request has none"`
	FeedTimeout    time.Duration `yaml:"feed_timeout" json:"feed_timeout" jsonschema:"default=30s,description=Feed fetch timeout for feed imports"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	// delays are preset before decoding, so an explicit 0 in the file stays 0 and disables the pause
	cfg := Config{
		LLM:   LLMConfig{BatchDelay: time.Second},
		Batch: BatchConfig{WindowDelay: 3 * time.Second, ArticleDelay: time.Second},
	}
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 10 * time.Minute
	}

	if c.Database.DSN == "" {
		c.Database.DSN = "file:mpdigest.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o-mini"
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.3
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 1000
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 60 * time.Second
	}

	if c.Extraction.Timeout == 0 {
		c.Extraction.Timeout = 20 * time.Second
	}
	if c.Extraction.Host == "" {
		c.Extraction.Host = "mp.weixin.qq.com"
	}
	if c.Extraction.PathPrefix == "" {
		c.Extraction.PathPrefix = "/s"
	}
	if c.Extraction.MaxContentLength == 0 {
		c.Extraction.MaxContentLength = 15000
	}
	if c.Extraction.MinContentLength == 0 {
		c.Extraction.MinContentLength = 50
	}
	if c.Extraction.MaxBodySize == 0 {
		c.Extraction.MaxBodySize = 10 << 20
	}

	if c.Batch.MaxURLs == 0 {
		c.Batch.MaxURLs = 20
	}
	if c.Batch.WindowSize == 0 {
		c.Batch.WindowSize = 2
	}
	if c.Batch.DefaultAccount == "" {
		c.Batch.DefaultAccount = "batch import"
	}
	if c.Batch.FeedTimeout == 0 {
		c.Batch.FeedTimeout = 30 * time.Second
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// llm credentials are required at startup, summarizer can't work without them
	if cfg.LLM.Endpoint == "" {
		return fmt.Errorf("llm.endpoint is required")
	}
	if cfg.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is required")
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}

	if cfg.Extraction.Timeout < time.Second {
		return fmt.Errorf("extraction timeout must be at least 1 second")
	}
	if cfg.Extraction.MinContentLength < 0 {
		return fmt.Errorf("extraction min_content_length must be non-negative")
	}
	if cfg.Extraction.MaxContentLength < cfg.Extraction.MinContentLength {
		return fmt.Errorf("extraction max_content_length must not be less than min_content_length")
	}

	if cfg.Batch.MaxURLs < 1 {
		return fmt.Errorf("batch.max_urls must be at least 1")
	}
	if cfg.Batch.WindowSize < 1 {
		return fmt.Errorf("batch.window_size must be at least 1")
	}
	if cfg.Batch.WindowDelay < 0 || cfg.Batch.ArticleDelay < 0 || cfg.LLM.BatchDelay < 0 {
		return fmt.Errorf("delays must be non-negative")
	}

	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetExtractionConfig returns page extraction configuration
func (c *Config) GetExtractionConfig() ExtractionConfig {
	return c.Extraction
}

// GetLLMConfig returns LLM configuration
func (c *Config) GetLLMConfig() LLMConfig {
	return c.LLM
}

// GetBatchConfig returns batch configuration
func (c *Config) GetBatchConfig() BatchConfig {
	return c.Batch
}
