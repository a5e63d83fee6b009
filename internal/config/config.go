// Package config loads the server configuration via viper. Values come from
// an optional config file (config.yaml in the working directory or /etc/portfolio-chat)
// overridden by PCHAT_* environment variables.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        int             `mapstructure:"port" yaml:"port"`
	Environment string          `mapstructure:"environment" yaml:"environment"`
	Site        SiteConfig      `mapstructure:"site" yaml:"site"`
	RateLimit   RateConfig      `mapstructure:"rate_limit" yaml:"rate_limit"`
	Retrieval   RetrievalConfig `mapstructure:"retrieval" yaml:"retrieval"`
	Embedding   ModelConfig     `mapstructure:"embedding" yaml:"embedding"`
	LLM         ModelConfig     `mapstructure:"llm" yaml:"llm"`
	Store       StoreConfig     `mapstructure:"store" yaml:"store"`
	Content     ContentConfig   `mapstructure:"content" yaml:"content"`
}

// SiteConfig drives the origin check on inbound chat requests.
type SiteConfig struct {
	URL                string `mapstructure:"url" yaml:"url"`
	PreviewSuffix      string `mapstructure:"preview_suffix" yaml:"preview_suffix"`
	DisableOriginCheck bool   `mapstructure:"disable_origin_check" yaml:"disable_origin_check"`
}

type RateConfig struct {
	Threshold int           `mapstructure:"threshold" yaml:"threshold"`
	Window    time.Duration `mapstructure:"window" yaml:"window"`
}

type RetrievalConfig struct {
	TopK            int           `mapstructure:"top_k" yaml:"top_k"`
	MinScore        float64       `mapstructure:"min_score" yaml:"min_score"`
	LocalReplyDelay time.Duration `mapstructure:"local_reply_delay" yaml:"local_reply_delay"`
	MaxMessageLen   int           `mapstructure:"max_message_len" yaml:"max_message_len"`
}

// ModelConfig identifies a generation or embedding backend. Provider is
// "gemini" or "openai". BaseURL overrides the provider default, which the
// tests rely on.
type ModelConfig struct {
	Provider string        `mapstructure:"provider" yaml:"provider"`
	Model    string        `mapstructure:"model" yaml:"model"`
	APIKey   string        `mapstructure:"api_key" yaml:"api_key"`
	BaseURL  string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// StoreConfig selects the document store backend: "memory", "sqlite" or
// "postgres".
type StoreConfig struct {
	Backend    string `mapstructure:"backend" yaml:"backend"`
	Path       string `mapstructure:"path" yaml:"path"`
	DSN        string `mapstructure:"dsn" yaml:"dsn"`
	Dimensions int    `mapstructure:"dimensions" yaml:"dimensions"`
}

// ContentConfig points at the local portfolio record files indexed at startup.
// Ignored for the postgres backend, which is populated externally.
type ContentConfig struct {
	Dir   string `mapstructure:"dir" yaml:"dir"`
	Watch bool   `mapstructure:"watch" yaml:"watch"`
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("port", 8090)
	v.SetDefault("environment", "development")
	v.SetDefault("site.preview_suffix", ".vercel.app")
	v.SetDefault("site.disable_origin_check", false)
	v.SetDefault("rate_limit.threshold", 20)
	v.SetDefault("rate_limit.window", time.Minute)
	v.SetDefault("retrieval.top_k", 6)
	v.SetDefault("retrieval.min_score", 0.0)
	v.SetDefault("retrieval.local_reply_delay", 600*time.Millisecond)
	v.SetDefault("retrieval.max_message_len", 2000)
	v.SetDefault("embedding.provider", "gemini")
	v.SetDefault("embedding.model", "gemini-embedding-001")
	v.SetDefault("embedding.timeout", 15*time.Second)
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.model", "gemini-2.5-flash-lite")
	v.SetDefault("llm.timeout", 120*time.Second)
	v.SetDefault("store.backend", "memory")
	v.SetDefault("store.path", "./data/documents.db")
	v.SetDefault("store.dimensions", 3072)
	v.SetDefault("content.dir", "./content")
	v.SetDefault("content.watch", true)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/portfolio-chat")

	v.SetEnvPrefix("PCHAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars and defaults apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
