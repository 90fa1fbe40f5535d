package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port        string `env:"PORT" envDefault:"8080"`
	Env         string `env:"ENV" envDefault:"development"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"*"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	// LLM
	LLMProvider       string `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey      string `env:"OPENAI_API_KEY"`
	OpenAIModel       string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIVisionModel string `env:"OPENAI_VISION_MODEL" envDefault:"gpt-4.1-mini"`
	OpenAIBaseURL     string `env:"OPENAI_BASE_URL"`
	GeminiAPIKey      string `env:"GEMINI_API_KEY"`
	GeminiModel       string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`

	// YouTube Data API v3
	YouTubeAPIKey string `env:"YOUTUBE_API_KEY"`

	// Result handoff (optional)
	RedisURL  string        `env:"REDIS_URL"`
	ResultTTL time.Duration `env:"RESULT_TTL" envDefault:"30m"`

	// Uploads
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"20971520"`

	// Per-IP requests per minute on routes that call the LLM. 0 disables.
	LLMRateLimit int `env:"LLM_RATE_LIMIT" envDefault:"0"`
}

// Load reads .env files when present and parses the environment.
// Credentials are not required here; routes that need them report a
// configuration error on use.
func Load() (*Config, error) {
	loadEnvFiles(".env", ".env.local")

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))
	cfg.OpenAIAPIKey = strings.TrimSpace(cfg.OpenAIAPIKey)
	cfg.GeminiAPIKey = strings.TrimSpace(cfg.GeminiAPIKey)
	cfg.YouTubeAPIKey = strings.TrimSpace(cfg.YouTubeAPIKey)
	cfg.RedisURL = strings.TrimSpace(cfg.RedisURL)

	switch cfg.LLMProvider {
	case "openai", "gemini":
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q (expected openai or gemini)", cfg.LLMProvider)
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 20 * 1024 * 1024
	}
	if cfg.LLMRateLimit < 0 {
		cfg.LLMRateLimit = 0
	}

	return cfg, nil
}

// LLMAPIKey returns the credential of the selected provider.
func (c *Config) LLMAPIKey() string {
	if c.LLMProvider == "gemini" {
		return c.GeminiAPIKey
	}
	return c.OpenAIAPIKey
}

// LLMKeyName is the environment variable holding the selected provider's key.
func (c *Config) LLMKeyName() string {
	if c.LLMProvider == "gemini" {
		return "GEMINI_API_KEY"
	}
	return "OPENAI_API_KEY"
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.Port)
}

func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
		}
	}
}
