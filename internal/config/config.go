package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"quizify/internal/models"
)

const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"

	defaultGroqBaseURL   = "https://api.groq.com/openai/v1"
	defaultOllamaBaseURL = "http://localhost:11434"
	defaultModel         = "llama-3.3-70b-versatile"
	defaultTemperature   = 0.1
	defaultChunkSize     = 1000 // characters
	defaultChunkOverlap  = 100  // characters
	defaultAddr          = ":8501"
	defaultMaxUpload     = 50 << 20
)

type Config struct {
	LLM      LLMConfig      `yaml:"llm"`
	Chunking ChunkingConfig `yaml:"chunking"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

type LLMConfig struct {
	Provider    string        `yaml:"provider"`
	BaseURL     string        `yaml:"base_url"`
	Key         string        `yaml:"key"`
	Model       string        `yaml:"model"`
	Temperature float64       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
	Concurrency int           `yaml:"concurrency"`
}

type ChunkingConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
}

type ServerConfig struct {
	Addr           string `yaml:"addr"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty *bool  `yaml:"pretty"`
}

// LoadConfig reads the yaml file at path, applies environment overrides and
// fills defaults. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("%w: read %s: %v", models.ErrConfiguration, path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("%w: parse %s: %v", models.ErrConfiguration, path, err)
			}
		}
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		c.LLM.Key = v
	} else if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.Key = v
	}
}

func (c *Config) applyDefaults() {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	if c.LLM.Provider == "" {
		c.LLM.Provider = ProviderGroq
	}
	if c.LLM.BaseURL == "" {
		switch c.LLM.Provider {
		case ProviderGroq:
			c.LLM.BaseURL = defaultGroqBaseURL
		case ProviderOllama:
			c.LLM.BaseURL = defaultOllamaBaseURL
		}
	}
	if c.LLM.Model == "" {
		c.LLM.Model = defaultModel
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = defaultTemperature
	}
	if c.LLM.Concurrency <= 0 {
		c.LLM.Concurrency = 1
	}

	if c.Chunking.ChunkSize == 0 {
		c.Chunking.ChunkSize = defaultChunkSize
	}
	if c.Chunking.ChunkOverlap == 0 {
		c.Chunking.ChunkOverlap = defaultChunkOverlap
	}

	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}
	if c.Server.MaxUploadBytes <= 0 {
		c.Server.MaxUploadBytes = defaultMaxUpload
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Pretty == nil {
		pretty := true
		c.Log.Pretty = &pretty
	}
}

// Validate reports configuration that would make a run impossible.
func (c *Config) Validate() error {
	if err := c.LLM.Validate(); err != nil {
		return err
	}
	if c.Chunking.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk_size must be positive", models.ErrConfiguration)
	}
	if c.Chunking.ChunkOverlap < 0 || c.Chunking.ChunkOverlap >= c.Chunking.ChunkSize {
		return fmt.Errorf("%w: chunk_overlap must be in [0, chunk_size)", models.ErrConfiguration)
	}
	return nil
}

func (c *LLMConfig) Validate() error {
	switch c.Provider {
	case ProviderGroq, ProviderOpenAI, ProviderOllama:
	default:
		return fmt.Errorf("%w: unknown llm provider %q", models.ErrConfiguration, c.Provider)
	}
	if c.RequiresKey() && strings.TrimSpace(c.Key) == "" {
		return fmt.Errorf("%w: set GROQ_API_KEY or llm.key for provider %q", models.ErrMissingCredential, c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("%w: llm model cannot be empty", models.ErrConfiguration)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: llm timeout cannot be negative", models.ErrConfiguration)
	}
	return nil
}

// RequiresKey reports whether the provider authenticates with an API key.
func (c *LLMConfig) RequiresKey() bool {
	return c.Provider != ProviderOllama
}
