package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"mailsense/internal/chunker"
	"mailsense/internal/llm"
)

// Default values applied when neither the file nor the environment sets
// a field
const (
	DefaultEndpoint = "https://api.mistral.ai"
	DefaultDataDir  = "data"
	DefaultLogLevel = "info"
)

// LLMConfig configures the generation client. The API key never lives in
// the YAML file; it comes from the environment only.
type LLMConfig struct {
	Endpoint    string `yaml:"endpoint"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
	APIKey      string `yaml:"-"`
}

// ChunkingConfig sets the default chunk geometry for index builds.
type ChunkingConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

// Config is the resolved application configuration. It is built once at
// startup and passed down explicitly; nothing reads configuration after
// Load returns.
type Config struct {
	LLM      LLMConfig      `yaml:"llm"`
	Chunking ChunkingConfig `yaml:"chunking"`
	DataDir  string         `yaml:"data_dir"`
	CacheDir string         `yaml:"cache_dir"`
	LogLevel string         `yaml:"log_level"`
}

// Load reads an optional YAML file, applies environment overrides and
// defaults, and validates the result. A missing file is not an error;
// a malformed one is.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// defaults and environment only
	default:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	applyEnv(cfg)
	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LLMClientConfig converts the resolved settings into the generation
// client's own config type.
func (c *Config) LLMClientConfig() llm.Config {
	return llm.Config{
		Endpoint: c.LLM.Endpoint,
		APIKey:   c.LLM.APIKey,
		Model:    c.LLM.Model,
		Timeout:  time.Duration(c.LLM.TimeoutSecs) * time.Second,
	}
}

// IndexDir is where vector index files live.
func (c *Config) IndexDir() string {
	return filepath.Join(c.DataDir, "indexes")
}

// TranslationCacheDir is where cached translations live.
func (c *Config) TranslationCacheDir() string {
	if c.CacheDir != "" {
		return c.CacheDir
	}
	return filepath.Join(c.DataDir, "translation_cache")
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MAILSENSE_LLM_ENDPOINT"); v != "" {
		cfg.LLM.Endpoint = v
	}
	if v := os.Getenv("MAILSENSE_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("MAILSENSE_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("MAILSENSE_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv("MAILSENSE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("MAILSENSE_LLM_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.LLM.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.LLM.Endpoint == "" {
		cfg.LLM.Endpoint = DefaultEndpoint
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = llm.DefaultModel
	}
	if cfg.LLM.TimeoutSecs == 0 {
		cfg.LLM.TimeoutSecs = int(llm.DefaultTimeout / time.Second)
	}
	if cfg.Chunking.Size == 0 {
		cfg.Chunking.Size = chunker.DefaultChunkSize
	}
	if cfg.Chunking.Overlap == 0 {
		cfg.Chunking.Overlap = chunker.DefaultOverlap
	}
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
}

func validate(cfg *Config) error {
	if cfg.LLM.TimeoutSecs < 0 {
		return fmt.Errorf("llm.timeout_secs must not be negative, got %d", cfg.LLM.TimeoutSecs)
	}
	if cfg.Chunking.Size < chunker.MinChunkSize {
		return fmt.Errorf("chunking.size must be at least %d, got %d", chunker.MinChunkSize, cfg.Chunking.Size)
	}
	if cfg.Chunking.Overlap < 0 || cfg.Chunking.Overlap >= cfg.Chunking.Size {
		return fmt.Errorf("chunking.overlap must be in [0, size), got %d", cfg.Chunking.Overlap)
	}
	return nil
}
