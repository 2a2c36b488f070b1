package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailsense/internal/chunker"
	"mailsense/internal/llm"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultEndpoint, cfg.LLM.Endpoint)
	assert.Equal(t, llm.DefaultModel, cfg.LLM.Model)
	assert.Equal(t, chunker.DefaultChunkSize, cfg.Chunking.Size)
	assert.Equal(t, chunker.DefaultOverlap, cfg.Chunking.Overlap)
	assert.Equal(t, DefaultDataDir, cfg.DataDir)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
llm:
  endpoint: http://localhost:8080
  model: local-llama
  timeout_secs: 30
chunking:
  size: 400
  overlap: 50
data_dir: /var/lib/mailsense
log_level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.LLM.Endpoint)
	assert.Equal(t, "local-llama", cfg.LLM.Model)
	assert.Equal(t, 30, cfg.LLM.TimeoutSecs)
	assert.Equal(t, 400, cfg.Chunking.Size)
	assert.Equal(t, 50, cfg.Chunking.Overlap)
	assert.Equal(t, "/var/lib/mailsense", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm:\n  model: from-file\n"), 0o644))

	t.Setenv("MAILSENSE_LLM_MODEL", "from-env")
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("MAILSENSE_DATA_DIR", "/tmp/ms")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.LLM.Model)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "/tmp/ms", cfg.DataDir)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm: [not a mapping"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsBadChunking(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunking:\n  size: 100\n  overlap: 100\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overlap")
}

func TestLLMClientConfig(t *testing.T) {
	cfg := &Config{LLM: LLMConfig{
		Endpoint:    "http://localhost:9999",
		Model:       "m",
		TimeoutSecs: 15,
		APIKey:      "k",
	}}

	cc := cfg.LLMClientConfig()
	assert.Equal(t, "http://localhost:9999", cc.Endpoint)
	assert.Equal(t, 15*time.Second, cc.Timeout)
	assert.Equal(t, "k", cc.APIKey)
}

func TestDerivedDirectories(t *testing.T) {
	cfg := &Config{DataDir: "/srv/ms"}
	assert.Equal(t, filepath.Join("/srv/ms", "indexes"), cfg.IndexDir())
	assert.Equal(t, filepath.Join("/srv/ms", "translation_cache"), cfg.TranslationCacheDir())

	cfg.CacheDir = "/fast/cache"
	assert.Equal(t, "/fast/cache", cfg.TranslationCacheDir())
}
