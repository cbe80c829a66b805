package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultEmbeddingProvider, cfg.Embedding.Provider)
	assert.Equal(t, DefaultLLMMaxTokens, cfg.LLM.MaxTokens)
	assert.Equal(t, DefaultTopK, cfg.Retrieval.TopK)
	assert.Equal(t, DefaultFetchK, cfg.Retrieval.FetchK)
	assert.NotEmpty(t, cfg.Storage.DataDir)
	assert.NotEmpty(t, cfg.Storage.UploadDir)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[storage]
data_dir = "/var/lib/legalease"

[embedding]
provider = "openai"
model = "text-embedding-3-small"
api_key = "sk-test"

[llm]
provider = "openrouter"
model = "meta-llama/llama-3.1-8b-instruct"
max_tokens = 500

[retrieval]
top_k = 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/legalease", cfg.Storage.DataDir)
	assert.Equal(t, filepath.Join("/var/lib/legalease", "uploads"), cfg.Storage.UploadDir)
	assert.Equal(t, "openai", cfg.Embedding.Provider)
	assert.Equal(t, "sk-test", cfg.Embedding.APIKey)
	assert.Equal(t, 500, cfg.LLM.MaxTokens)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
	assert.Equal(t, DefaultFetchK, cfg.Retrieval.FetchK)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[storage\ndata_dir ="), 0600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := &Config{}
	cfg.Storage.DataDir = "/data"
	cfg.LLM.APIKey = "sk-or-test"
	require.NoError(t, cfg.Save(path))

	// Config may hold API keys, so it must not be world-readable.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/data", loaded.Storage.DataDir)
	assert.Equal(t, "sk-or-test", loaded.LLM.APIKey)
}
