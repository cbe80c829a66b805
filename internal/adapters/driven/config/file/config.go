package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the typed application configuration, stored as TOML at
// ~/.legalease/config.toml by default.
type Config struct {
	Storage   StorageConfig   `toml:"storage"`
	Embedding EmbeddingConfig `toml:"embedding"`
	LLM       LLMConfig       `toml:"llm"`
	Chunking  ChunkingConfig  `toml:"chunking"`
	Retrieval RetrievalConfig `toml:"retrieval"`
}

// StorageConfig configures where document artifacts live.
type StorageConfig struct {
	// DataDir holds the metadata database and the chunk and index
	// files. Defaults to ~/.legalease/data.
	DataDir string `toml:"data_dir"`

	// UploadDir holds copies of ingested source files. Defaults to
	// <data_dir>/uploads.
	UploadDir string `toml:"upload_dir"`
}

// EmbeddingConfig selects and configures the embedding backend.
type EmbeddingConfig struct {
	// Provider is "ollama" or "openai".
	Provider string `toml:"provider"`

	BaseURL    string `toml:"base_url"`
	Model      string `toml:"model"`
	APIKey     string `toml:"api_key"`
	Dimensions int    `toml:"dimensions"`
}

// LLMConfig configures the answering model.
type LLMConfig struct {
	// Provider is "openrouter". Empty disables question answering.
	Provider string `toml:"provider"`

	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
	APIKey  string `toml:"api_key"`

	// MaxTokens caps answer length.
	MaxTokens int `toml:"max_tokens"`

	// RequestsPerMinute caps the completion request rate.
	RequestsPerMinute int `toml:"requests_per_minute"`
}

// ChunkingConfig tunes the text splitter.
type ChunkingConfig struct {
	ChunkSize    int `toml:"chunk_size"`
	ChunkOverlap int `toml:"chunk_overlap"`
}

// RetrievalConfig tunes search behaviour.
type RetrievalConfig struct {
	// TopK is the number of excerpts returned to the caller.
	TopK int `toml:"top_k"`

	// FetchK is the number of candidates scored before truncation.
	FetchK int `toml:"fetch_k"`
}

// Default configuration values.
const (
	DefaultEmbeddingProvider = "ollama"
	DefaultLLMMaxTokens      = 300
	DefaultTopK              = 3
	DefaultFetchK            = 20
)

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".legalease", "config.toml"), nil
}

// LoadConfig reads the configuration file at path. A missing file is
// not an error; defaults are returned. If path is empty, the default
// location is used.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	// Restricted permissions: the file may hold API keys.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// applyDefaults fills zero-valued fields with defaults.
func (c *Config) applyDefaults() {
	if c.Storage.DataDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.Storage.DataDir = filepath.Join(home, ".legalease", "data")
		}
	}
	if c.Storage.UploadDir == "" && c.Storage.DataDir != "" {
		c.Storage.UploadDir = filepath.Join(c.Storage.DataDir, "uploads")
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = DefaultEmbeddingProvider
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = DefaultLLMMaxTokens
	}
	if c.Retrieval.TopK == 0 {
		c.Retrieval.TopK = DefaultTopK
	}
	if c.Retrieval.FetchK == 0 {
		c.Retrieval.FetchK = DefaultFetchK
	}
}
