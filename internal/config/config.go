package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and bind address configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
	APIBind string `toml:"api_bind"`
}

// YouTube contains configuration for the video metadata source.
type YouTube struct {
	// APIKey enables the credentialed Data API path. When empty the
	// aggregator degrades to the public oEmbed endpoint.
	APIKey          string `toml:"api_key"`
	BaseURL         string `toml:"base_url"`
	OEmbedURL       string `toml:"oembed_url"`
	CommentPageSize int    `toml:"comment_page_size"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
}

// TMDB contains configuration for The Movie Database API.
type TMDB struct {
	APIKey            string  `toml:"api_key"`
	BaseURL           string  `toml:"base_url"`
	ImageBaseURL      string  `toml:"image_base_url"`
	Language          string  `toml:"language"`
	WatchRegion       string  `toml:"watch_region"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// LLM contains connection settings for the candidate ranking model.
type LLM struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	Referer        string `toml:"referer"`
	Title          string `toml:"title"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Candidates     int    `toml:"candidates"`
}

// History contains configuration for the optional local history store.
type History struct {
	Enabled    bool   `toml:"enabled"`
	Path       string `toml:"path"`
	MaxEntries int    `toml:"max_entries"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for reelid.
//
// Configuration sections by subsystem:
//   - Paths: data/log directories and API bind address
//   - YouTube: video metadata source (credentialed + oEmbed fallback)
//   - TMDB: film catalog search, details, providers, similar titles
//   - LLM: candidate ranking model connection
//   - History: optional local history/saved collections store
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	YouTube YouTube `toml:"youtube"`
	TMDB    TMDB    `toml:"tmdb"`
	LLM     LLM     `toml:"llm"`
	History History `toml:"history"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/reelid/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and secret fields overlaid from the
// environment.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("YOUTUBE_API_KEY")); v != "" && c.YouTube.APIKey == "" {
		c.YouTube.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("TMDB_API_KEY")); v != "" && c.TMDB.APIKey == "" {
		c.TMDB.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("REELID_LLM_API_KEY")); v != "" && c.LLM.APIKey == "" {
		c.LLM.APIKey = v
	}
}

func (c *Config) normalize() error {
	for _, field := range []*string{&c.Paths.DataDir, &c.Paths.LogDir, &c.History.Path} {
		expanded, err := expandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}
	if c.History.Enabled && strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = filepath.Join(c.Paths.DataDir, "history.db")
	}
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")
	c.TMDB.ImageBaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.ImageBaseURL), "/")
	c.YouTube.BaseURL = strings.TrimRight(strings.TrimSpace(c.YouTube.BaseURL), "/")
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("reelid.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the process writes to.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// WriteSample writes the embedded sample configuration to path.
func WriteSample(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o600)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
