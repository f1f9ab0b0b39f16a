package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateYouTube(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTMDB() error {
	if strings.TrimSpace(c.TMDB.APIKey) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/reelid/config.toml"
		}
		return fmt.Errorf("tmdb.api_key is required. Set TMDB_API_KEY env var or edit %s (create with 'reelid config init')", defaultPath)
	}
	if c.TMDB.BaseURL == "" {
		return errors.New("tmdb.base_url must be set")
	}
	if c.TMDB.RequestsPerSecond <= 0 {
		return errors.New("tmdb.requests_per_second must be positive")
	}
	return nil
}

func (c *Config) validateLLM() error {
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return errors.New("llm.api_key is required. Set REELID_LLM_API_KEY env var or add it to the config file")
	}
	if c.LLM.BaseURL == "" {
		return errors.New("llm.base_url must be set")
	}
	if c.LLM.Model == "" {
		return errors.New("llm.model must be set")
	}
	if c.LLM.Candidates <= 0 {
		return errors.New("llm.candidates must be positive")
	}
	return nil
}

func (c *Config) validateYouTube() error {
	// An empty api_key is fine: the aggregator falls back to oEmbed.
	if c.YouTube.BaseURL == "" {
		return errors.New("youtube.base_url must be set")
	}
	if c.YouTube.OEmbedURL == "" {
		return errors.New("youtube.oembed_url must be set")
	}
	if c.YouTube.CommentPageSize <= 0 || c.YouTube.CommentPageSize > 100 {
		return errors.New("youtube.comment_page_size must be between 1 and 100")
	}
	return nil
}

func (c *Config) validateHistory() error {
	if !c.History.Enabled {
		return nil
	}
	if strings.TrimSpace(c.History.Path) == "" {
		return errors.New("history.path must be set when history is enabled")
	}
	if c.History.MaxEntries <= 0 {
		return errors.New("history.max_entries must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
