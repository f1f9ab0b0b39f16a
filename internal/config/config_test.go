package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reelid/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[tmdb]
api_key = "tmdb-key"

[llm]
api_key = "llm-key"
`)

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected resolved existing path %q, got %q (exists=%v)", path, resolved, exists)
	}
	if cfg.TMDB.BaseURL != "https://api.themoviedb.org/3" {
		t.Fatalf("unexpected tmdb base url: %q", cfg.TMDB.BaseURL)
	}
	if cfg.TMDB.WatchRegion != "US" {
		t.Fatalf("unexpected watch region: %q", cfg.TMDB.WatchRegion)
	}
	if cfg.LLM.Candidates != 3 {
		t.Fatalf("unexpected candidate count: %d", cfg.LLM.Candidates)
	}
	if cfg.YouTube.CommentPageSize != 100 {
		t.Fatalf("unexpected comment page size: %d", cfg.YouTube.CommentPageSize)
	}
}

func TestLoadRequiresTMDBKey(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "")
	path := writeConfig(t, `
[llm]
api_key = "llm-key"
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error when tmdb api key missing")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "env-tmdb")
	t.Setenv("REELID_LLM_API_KEY", "env-llm")
	t.Setenv("YOUTUBE_API_KEY", "env-yt")

	path := writeConfig(t, "")
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.TMDB.APIKey != "env-tmdb" || cfg.LLM.APIKey != "env-llm" || cfg.YouTube.APIKey != "env-yt" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestLoadFileWinsOverEnv(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "env-tmdb")
	path := writeConfig(t, `
[tmdb]
api_key = "file-tmdb"

[llm]
api_key = "llm-key"
`)
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.TMDB.APIKey != "file-tmdb" {
		t.Fatalf("expected file value to win, got %q", cfg.TMDB.APIKey)
	}
}

func TestLoadHistoryPathDefaultsUnderDataDir(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "k")
	t.Setenv("REELID_LLM_API_KEY", "k")
	dataDir := t.TempDir()
	path := writeConfig(t, `
[paths]
data_dir = "`+dataDir+`"

[history]
enabled = true
`)
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.History.Path != filepath.Join(dataDir, "history.db") {
		t.Fatalf("unexpected history path: %q", cfg.History.Path)
	}
}

func TestValidateRejectsBadCommentPageSize(t *testing.T) {
	cfg := config.Default()
	cfg.TMDB.APIKey = "k"
	cfg.LLM.APIKey = "k"
	cfg.YouTube.CommentPageSize = 500
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "comment_page_size") {
		t.Fatalf("expected comment_page_size error, got %v", err)
	}
}

func TestValidateRejectsUnknownLogFormat(t *testing.T) {
	cfg := config.Default()
	cfg.TMDB.APIKey = "k"
	cfg.LLM.APIKey = "k"
	cfg.Logging.Format = "yaml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log format")
	}
}

func TestWriteSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.WriteSample(path); err != nil {
		t.Fatalf("WriteSample returned error: %v", err)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(body), "[tmdb]") {
		t.Fatal("sample config missing tmdb section")
	}
}
