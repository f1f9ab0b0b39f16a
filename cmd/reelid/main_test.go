package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if args == nil {
		// SetArgs(nil) falls back to os.Args, which carries test flags.
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("unexpected output: %q", out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
	if !strings.Contains(string(data), "tmdb") {
		t.Fatalf("sample config missing tmdb section:\n%s", data)
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(target, []byte("# existing\n"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	if _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error without --overwrite")
	}
	if _, err := runCLI(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestIdentifyRequiresURLArgument(t *testing.T) {
	if _, err := runCLI(t, "identify"); err == nil {
		t.Fatal("expected error when url argument missing")
	}
}

func TestRootShowsHelp(t *testing.T) {
	// Root help still resolves configuration, so give it a clean home and
	// the required keys via the environment.
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TMDB_API_KEY", "test")
	t.Setenv("REELID_LLM_API_KEY", "test")

	out, err := runCLI(t)
	if err != nil {
		t.Fatalf("root command: %v", err)
	}
	for _, want := range []string{"identify", "serve", "history", "config"} {
		if !strings.Contains(out, want) {
			t.Fatalf("help output missing %q:\n%s", want, out)
		}
	}
}
