package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesDefaultFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DROPFLOW_API_URL", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.CLI.MaxPages != 50 || cfg.CLI.Locale != "en-US" {
		t.Errorf("unexpected defaults %+v", cfg.CLI)
	}
	if _, err := os.Stat(filepath.Join(home, ".config", "dropflow", "config.toml")); err != nil {
		t.Errorf("expected config file to be created: %v", err)
	}
}

func TestLoadMergesDefaultsAndEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("DROPFLOW_API_URL", "http://localhost:3000")
	t.Setenv("PORT", "9090")

	dir := filepath.Join(home, ".config", "dropflow")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	data := []byte("[cli]\nmax_pages = 5\n\n[api]\nport = 8081\n")
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.CLI.MaxPages != 5 {
		t.Errorf("expected max_pages 5 from file, got %d", cfg.CLI.MaxPages)
	}
	if cfg.CLI.Locale != "en-US" {
		t.Errorf("expected default locale, got %q", cfg.CLI.Locale)
	}
	if cfg.Database.URL != "postgres://env/db" {
		t.Errorf("expected DATABASE_URL override, got %q", cfg.Database.URL)
	}
	if cfg.CLI.BaseURL != "http://localhost:3000" {
		t.Errorf("expected DROPFLOW_API_URL override, got %q", cfg.CLI.BaseURL)
	}
	if cfg.API.Port != 9090 {
		t.Errorf("expected PORT override, got %d", cfg.API.Port)
	}
}

func TestParseInvalidTOML(t *testing.T) {
	if _, err := Parse([]byte("[cli\nmax_pages = ")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSet(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Set("cli.max_pages", "10"); err != nil || cfg.CLI.MaxPages != 10 {
		t.Errorf("cli.max_pages: %v / %d", err, cfg.CLI.MaxPages)
	}
	if err := cfg.Set("cli.match_rps", "0.5"); err != nil || cfg.CLI.MatchRPS != 0.5 {
		t.Errorf("cli.match_rps: %v / %v", err, cfg.CLI.MatchRPS)
	}
	if err := cfg.Set("logging.level", "debug"); err != nil || cfg.Logging.Level != "debug" {
		t.Errorf("logging.level: %v / %q", err, cfg.Logging.Level)
	}

	for _, bad := range [][2]string{
		{"cli.max_pages", "0"},
		{"api.port", "abc"},
		{"cli.unknown", "x"},
		{"nosuch.key", "x"},
		{"toolong.a.b", "x"},
	} {
		if err := cfg.Set(bad[0], bad[1]); err == nil {
			t.Errorf("expected error for %s=%s", bad[0], bad[1])
		}
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("DROPFLOW_API_URL", "")
	os.Unsetenv("DROPFLOW_API_URL")

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("DROPFLOW_API_URL=http://dotenv:8080\n"), 0644); err != nil {
		t.Fatal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.CLI.BaseURL != "http://dotenv:8080" {
		t.Errorf("expected base URL from .env, got %q", cfg.CLI.BaseURL)
	}
}
