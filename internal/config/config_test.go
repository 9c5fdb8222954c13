package config

import (
	"os"
	"path/filepath"
	"testing"
)

// setTestHome points the loader at a throwaway home directory.
func setTestHome(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	return tmpDir
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"TASKDECK_ADDR", "TASKDECK_DB", "TASKDECK_PREFS", "ANTHROPIC_API_KEY", "TASKDECK_MODEL"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	home := setTestHome(t)
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.DBPath != filepath.Join(home, ".taskdeck", "tasks.db") {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.AnthropicAPIKey != "" {
		t.Errorf("AnthropicAPIKey = %q, want empty", cfg.AnthropicAPIKey)
	}
}

func TestLoadConfigFile(t *testing.T) {
	home := setTestHome(t)
	clearEnv(t)

	dir := filepath.Join(home, ".taskdeck")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	content := "addr: \":9090\"\ndb_path: /tmp/custom.db\nmodel: claude-3-haiku-20240307\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Addr)
	}
	if cfg.DBPath != "/tmp/custom.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.Model != "claude-3-haiku-20240307" {
		t.Errorf("Model = %q", cfg.Model)
	}
	// Untouched keys keep their defaults
	if cfg.PrefsPath != filepath.Join(home, ".taskdeck", "prefs.yaml") {
		t.Errorf("PrefsPath = %q", cfg.PrefsPath)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	home := setTestHome(t)
	clearEnv(t)

	dir := filepath.Join(home, ".taskdeck")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("addr: \":9090\"\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	t.Setenv("TASKDECK_ADDR", ":7070")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Addr != ":7070" {
		t.Errorf("Addr = %q, env must win over file", cfg.Addr)
	}
	if cfg.AnthropicAPIKey != "sk-test" {
		t.Errorf("AnthropicAPIKey = %q", cfg.AnthropicAPIKey)
	}
}
