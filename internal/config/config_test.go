package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oboard.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_DefaultsWithNoFileAndNoEnv(t *testing.T) {
	cfg, err := load("", noEnv)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.CacheTTL != time.Hour {
		t.Errorf("CacheTTL = %v, want 1h", cfg.CacheTTL)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Errorf("HTTPTimeout = %v, want 15s", cfg.HTTPTimeout)
	}
	if cfg.Configured() {
		t.Error("empty config reports configured")
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfigFile(t, strings.Join([]string{
		"base_url: https://example.test/api/v3",
		"api_token: file-token",
		"workspace_id: \"42\"",
		"cache_ttl_seconds: 120",
	}, "\n"))

	cfg, err := load(path, noEnv)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.BaseURL != "https://example.test/api/v3" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.APIToken != "file-token" || cfg.WorkspaceID != "42" {
		t.Errorf("credentials = (%q, %q)", cfg.APIToken, cfg.WorkspaceID)
	}
	if cfg.CacheTTL != 2*time.Minute {
		t.Errorf("CacheTTL = %v, want 2m", cfg.CacheTTL)
	}
	if !cfg.Configured() {
		t.Error("file-configured record reports not configured")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "api_token: file-token\nworkspace_id: \"1\"\n")

	cfg, err := load(path, envMap(map[string]string{
		EnvAPIToken:    "env-token",
		EnvWorkspaceID: "99",
		EnvCacheTTL:    "0",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.APIToken != "env-token" || cfg.WorkspaceID != "99" {
		t.Errorf("env did not win: (%q, %q)", cfg.APIToken, cfg.WorkspaceID)
	}
	if cfg.CacheTTL != 0 {
		t.Errorf("CacheTTL = %v, want 0 (refresh every call)", cfg.CacheTTL)
	}
}

func TestLoad_ExplicitZeroTTLInFile(t *testing.T) {
	path := writeConfigFile(t, "cache_ttl_seconds: 0\n")

	cfg, err := load(path, noEnv)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.CacheTTL != 0 {
		t.Errorf("CacheTTL = %v, want 0 from explicit file value", cfg.CacheTTL)
	}
}

func TestLoad_RejectsUnknownYAMLKeys(t *testing.T) {
	path := writeConfigFile(t, "api_tokn: oops\n")

	if _, err := load(path, noEnv); err == nil {
		t.Fatal("misspelled key did not fail loading")
	}
}

func TestLoad_RejectsBadTTLEnv(t *testing.T) {
	for _, bad := range []string{"abc", "-5", "1.5"} {
		_, err := load("", envMap(map[string]string{EnvCacheTTL: bad}))
		if err == nil {
			t.Errorf("%s=%q did not fail loading", EnvCacheTTL, bad)
		}
	}
}

func TestLoad_MissingFileIsAnError(t *testing.T) {
	if _, err := load(filepath.Join(t.TempDir(), "nope.yaml"), noEnv); err == nil {
		t.Fatal("explicitly named missing config file did not fail loading")
	}
}

func TestLoad_EmptyFileKeepsDefaults(t *testing.T) {
	path := writeConfigFile(t, "")

	cfg, err := load(path, noEnv)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.CacheTTL != time.Hour {
		t.Errorf("CacheTTL = %v, want default 1h", cfg.CacheTTL)
	}
}
