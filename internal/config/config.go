// Package config loads the oboard-mcp configuration record from an
// optional YAML file with environment-variable overrides.
//
// Precedence: environment > file > defaults. A missing config file is
// not an error — most deployments configure purely via the MCP host's
// env block. Loading never fails the process for an absent credential;
// the client reports not-configured at query time instead, so the
// server can still start and explain what is missing.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables recognized by Load.
const (
	EnvBaseURL     = "OBOARD_API_BASE_URL"
	EnvAPIToken    = "OBOARD_API_TOKEN"
	EnvWorkspaceID = "OBOARD_WORKSPACE_ID"
	EnvCacheTTL    = "OBOARD_CACHE_TTL"    // seconds; 0 disables caching
	EnvHTTPTimeout = "OBOARD_HTTP_TIMEOUT" // seconds
	EnvConfigFile  = "OBOARD_CONFIG"       // path to the YAML file
)

const (
	defaultCacheTTL    = time.Hour
	defaultHTTPTimeout = 15 * time.Second
)

// Config is the resolved configuration record consumed by the client.
type Config struct {
	BaseURL     string
	APIToken    string
	WorkspaceID string
	CacheTTL    time.Duration
	HTTPTimeout time.Duration
}

// Configured reports whether the credentials needed for upstream calls
// are present.
func (c Config) Configured() bool {
	return c.APIToken != "" && c.WorkspaceID != ""
}

// fileConfig is the YAML shape. Durations are pointers so an explicit
// `cache_ttl_seconds: 0` (refresh every call) is distinguishable from
// an absent key.
type fileConfig struct {
	BaseURL            string `yaml:"base_url"`
	APIToken           string `yaml:"api_token"`
	WorkspaceID        string `yaml:"workspace_id"`
	CacheTTLSeconds    *int   `yaml:"cache_ttl_seconds"`
	HTTPTimeoutSeconds *int   `yaml:"http_timeout_seconds"`
}

// Load resolves the configuration from the file named by OBOARD_CONFIG
// (if any) and the environment.
func Load() (Config, error) {
	path := os.Getenv(EnvConfigFile)
	return load(path, os.LookupEnv)
}

// load is the testable core of Load: the file path and environment
// lookup are injected.
func load(path string, getenv func(string) (string, bool)) (Config, error) {
	cfg := Config{
		CacheTTL:    defaultCacheTTL,
		HTTPTimeout: defaultHTTPTimeout,
	}

	if path != "" {
		fc, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg.BaseURL = fc.BaseURL
		cfg.APIToken = fc.APIToken
		cfg.WorkspaceID = fc.WorkspaceID
		if fc.CacheTTLSeconds != nil {
			cfg.CacheTTL = time.Duration(*fc.CacheTTLSeconds) * time.Second
		}
		if fc.HTTPTimeoutSeconds != nil {
			cfg.HTTPTimeout = time.Duration(*fc.HTTPTimeoutSeconds) * time.Second
		}
	}

	if v, ok := getenv(EnvBaseURL); ok {
		cfg.BaseURL = v
	}
	if v, ok := getenv(EnvAPIToken); ok {
		cfg.APIToken = v
	}
	if v, ok := getenv(EnvWorkspaceID); ok {
		cfg.WorkspaceID = v
	}
	if v, ok := getenv(EnvCacheTTL); ok {
		seconds, err := strconv.Atoi(v)
		if err != nil || seconds < 0 {
			return Config{}, fmt.Errorf("config: %s must be a non-negative number of seconds, got %q", EnvCacheTTL, v)
		}
		cfg.CacheTTL = time.Duration(seconds) * time.Second
	}
	if v, ok := getenv(EnvHTTPTimeout); ok {
		seconds, err := strconv.Atoi(v)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("config: %s must be a positive number of seconds, got %q", EnvHTTPTimeout, v)
		}
		cfg.HTTPTimeout = time.Duration(seconds) * time.Second
	}

	if !cfg.Configured() {
		slog.Warn("oboard credentials incomplete; queries will report not-configured",
			"have_token", cfg.APIToken != "",
			"have_workspace", cfg.WorkspaceID != "")
	}

	return cfg, nil
}

// readFile decodes one YAML config file. Unknown keys are rejected so
// typos surface at startup instead of silently doing nothing.
func readFile(path string) (*fileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	fc, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return fc, nil
}

// decode parses a YAML config from r. Split out so tests can feed
// string literals.
func decode(r io.Reader) (*fileConfig, error) {
	fc := &fileConfig{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(fc); err != nil {
		if err == io.EOF {
			return &fileConfig{}, nil
		}
		return nil, err
	}
	return fc, nil
}
