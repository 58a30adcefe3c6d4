package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// setRequiredEnv provides the values Validate demands, via the same
// environment path production uses.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("VCATLAS_HTTP_USER_AGENT", "vcatlas-test/1.0")
	t.Setenv("VCATLAS_OPENAI_API_KEY", "sk-test")
	t.Setenv("VCATLAS_INDEX_URL", "demo.weaviate.network")
	t.Setenv("VCATLAS_INDEX_API_KEY", "wv-test")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Fatalf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.RequestTimeoutSeconds != 120 {
		t.Fatalf("RequestTimeoutSeconds = %d, want 120", cfg.Server.RequestTimeoutSeconds)
	}
	if cfg.Index.Class != "VentureCapital" {
		t.Fatalf("Index.Class = %q", cfg.Index.Class)
	}
	if cfg.OpenAI.Model != "gpt-4.1-mini" {
		t.Fatalf("OpenAI.Model = %q", cfg.OpenAI.Model)
	}
	if cfg.HTTP.RespectRobots {
		t.Fatal("RespectRobots should default to false")
	}
	if cfg.Headless.Enabled {
		t.Fatal("Headless.Enabled should default to false")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("VCATLAS_SERVER_PORT", "9090")
	t.Setenv("VCATLAS_OPENAI_MODEL", "gpt-4.1")
	t.Setenv("VCATLAS_HEADLESS_ENABLED", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.OpenAI.Model != "gpt-4.1" {
		t.Fatalf("OpenAI.Model = %q", cfg.OpenAI.Model)
	}
	if !cfg.Headless.Enabled {
		t.Fatal("Headless.Enabled should be true")
	}
}

func TestLoadConfigFile(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("server:\n  port: 7070\nindex:\n  class: Firms\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Fatalf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Index.Class != "Firms" {
		t.Fatalf("Index.Class = %q, want Firms", cfg.Index.Class)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	setRequiredEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := Config{
		Server: ServerConfig{Port: 8080, RequestTimeoutSeconds: 120},
		HTTP:   HTTPConfig{UserAgent: "ua", TimeoutSeconds: 15},
		OpenAI: OpenAIConfig{APIKey: "sk"},
		Index:  IndexConfig{URL: "demo.weaviate.network", APIKey: "wv"},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no port", func(c *Config) { c.Server.Port = 0 }},
		{"no request timeout", func(c *Config) { c.Server.RequestTimeoutSeconds = 0 }},
		{"no user agent", func(c *Config) { c.HTTP.UserAgent = "" }},
		{"no fetch timeout", func(c *Config) { c.HTTP.TimeoutSeconds = 0 }},
		{"no openai key", func(c *Config) { c.OpenAI.APIKey = "" }},
		{"no index url", func(c *Config) { c.Index.URL = "" }},
		{"no index key", func(c *Config) { c.Index.APIKey = "" }},
		{"auth without key", func(c *Config) { c.Auth.Enabled = true }},
		{"headless without parallelism", func(c *Config) { c.Headless.Enabled = true; c.Headless.MaxParallel = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestTimeoutHelpers(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Server: ServerConfig{RequestTimeoutSeconds: 120},
		HTTP:   HTTPConfig{TimeoutSeconds: 15},
	}
	if got := cfg.RequestTimeout(); got != 120*time.Second {
		t.Fatalf("RequestTimeout() = %v", got)
	}
	if got := cfg.FetchTimeout(); got != 15*time.Second {
		t.Fatalf("FetchTimeout() = %v", got)
	}
}
