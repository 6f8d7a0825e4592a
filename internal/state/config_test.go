package state

import (
	"os"
	"strings"
	"testing"
)

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	t.Parallel()

	paths := NewPaths(t.TempDir())
	cfg, err := LoadConfig(paths)
	if err != nil {
		t.Fatalf("LoadConfig error = %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
	if _, err := os.Stat(paths.ConfigPath()); !os.IsNotExist(err) {
		t.Fatal("LoadConfig should not create the config file")
	}
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	t.Parallel()

	paths := NewPaths(t.TempDir())
	if err := EnsureDir(paths.ConfigRoot()); err != nil {
		t.Fatalf("ensure config root: %v", err)
	}
	body := "api_base_url: https://api.example.com/\nrequest_timeout_seconds: 5\n"
	if err := os.WriteFile(paths.ConfigPath(), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(paths)
	if err != nil {
		t.Fatalf("LoadConfig error = %v", err)
	}
	if cfg.APIBaseURL != "https://api.example.com" {
		t.Fatalf("api_base_url = %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeoutSeconds != 5 {
		t.Fatalf("timeout = %d", cfg.RequestTimeoutSeconds)
	}
	if cfg.RequestsPerSecond != DefaultConfig().RequestsPerSecond {
		t.Fatalf("requests_per_second = %v, want default", cfg.RequestsPerSecond)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	paths := NewPaths(t.TempDir())
	if err := SaveConfig(paths, Config{APIBaseURL: "https://file.example.com", RequestTimeoutSeconds: 10, RequestsPerSecond: 2}); err != nil {
		t.Fatalf("SaveConfig error = %v", err)
	}
	t.Setenv("RESUMEKIT_API_BASE_URL", "https://env.example.com")
	t.Setenv(TokenEnv, "not-config")

	cfg, err := LoadConfig(paths)
	if err != nil {
		t.Fatalf("LoadConfig error = %v", err)
	}
	if cfg.APIBaseURL != "https://env.example.com" {
		t.Fatalf("api_base_url = %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeoutSeconds != 10 || cfg.RequestsPerSecond != 2 {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	paths := NewPaths(t.TempDir())
	if err := EnsureDir(paths.ConfigRoot()); err != nil {
		t.Fatalf("ensure config root: %v", err)
	}
	if err := os.WriteFile(paths.ConfigPath(), []byte("api_base_url: [\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(paths); err == nil || !strings.Contains(err.Error(), "parse") {
		t.Fatalf("error = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults"},
		{name: "empty url", mutate: func(c *Config) { c.APIBaseURL = "" }, wantErr: "api_base_url is required"},
		{name: "relative url", mutate: func(c *Config) { c.APIBaseURL = "/api" }, wantErr: "absolute http(s) URL"},
		{name: "ftp url", mutate: func(c *Config) { c.APIBaseURL = "ftp://host" }, wantErr: "absolute http(s) URL"},
		{name: "zero timeout", mutate: func(c *Config) { c.RequestTimeoutSeconds = 0 }, wantErr: "request_timeout_seconds"},
		{name: "negative rps", mutate: func(c *Config) { c.RequestsPerSecond = -1 }, wantErr: "requests_per_second"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestSaveConfigRejectsInvalid(t *testing.T) {
	t.Parallel()

	paths := NewPaths(t.TempDir())
	if err := SaveConfig(paths, Config{}); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(paths.ConfigPath()); !os.IsNotExist(err) {
		t.Fatal("invalid config was written")
	}
}

func TestSetConfigValueWritesFileOnly(t *testing.T) {
	paths := NewPaths(t.TempDir())
	t.Setenv("RESUMEKIT_REQUESTS_PER_SECOND", "9")

	cfg, err := SetConfigValue(paths, "api_base_url", "https://api.example.com/")
	if err != nil {
		t.Fatalf("SetConfigValue error = %v", err)
	}
	if cfg.APIBaseURL != "https://api.example.com" {
		t.Fatalf("api_base_url = %q", cfg.APIBaseURL)
	}
	if _, err := SetConfigValue(paths, "request_timeout_seconds", "12"); err != nil {
		t.Fatalf("SetConfigValue error = %v", err)
	}

	var saved Config
	if err := LoadYAML(paths.ConfigPath(), &saved); err != nil {
		t.Fatalf("LoadYAML error = %v", err)
	}
	want := Config{APIBaseURL: "https://api.example.com", RequestTimeoutSeconds: 12, RequestsPerSecond: DefaultConfig().RequestsPerSecond}
	if saved != want {
		t.Fatalf("saved = %+v, want %+v", saved, want)
	}
}

func TestSetConfigValueRejectsBadInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{name: "unknown key", key: "token", value: "x", wantErr: "unknown config key"},
		{name: "not a number", key: "request_timeout_seconds", value: "soon", wantErr: "request_timeout_seconds"},
		{name: "zero rate", key: "requests_per_second", value: "0", wantErr: "requests_per_second must be positive"},
		{name: "bad url", key: "api_base_url", value: "localhost:8000", wantErr: "absolute http(s) URL"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			paths := NewPaths(t.TempDir())
			if _, err := SetConfigValue(paths, tt.key, tt.value); err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("SetConfigValue error = %v, want %q", err, tt.wantErr)
			}
			if _, err := os.Stat(paths.ConfigPath()); !os.IsNotExist(err) {
				t.Fatal("invalid value was written")
			}
		})
	}
}
