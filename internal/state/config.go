package state

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces environment overrides: RESUMEKIT_API_BASE_URL -> api_base_url.
const EnvPrefix = "RESUMEKIT_"

type Config struct {
	APIBaseURL            string  `yaml:"api_base_url" koanf:"api_base_url"`
	RequestTimeoutSeconds int     `yaml:"request_timeout_seconds" koanf:"request_timeout_seconds"`
	RequestsPerSecond     float64 `yaml:"requests_per_second" koanf:"requests_per_second"`
}

func DefaultConfig() Config {
	return Config{
		APIBaseURL:            "http://localhost:8000",
		RequestTimeoutSeconds: 30,
		RequestsPerSecond:     5,
	}
}

func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return errors.New("api_base_url is required")
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_base_url %q must be an absolute http(s) URL", c.APIBaseURL)
	}
	if c.RequestTimeoutSeconds <= 0 {
		return errors.New("request_timeout_seconds must be positive")
	}
	if c.RequestsPerSecond <= 0 {
		return errors.New("requests_per_second must be positive")
	}
	return nil
}

// ConfigKeys lists the settings accepted by SetConfigValue, in file order.
func ConfigKeys() []string {
	return []string{"api_base_url", "request_timeout_seconds", "requests_per_second"}
}

// LoadConfig layers config.yaml (when present) and RESUMEKIT_* variables over the
// defaults. A missing file is not an error and is not created.
func LoadConfig(paths Paths) (Config, error) {
	k, err := loadConfigLayers(paths, true)
	if err != nil {
		return Config{}, err
	}
	return decodeConfig(k)
}

func loadConfigLayers(paths Paths, withEnv bool) (*koanf.Koanf, error) {
	k := koanf.New(".")

	cfgPath := paths.ConfigPath()
	if _, err := os.Stat(cfgPath); err == nil {
		if err := k.Load(file.Provider(cfgPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("parse %s: %w", cfgPath, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat %s: %w", cfgPath, err)
	}

	if !withEnv {
		return k, nil
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		if key == sessionTokenKey {
			return ""
		}
		return key
	}), nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}
	return k, nil
}

func decodeConfig(k *koanf.Koanf) (Config, error) {
	cfg := DefaultConfig()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	return cfg, nil
}

// SetConfigValue updates one key in config.yaml. Environment overrides are not read,
// so they never leak into the file. The file is left untouched when the result is
// invalid.
func SetConfigValue(paths Paths, key, value string) (Config, error) {
	if !slices.Contains(ConfigKeys(), key) {
		return Config{}, fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(ConfigKeys(), ", "))
	}
	k, err := loadConfigLayers(paths, false)
	if err != nil {
		return Config{}, err
	}
	if err := k.Set(key, value); err != nil {
		return Config{}, fmt.Errorf("set %s: %w", key, err)
	}
	cfg, err := decodeConfig(k)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", key, err)
	}
	if err := SaveConfig(paths, cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func SaveConfig(paths Paths, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return SaveYAML(paths.ConfigPath(), cfg)
}
