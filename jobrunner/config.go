package jobrunner

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched, in order, for a runner
// config file. The first one found is used.
var DefaultConfigPaths = []string{
	"cronexpr.yaml",
	"cronexpr.yml",
	"/etc/cronexpr/cronexpr.yaml",
}

// ConfigPathEnvVar overrides the config file search with an explicit
// path.
const ConfigPathEnvVar = "CRONEXPR_CONFIG_PATH"

// Config is the runner's tunable configuration, layered defaults →
// config file → environment variables, highest priority last.
type Config struct {
	Zone                 string        `koanf:"zone"`
	TickerReceiveTimeout time.Duration `koanf:"ticker_receive_timeout"`
	MaxConcurrent        int           `koanf:"max_concurrent"`
	MaxFailures          int           `koanf:"max_failures"`
	ExpressionCacheSize  int           `koanf:"expression_cache_size"`
}

func defaultConfig() *Config {
	return &Config{
		Zone:                 "Local",
		TickerReceiveTimeout: 5 * time.Second,
		MaxConcurrent:        0,
		MaxFailures:          0,
		ExpressionCacheSize:  256,
	}
}

// LoadConfig layers defaults, an optional YAML file, and environment
// variables (prefixed CRONEXPR_) in ascending priority.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("jobrunner: load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("jobrunner: load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider("CRONEXPR_", ".", func(s string) string {
		trimmed := strings.TrimPrefix(s, "CRONEXPR_")
		return strings.ToLower(trimmed)
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("jobrunner: load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("jobrunner: unmarshal config: %w", err)
	}
	return &cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Location resolves c.Zone to a *time.Location, falling back to
// time.Local for the sentinel value "Local" or an empty string.
func (c *Config) Location() (*time.Location, error) {
	if c.Zone == "" || c.Zone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Zone)
}
