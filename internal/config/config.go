package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds settings shared by the shell and the web front end.
type Config struct {
	// ListenAddr is the address the web front end binds to.
	ListenAddr string `yaml:"listen_addr"`
	// LogLevel is a zap level name such as "info" or "debug".
	LogLevel string `yaml:"log_level"`
	// Seed populates the demo users and orders tables on startup.
	Seed bool `yaml:"seed"`
}

func Default() Config {
	return Config{
		ListenAddr: ":8080",
		LogLevel:   "info",
		Seed:       true,
	}
}

// Load reads a YAML config file, filling omitted settings with defaults.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
