package config

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// defaultConfigYAML documents every configuration key with its default value
//
//go:embed default_config.yaml
var defaultConfigYAML []byte

// DefaultConfigYAML returns the embedded, commented default configuration
func DefaultConfigYAML() string {
	return string(defaultConfigYAML)
}

// LoadDefaultConfig parses the embedded default config and returns the full Config struct
func LoadDefaultConfig() (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultConfigYAML, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse embedded defaults: %w", err)
	}
	return &cfg, nil
}
