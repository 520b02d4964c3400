// ABOUTME: Server configuration loading
// ABOUTME: YAML file with defaults for everything but the sample library
package server

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds server configuration
type Config struct {
	Port        int    `yaml:"port"`
	Name        string `yaml:"name"`
	LibraryPath string `yaml:"library"`
	SampleRate  int    `yaml:"sample_rate"`
	WindowSize  int    `yaml:"window_size"`
	EnableMDNS  bool   `yaml:"enable_mdns"`
	UseTUI      bool   `yaml:"tui"`
	Debug       bool   `yaml:"debug"`
}

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() Config {
	return Config{
		Port:       8765,
		Name:       "MeowTalk Server",
		SampleRate: 44100,
		EnableMDNS: true,
	}
}

// LoadConfig reads a YAML configuration file over the defaults
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config: %w", err)
	}

	if config.Port <= 0 || config.Port > 65535 {
		return config, fmt.Errorf("invalid port: %d", config.Port)
	}
	if config.LibraryPath == "" {
		return config, fmt.Errorf("config missing library path")
	}

	return config, nil
}
