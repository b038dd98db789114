// Package config provides configuration loading and management for ctvisualizer.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Load parameters
	Load struct {
		// FilePattern filters the input directory for DICOM slice files
		FilePattern string `yaml:"filePattern"`

		// RotationQuarterTurns rotates every slice counter-clockwise this many
		// quarter turns before the volume is assembled
		RotationQuarterTurns int `yaml:"rotationQuarterTurns"`

		// NumWorkers specifies how many goroutines assemble the volume
		NumWorkers int `yaml:"numWorkers"`
	} `yaml:"load"`

	// Display parameters
	Display struct {
		// DefaultWindowMin is the lower bound of the initial display window
		DefaultWindowMin float64 `yaml:"defaultWindowMin"`

		// DefaultWindowMax is the upper bound of the initial display window
		DefaultWindowMax float64 `yaml:"defaultWindowMax"`

		// HistogramBins is the number of bins for intensity histograms
		HistogramBins int `yaml:"histogramBins"`
	} `yaml:"display"`

	// Export parameters
	Export struct {
		// JPEGQuality is the quality setting for exported slice images
		JPEGQuality int `yaml:"jpegQuality"`

		// SlicesDir is the directory slice sequences are exported to
		SlicesDir string `yaml:"slicesDir"`
	} `yaml:"export"`

	// Log parameters
	Log struct {
		// Verbosity controls the level of logging output
		Verbosity int `yaml:"verbosity"`
	} `yaml:"log"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default load parameters
	cfg.Load.FilePattern = "*.dcm"
	cfg.Load.RotationQuarterTurns = 1
	cfg.Load.NumWorkers = runtime.NumCPU() // Use all available cores by default

	// Set default display parameters
	cfg.Display.DefaultWindowMin = 0
	cfg.Display.DefaultWindowMax = 4000
	cfg.Display.HistogramBins = 100

	// Set default export parameters
	cfg.Export.JPEGQuality = 90
	cfg.Export.SlicesDir = "slices"

	// Set default log parameters
	cfg.Log.Verbosity = 0

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
