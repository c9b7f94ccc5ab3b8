package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the application configuration
type Config struct {
	Session SessionConfig `json:"session"`
	Render  RenderConfig  `json:"render"`
}

// SessionConfig holds configuration for the annotation session
type SessionConfig struct {
	DatasetFile string   `json:"dataset_file"`
	ArchiveDir  string   `json:"archive_dir"`
	Extensions  []string `json:"extensions"`
}

// RenderConfig holds configuration for overlay rendering
type RenderConfig struct {
	Radius        int    `json:"radius"`
	StrokeWidth   int    `json:"stroke_width"`
	OverlayFormat string `json:"overlay_format"`
	Quality       int    `json:"quality"`
	Lossless      bool   `json:"lossless"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Session: SessionConfig{
			DatasetFile: "dataset.json",
			ArchiveDir:  "stached",
			Extensions:  []string{".png", ".bmp", ".jpg", ".JPG"},
		},
		Render: RenderConfig{
			Radius:        10,
			StrokeWidth:   3,
			OverlayFormat: "png",
			Quality:       92,
			Lossless:      false,
		},
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Session.DatasetFile == "" {
		return fmt.Errorf("session.dataset_file cannot be empty")
	}

	if strings.ContainsAny(c.Session.DatasetFile, "/\\") {
		return fmt.Errorf("session.dataset_file must be a bare filename")
	}

	if c.Session.ArchiveDir == "" {
		return fmt.Errorf("session.archive_dir cannot be empty")
	}

	if len(c.Session.Extensions) == 0 {
		return fmt.Errorf("session.extensions cannot be empty")
	}

	for _, ext := range c.Session.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("session.extensions entries must start with a dot: %q", ext)
		}
	}

	if c.Render.Radius < 1 {
		return fmt.Errorf("render.radius must be positive")
	}

	if c.Render.StrokeWidth < 1 {
		return fmt.Errorf("render.stroke_width must be positive")
	}

	if c.Render.Quality < 1 || c.Render.Quality > 100 {
		return fmt.Errorf("render.quality must be between 1 and 100")
	}

	switch c.Render.OverlayFormat {
	case "png", "jpg", "jpeg", "webp":
	default:
		return fmt.Errorf("render.overlay_format must be png, jpg or webp")
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "poselabel", "config.json")
}
