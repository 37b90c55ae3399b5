// Package config loads server settings from defaults, an optional TOML file
// and IMAGE_EDITOR_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ironsheep/image-editor-mcp/internal/crop"
	"github.com/ironsheep/image-editor-mcp/internal/imaging"
)

// EnvPrefix is prepended to every environment override, so log.level is read
// from IMAGE_EDITOR_LOG_LEVEL.
const EnvPrefix = "IMAGE_EDITOR"

// FileName is the config file name without extension.
const FileName = "image-editor"

// Config is the complete server configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Crop    CropConfig    `mapstructure:"crop"`
	Overlay OverlayConfig `mapstructure:"overlay"`
	Export  ExportConfig  `mapstructure:"export"`
}

// LogConfig controls the global logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

// CropConfig tunes the crop selection.
type CropConfig struct {
	MinSize      float64 `mapstructure:"min_size"`
	HitTolerance float64 `mapstructure:"hit_tolerance"`
}

// OverlayConfig styles the selection overlay in previews.
type OverlayConfig struct {
	Color string  `mapstructure:"color"`
	Shade float64 `mapstructure:"shade"`
}

// ExportConfig tunes file export.
type ExportConfig struct {
	JPEGQuality int `mapstructure:"jpeg_quality"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("crop.min_size", crop.DefaultMinSize)
	v.SetDefault("crop.hit_tolerance", crop.DefaultHitTolerance)
	v.SetDefault("overlay.color", "#ffffff")
	v.SetDefault("overlay.shade", 0.5)
	v.SetDefault("export.jpeg_quality", 95)
}

// Load reads the configuration. When path is empty, image-editor.toml is
// looked up in the working directory and then in
// $HOME/.config/image-editor-mcp; a missing file is not an error. An explicit
// path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "image-editor-mcp"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	if c.Crop.MinSize <= 0 {
		return fmt.Errorf("crop.min_size must be positive, got %v", c.Crop.MinSize)
	}
	if c.Crop.HitTolerance <= 0 {
		return fmt.Errorf("crop.hit_tolerance must be positive, got %v", c.Crop.HitTolerance)
	}
	if _, err := imaging.ParseOverlayColor(c.Overlay.Color); err != nil {
		return fmt.Errorf("overlay.color: %w", err)
	}
	if c.Overlay.Shade < 0 || c.Overlay.Shade > 1 {
		return fmt.Errorf("overlay.shade must be within [0,1], got %v", c.Overlay.Shade)
	}
	if c.Export.JPEGQuality < 1 || c.Export.JPEGQuality > 100 {
		return fmt.Errorf("export.jpeg_quality must be within [1,100], got %d", c.Export.JPEGQuality)
	}
	return nil
}

// CropSession returns the crop settings for a new editor.
func (c *Config) CropSession() crop.Config {
	return crop.Config{
		MinSize:      c.Crop.MinSize,
		HitTolerance: c.Crop.HitTolerance,
	}
}

// OverlayStyle returns the preview overlay style.
func (c *Config) OverlayStyle() (imaging.OverlayStyle, error) {
	style := imaging.DefaultOverlayStyle()
	col, err := imaging.ParseOverlayColor(c.Overlay.Color)
	if err != nil {
		return style, err
	}
	style.Color = col
	style.Shade = c.Overlay.Shade
	return style, nil
}

// EncodeOptions returns the export encoder settings.
func (c *Config) EncodeOptions() imaging.EncodeOptions {
	return imaging.EncodeOptions{JPEGQuality: c.Export.JPEGQuality}
}
