// Package config loads sandbox settings from TOML or YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/dodeca/inspector"
	"github.com/plus3/dodeca/scene"
)

var ErrUnsupportedFormat = errors.New("unsupported config format")

type Config struct {
	Window    WindowConfig    `toml:"window" yaml:"window"`
	Camera    CameraConfig    `toml:"camera" yaml:"camera"`
	Inspector InspectorConfig `toml:"inspector" yaml:"inspector"`
	Logging   LoggingConfig   `toml:"logging" yaml:"logging"`
}

type WindowConfig struct {
	Title  string `toml:"title" yaml:"title"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
}

type CameraConfig struct {
	MovementSpeed float32 `toml:"movement_speed" yaml:"movement_speed"` // units per second
	RotationSpeed float32 `toml:"rotation_speed" yaml:"rotation_speed"` // degrees per second
	PlaneSize     float32 `toml:"plane_size" yaml:"plane_size"`
}

type InspectorConfig struct {
	Enabled        bool   `toml:"enabled" yaml:"enabled"`
	RotationCommit string `toml:"rotation_commit" yaml:"rotation_commit"` // "live" or "release"
	CopySuffix     string `toml:"copy_suffix" yaml:"copy_suffix"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

// Load reads path over Default. The decoder is chosen by file extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "dodeca",
			Width:  1280,
			Height: 720,
		},
		Camera: CameraConfig{
			MovementSpeed: 2,
			RotationSpeed: 90,
			PlaneSize:     5,
		},
		Inspector: InspectorConfig{
			Enabled:        true,
			RotationCommit: inspector.CommitLive.String(),
			CopySuffix:     inspector.DefaultCopySuffix,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Camera.MovementSpeed < 0 || c.Camera.RotationSpeed < 0 {
		errs = append(errs, errors.New("camera speeds must not be negative"))
	}
	if c.Camera.PlaneSize <= 0 {
		errs = append(errs, fmt.Errorf("plane size %g must be positive", c.Camera.PlaneSize))
	}
	if _, err := inspector.ParseRotationCommit(c.Inspector.RotationCommit); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Commit is the parsed rotation commit mode. Validate has already rejected
// unknown values.
func (c InspectorConfig) Commit() inspector.RotationCommit {
	mode, _ := inspector.ParseRotationCommit(c.RotationCommit)
	return mode
}

// SetupOptions converts the camera section for scene.Setup.
func (c CameraConfig) SetupOptions() scene.SetupOptions {
	return scene.SetupOptions{
		PlaneSize:     c.PlaneSize,
		MovementSpeed: c.MovementSpeed,
		RotationSpeed: mgl32.DegToRad(c.RotationSpeed),
	}
}
