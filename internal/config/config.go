package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Integration time bounds in milliseconds, mirrored by the acquisition
// controller.
const (
	minIntegrationMs = 1.0
	maxIntegrationMs = 5000.0
)

type Config struct {
	Device      DeviceConfig      `yaml:"device"`
	Acquisition AcquisitionConfig `yaml:"acquisition"`
	View        ViewConfig        `yaml:"view"`
	Log         LogConfig         `yaml:"log"`
}

type DeviceConfig struct {
	Pixels        int     `yaml:"pixels"`
	WavelengthMin float64 `yaml:"wavelength_min"`
	WavelengthMax float64 `yaml:"wavelength_max"`
	IntegrationMs float64 `yaml:"integration_ms"`
	Seed          uint64  `yaml:"seed"`
}

type AcquisitionConfig struct {
	Interval time.Duration `yaml:"interval"`
}

type ViewConfig struct {
	AutoY         bool    `yaml:"auto_y"`
	XMin          float64 `yaml:"x_min"`
	XMax          float64 `yaml:"x_max"`
	YMin          float64 `yaml:"y_min"`
	YMax          float64 `yaml:"y_max"`
	LocalizeMenus bool    `yaml:"localize_menus"`
	FontPath      string  `yaml:"font_path"`
	Width         float32 `yaml:"width"`
	Height        float32 `yaml:"height"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

// LoadConfig reads path over the defaults, so keys missing from the file
// keep their default values, and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := GetDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// GetDefaultConfig returns the settings used when no file is given.
func GetDefaultConfig() *Config {
	return &Config{
		Device: DeviceConfig{
			Pixels:        2048,
			WavelengthMin: 350,
			WavelengthMax: 1000,
			IntegrationMs: 10,
		},
		Acquisition: AcquisitionConfig{
			Interval: 50 * time.Millisecond,
		},
		View: ViewConfig{
			XMin:          300,
			XMax:          1100,
			YMin:          0,
			YMax:          100,
			LocalizeMenus: true,
			Width:         1100,
			Height:        700,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
	}
}

// Validate returns the first rule the config breaks.
func (c *Config) Validate() error {
	switch {
	case c.Device.Pixels < 2:
		return fmt.Errorf("device.pixels must be at least 2, got %d", c.Device.Pixels)
	case !ordered(c.Device.WavelengthMin, c.Device.WavelengthMax):
		return fmt.Errorf("device wavelength range %g..%g is empty", c.Device.WavelengthMin, c.Device.WavelengthMax)
	case math.IsNaN(c.Device.IntegrationMs) || c.Device.IntegrationMs < minIntegrationMs || c.Device.IntegrationMs > maxIntegrationMs:
		return fmt.Errorf("device.integration_ms must be within %g..%g, got %g", minIntegrationMs, maxIntegrationMs, c.Device.IntegrationMs)
	case c.Acquisition.Interval <= 0:
		return errors.New("acquisition.interval must be positive")
	case !ordered(c.View.XMin, c.View.XMax):
		return fmt.Errorf("view x range %g..%g is empty", c.View.XMin, c.View.XMax)
	case !ordered(c.View.YMin, c.View.YMax):
		return fmt.Errorf("view y range %g..%g is empty", c.View.YMin, c.View.YMax)
	case c.View.Width <= 0 || c.View.Height <= 0:
		return errors.New("view width and height must be positive")
	}
	switch c.Log.Output {
	case "stdout", "file":
	default:
		return fmt.Errorf("log.output must be stdout or file, got %q", c.Log.Output)
	}
	return nil
}

func ordered(lo, hi float64) bool {
	return !math.IsNaN(lo) && !math.IsNaN(hi) && !math.IsInf(lo, 0) && !math.IsInf(hi, 0) && lo < hi
}
