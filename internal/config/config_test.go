package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spectroview.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestGetDefaultConfig_Valid(t *testing.T) {
	cfg := GetDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Device.Pixels != 2048 || cfg.Acquisition.Interval != 50*time.Millisecond || cfg.Device.IntegrationMs != 10 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.View.AutoY || !cfg.View.LocalizeMenus {
		t.Fatalf("view defaults: %+v", cfg.View)
	}
}

func TestLoadConfig_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
device:
  pixels: 512
  seed: 42
acquisition:
  interval: 20ms
view:
  auto_y: true
log:
  level: debug
  format: json
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Device.Pixels != 512 || cfg.Device.Seed != 42 {
		t.Fatalf("device %+v", cfg.Device)
	}
	if cfg.Device.WavelengthMin != 350 || cfg.Device.WavelengthMax != 1000 {
		t.Fatalf("missing keys lost their defaults: %+v", cfg.Device)
	}
	if cfg.Acquisition.Interval != 20*time.Millisecond {
		t.Fatalf("interval %v want 20ms", cfg.Acquisition.Interval)
	}
	if !cfg.View.AutoY || cfg.View.XMax != 1100 {
		t.Fatalf("view %+v", cfg.View)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" || cfg.Log.Output != "stdout" {
		t.Fatalf("log %+v", cfg.Log)
	}
}

func TestLoadConfig_ShippedFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "configs", "spectroview.yaml"))
	if err != nil {
		t.Fatalf("load shipped config: %v", err)
	}
	if *cfg != *GetDefaultConfig() {
		t.Fatalf("shipped config drifted from defaults:\n%+v\n%+v", cfg, GetDefaultConfig())
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("missing file should fail")
	}
	if _, err := LoadConfig(writeConfig(t, "device: [1, 2")); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("malformed yaml: err=%v", err)
	}
	if _, err := LoadConfig(writeConfig(t, "device:\n  pixels: 1\n")); err == nil || !strings.Contains(err.Error(), "device.pixels") {
		t.Fatalf("invalid value: err=%v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"pixels", func(c *Config) { c.Device.Pixels = 0 }, "device.pixels"},
		{"wavelengths", func(c *Config) { c.Device.WavelengthMin = 1000 }, "wavelength range"},
		{"integration low", func(c *Config) { c.Device.IntegrationMs = 0.5 }, "integration_ms"},
		{"integration high", func(c *Config) { c.Device.IntegrationMs = 6000 }, "integration_ms"},
		{"interval", func(c *Config) { c.Acquisition.Interval = 0 }, "interval"},
		{"x range", func(c *Config) { c.View.XMin, c.View.XMax = 5, 5 }, "view x range"},
		{"y range", func(c *Config) { c.View.YMax = -1 }, "view y range"},
		{"size", func(c *Config) { c.View.Width = 0 }, "width and height"},
		{"log output", func(c *Config) { c.Log.Output = "syslog" }, "log.output"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err=%v want mention of %q", err, tc.want)
			}
		})
	}
}
