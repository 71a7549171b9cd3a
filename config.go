package main

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	SnapThreshold float64 `toml:"snap_threshold"`
	Background    string  `toml:"background"`
	Confirmations bool    `toml:"confirmations"`
	ExportPadding float64 `toml:"export_padding"`
	ExportFile    string  `toml:"export_file"`
}

func defaultConfig() *Config {
	return &Config{
		SnapThreshold: snapThreshold,
		Background:    "dots",
		Confirmations: true,
		ExportPadding: 40,
		ExportFile:    "skein.png",
	}
}

func loadConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return defaultConfig()
	}
	return loadConfigFrom(filepath.Join(homeDir, ".skein.toml"))
}

// loadConfigFrom reads a TOML config over the defaults. A missing or
// malformed file falls back to the defaults silently.
func loadConfigFrom(path string) *Config {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	_ = toml.Unmarshal(data, cfg)
	if cfg.SnapThreshold <= 0 {
		cfg.SnapThreshold = snapThreshold
	}
	if cfg.ExportFile == "" {
		cfg.ExportFile = "skein.png"
	}
	return cfg
}

func (c *Config) backgroundStyle() BackgroundStyle {
	switch c.Background {
	case "grid":
		return BgGrid
	case "blank", "none":
		return BgBlank
	default:
		return BgDots
	}
}
