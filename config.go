package main

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

const configFileName = ".epdesign.toml"

type Config struct {
	SaveDirectory string  `toml:"save_directory"`
	Display       string  `toml:"display"`
	Width         int     `toml:"width"`
	Height        int     `toml:"height"`
	GridSnap      bool    `toml:"grid_snap"`
	GridSize      int     `toml:"grid_size"`
	FontPath      string  `toml:"font_path"`
	BoldFontPath  string  `toml:"bold_font_path"`
	DriverModule  string  `toml:"driver_module"`
	CodeTarget    string  `toml:"code_target"`
	LogFile       string  `toml:"log_file"`
	Debug         bool    `toml:"debug"`
	PixelPitchMM  float64 `toml:"pixel_pitch_mm"`
	Confirmations bool    `toml:"confirmations"`
}

func defaultConfig() *Config {
	return &Config{
		Display:       displayPresets[0].Name,
		GridSize:      defaultGridSize,
		CodeTarget:    string(TargetPython),
		PixelPitchMM:  0.194,
		Confirmations: true,
	}
}

// loadConfig reads ~/.epdesign.toml. A missing or unreadable file yields the
// defaults.
func loadConfig() *Config {
	home, err := homedir.Dir()
	if err != nil {
		return defaultConfig()
	}
	config, err := loadConfigFile(filepath.Join(home, configFileName))
	if err != nil {
		if !os.IsNotExist(err) {
			logger().Warn("ignoring config file", "err", err)
		}
		return defaultConfig()
	}
	return config
}

func loadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	config := defaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	for _, p := range []*string{&config.SaveDirectory, &config.FontPath, &config.BoldFontPath, &config.LogFile} {
		if *p == "" {
			continue
		}
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return nil, err
		}
		if !filepath.IsAbs(expanded) {
			if abs, err := filepath.Abs(expanded); err == nil {
				expanded = abs
			}
		}
		*p = expanded
	}
	if config.GridSize < 1 {
		config.GridSize = defaultGridSize
	}
	return config, nil
}

// DisplaySize resolves the configured canvas. Explicit width and height win
// over the preset name; unknown presets fall back to the first one.
func (c *Config) DisplaySize() (int, int, error) {
	if c.Width != 0 || c.Height != 0 {
		if err := validateDisplaySize(c.Width, c.Height); err != nil {
			return 0, 0, err
		}
		return c.Width, c.Height, nil
	}
	p, ok := findPreset(c.Display)
	if !ok {
		p = displayPresets[0]
	}
	return p.Width, p.Height, nil
}

// Driver is the waveshare_epd module generated code imports.
func (c *Config) Driver(width, height int) string {
	if c.DriverModule != "" {
		return c.DriverModule
	}
	for _, p := range displayPresets {
		if p.Width == width && p.Height == height {
			return p.Driver
		}
	}
	return displayPresets[0].Driver
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}
