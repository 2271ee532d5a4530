// package config loads and persists viewer settings as a TOML file in the
// user's configuration directory.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/Carmen-Shannon/oxy-view/common"
)

const (
	configDirName = "oxy-view"
	configFile    = "config.toml"
)

// Config holds the persisted viewer settings.
type Config struct {
	// WindowWidth and WindowHeight are the initial window dimensions in pixels.
	WindowWidth  int
	WindowHeight int

	// ShowFPS enables the frames-per-second readout at startup.
	ShowFPS bool

	// VSync synchronizes presentation with the display refresh rate.
	VSync bool

	// ForceFallbackAdapter requests a software GPU adapter, for environments
	// without hardware acceleration.
	ForceFallbackAdapter bool

	// Profiling logs frame-rate and memory statistics once per second.
	Profiling bool
}

// Default returns the configuration used when no config file exists.
//
// Returns:
//   - Config: the default settings
func Default() Config {
	return Config{
		WindowWidth:  1280,
		WindowHeight: 720,
		ShowFPS:      false,
		VSync:        true,
	}
}

// Load reads the configuration file, creating it with defaults when missing.
//
// Returns:
//   - Config: the loaded (or default) settings
//   - error: if the file exists but could not be parsed, or defaults could not be written
func Load() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Default(), err
	}

	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		conf := Default()
		if saveErr := Save(conf); saveErr != nil {
			return conf, saveErr
		}
		return conf, nil
	}

	var conf Config
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return Default(), fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// Hand-edited files may omit the window dimensions; fall back to defaults.
	defaults := Default()
	conf.WindowWidth = common.Coalesce(conf.WindowWidth, defaults.WindowWidth)
	conf.WindowHeight = common.Coalesce(conf.WindowHeight, defaults.WindowHeight)
	return conf, nil
}

// Save writes the configuration to the config file, creating the directory
// if needed.
//
// Parameters:
//   - conf: the settings to persist
//
// Returns:
//   - error: if the file could not be written
func Save(conf Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buffer bytes.Buffer
	if err := toml.NewEncoder(&buffer).Encode(&conf); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, buffer.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

func configPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config directory: %w", err)
	}
	return filepath.Join(base, configDirName, configFile), nil
}
