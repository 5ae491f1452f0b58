package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config represents gbasm's loadable defaults: the CLI flags in main.go
// override whatever this file sets, which in turn overrides DefaultConfig.
type Config struct {
	// Output settings
	Output struct {
		ROMPath    string `toml:"rom_path"`
		SymbolPath string `toml:"symbol_path"`
		MapPath    string `toml:"map_path"`
		JSONPath   string `toml:"json_path"`
	} `toml:"output"`

	// Optimize settings
	Optimize struct {
		Enable      bool `toml:"enable"`
		AllowUnsafe bool `toml:"allow_unsafe"`
	} `toml:"optimize"`

	// Diagnostics settings
	Diagnostics struct {
		Silent       bool `toml:"silent"`
		Verbose      bool `toml:"verbose"`
		ReportUnused bool `toml:"report_unused"`
	} `toml:"diagnostics"`

	// Include settings
	Include struct {
		BaseDir string `toml:"base_dir"`
	} `toml:"include"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Output.ROMPath = "game.gb"
	cfg.Output.SymbolPath = ""
	cfg.Output.MapPath = ""
	cfg.Output.JSONPath = ""

	cfg.Optimize.Enable = false
	cfg.Optimize.AllowUnsafe = false

	cfg.Diagnostics.Silent = false
	cfg.Diagnostics.Verbose = false
	cfg.Diagnostics.ReportUnused = false

	cfg.Include.BaseDir = "."

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "gbasm")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "gbasm.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "gbasm")

	default:
		return "gbasm.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "gbasm.toml"
	}

	return filepath.Join(configDir, "gbasm.toml")
}

// GetLogPath returns the platform-specific directory for diagnostic output
// (the -verbose diagnostic log).
func GetLogPath() string {
	var logDir string

	switch runtime.GOOS {
	case "windows":
		logDir = os.Getenv("APPDATA")
		if logDir == "" {
			logDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		logDir = filepath.Join(logDir, "gbasm", "logs")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "logs"
		}
		logDir = filepath.Join(homeDir, ".local", "share", "gbasm", "logs")

	default:
		return "logs"
	}

	if err := os.MkdirAll(logDir, 0750); err != nil {
		return "logs"
	}

	return logDir
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file. A missing file is
// not an error - it just means the defaults stand.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file.
func (c *Config) SaveTo(path string) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close config file: %w", closeErr)
		}
	}()

	encoder := toml.NewEncoder(f)
	if encodeErr := encoder.Encode(c); encodeErr != nil {
		return fmt.Errorf("failed to encode config: %w", encodeErr)
	}

	return nil
}
