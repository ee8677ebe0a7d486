// Package config defines the .bytesafe.yaml schema and loads it with
// Viper.
//
// The project file is searched for in the current directory and parent
// directories. A global config at ~/.config/bytesafe/config.yaml provides
// defaults that the project file overrides. All settings are optional;
// commands fall back to built-in defaults when no file exists.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/xcke/bytesafe/pad"
)

// FullFileName is the project-level configuration file name.
const FullFileName = ".bytesafe.yaml"

// GlobalFileName is the name of the global config file.
const GlobalFileName = "config.yaml"

// Config represents the complete .bytesafe.yaml configuration.
type Config struct {
	// Padding is the default padding direction for resize operations:
	// "lsb" (default) or "msb".
	Padding string `mapstructure:"padding" yaml:"padding"`

	// VerifyErase enables constant-time verification after every secure
	// erase performed by the CLI.
	VerifyErase bool `mapstructure:"verify_erase" yaml:"verify_erase"`

	// StrictErase makes a failed erase verification a hard error instead
	// of a warning.
	StrictErase bool `mapstructure:"strict_erase" yaml:"strict_erase"`

	// Audit enables the local audit log of destructive operations.
	Audit bool `mapstructure:"audit" yaml:"audit"`
}

// ValidationError is returned when the config file parses but contains
// semantic errors. Callers use errors.As to distinguish validation
// failures from I/O errors.
type ValidationError struct {
	// Problems lists the individual validation issues found.
	Problems []string
}

// Error returns a human-readable summary of all validation problems.
func (e *ValidationError) Error() string {
	return "invalid config: " + strings.Join(e.Problems, "; ")
}

// Defaults returns a Config populated with default values.
func Defaults() Config {
	return Config{
		Padding:     "lsb",
		VerifyErase: true,
		StrictErase: false,
		Audit:       true,
	}
}

// Direction maps the configured padding string to a pad.Direction.
// Validate guarantees the string is one of the two legal values.
func (c *Config) Direction() pad.Direction {
	if strings.EqualFold(c.Padding, "msb") {
		return pad.MSB
	}
	return pad.LSB
}

// Validate checks that the config is well-formed and returns a
// *ValidationError describing any problems found. Returns nil if valid.
func (c *Config) Validate() error {
	var errs []string

	switch strings.ToLower(c.Padding) {
	case "", "lsb", "msb":
	default:
		errs = append(errs, fmt.Sprintf("padding must be %q or %q, got %q", "lsb", "msb", c.Padding))
	}

	if c.StrictErase && !c.VerifyErase {
		errs = append(errs, "strict_erase requires verify_erase")
	}

	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Problems: errs}
}

// GlobalConfigDir returns the directory for global bytesafe
// configuration. On Unix-like systems this is $XDG_CONFIG_HOME/bytesafe
// (defaulting to ~/.config/bytesafe). On Windows this is
// %APPDATA%/bytesafe. BYTESAFE_CONFIG_DIR overrides everything.
func GlobalConfigDir() string {
	if dir := os.Getenv("BYTESAFE_CONFIG_DIR"); dir != "" {
		return dir
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "bytesafe")
	}
	if runtime.GOOS == "windows" {
		if dir := os.Getenv("APPDATA"); dir != "" {
			return filepath.Join(dir, "bytesafe")
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "bytesafe")
}

// GlobalConfigPath returns the full path to the global config file, or
// an empty string if the home directory cannot be determined.
func GlobalConfigPath() string {
	dir := GlobalConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, GlobalFileName)
}

// Load reads configuration starting from the given directory: built-in
// defaults, overlaid by the global config file if present, overlaid by
// the nearest .bytesafe.yaml found walking upward from startDir. Returns
// the merged config and the directory containing the project file, or an
// empty string when only defaults/global config applied.
func Load(startDir string) (*Config, string, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	if path := GlobalConfigPath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, "", fmt.Errorf("reading global config %s: %w", path, err)
			}
		}
	}

	projectDir := ""
	if dir, err := findConfigDir(startDir); err == nil {
		projectDir = dir
		v.SetConfigFile(filepath.Join(dir, FullFileName))
		if err := v.MergeInConfig(); err != nil {
			return nil, "", fmt.Errorf("reading config %s: %w", filepath.Join(dir, FullFileName), err)
		}
	} else if !errors.Is(err, ErrNotFound) {
		return nil, "", err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, "", fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return cfg, projectDir, nil
}

// LoadFile reads a config from a specific file path, applying defaults
// for unset keys.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers the built-in defaults on a viper instance.
func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("padding", d.Padding)
	v.SetDefault("verify_erase", d.VerifyErase)
	v.SetDefault("strict_erase", d.StrictErase)
	v.SetDefault("audit", d.Audit)
}

// ErrNotFound is returned when no .bytesafe.yaml is found in the
// directory tree.
var ErrNotFound = errors.New("no .bytesafe.yaml found")

// findConfigDir walks from startDir up to the filesystem root looking
// for a .bytesafe.yaml file. Returns the directory containing the file,
// or ErrNotFound if none is found.
func findConfigDir(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path %s: %w", startDir, err)
	}

	for {
		candidate := filepath.Join(dir, FullFileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root.
			return "", ErrNotFound
		}
		dir = parent
	}
}
