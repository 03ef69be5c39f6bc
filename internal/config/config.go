package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nvup/nvup/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood by Settings.
const (
	KeyReleaseURL  = "release_url"
	KeyDownloadURL = "download_url"
	KeyProduct     = "product"
	KeyBinary      = "binary"
	KeyVersionFlag = "version_flag"
	KeyDest        = "dest"
	KeyAtomic      = "atomic"
	KeyUserAgent   = "user_agent"
)

// Keys lists every supported key in display order.
var Keys = []string{
	KeyReleaseURL,
	KeyDownloadURL,
	KeyProduct,
	KeyBinary,
	KeyVersionFlag,
	KeyDest,
	KeyAtomic,
	KeyUserAgent,
}

// Settings is the resolved configuration for one run.
type Settings struct {
	ReleaseURL  string
	DownloadURL string
	Product     string
	Binary      string
	VersionFlag string
	Dest        string
	Atomic      bool
	UserAgent   string
}

// Dir returns the path to the config directory (~/.nvup/).
// NVUP_HOME overrides it.
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("HOME")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.nvup/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// DefaultDest returns the install path used when neither a flag nor the
// config names one.
func DefaultDest() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Base(branding.DefaultDest())
	}
	return filepath.Join(home, branding.DefaultDest())
}

// Load initializes Viper to read from the config file and environment.
// A missing file is not an error; a file that fails schema validation is.
func Load() error {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyReleaseURL, branding.ReleaseURL())
	viper.SetDefault(KeyDownloadURL, branding.DownloadURL())
	viper.SetDefault(KeyProduct, branding.Product())
	viper.SetDefault(KeyBinary, branding.Binary())
	viper.SetDefault(KeyVersionFlag, branding.VersionFlag())
	viper.SetDefault(KeyDest, DefaultDest())
	viper.SetDefault(KeyAtomic, false)
	viper.SetDefault(KeyUserAgent, branding.CLIName()+"-updater")

	if _, err := os.Stat(FilePath()); err == nil {
		result, err := ValidateFile(FilePath())
		if err != nil {
			return err
		}
		if !result.Valid {
			return fmt.Errorf("invalid config file %s: %s", FilePath(), result.Issues[0])
		}
	}

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
	return nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Current returns the settings after defaults, file and environment have
// been applied.
func Current() Settings {
	return Settings{
		ReleaseURL:  viper.GetString(KeyReleaseURL),
		DownloadURL: viper.GetString(KeyDownloadURL),
		Product:     viper.GetString(KeyProduct),
		Binary:      viper.GetString(KeyBinary),
		VersionFlag: viper.GetString(KeyVersionFlag),
		Dest:        viper.GetString(KeyDest),
		Atomic:      viper.GetBool(KeyAtomic),
		UserAgent:   viper.GetString(KeyUserAgent),
	}
}

// IsKnownKey reports whether key is one of Keys.
func IsKnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Set writes a config key-value pair and saves the config file. Only keys
// already in the file and the one being set are written; defaults and
// environment overrides stay out of it.
func Set(key, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("unknown config key %q", key)
	}

	var typed any = value
	if key == KeyAtomic {
		switch value {
		case "true":
			typed = true
		case "false":
			typed = false
		default:
			return fmt.Errorf("%s must be true or false, got %q", key, value)
		}
	}

	if err := EnsureDir(); err != nil {
		return err
	}

	configFile := FilePath()
	file := viper.New()
	file.SetConfigFile(configFile)
	file.SetConfigType(fileType)
	if _, err := os.Stat(configFile); err == nil {
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}
	file.Set(key, typed)

	if err := file.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	viper.Set(key, typed)
	return nil
}
