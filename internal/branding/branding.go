// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed. Besides naming, the file carries the defaults for
// the tracked channel: the release page, the asset URL and the binary that
// is checked locally.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	GoModule    string `yaml:"go_module"`
	Product     string `yaml:"product"`
	Binary      string `yaml:"binary"`
	VersionFlag string `yaml:"version_flag"`
	ReleaseURL  string `yaml:"release_url"`
	DownloadURL string `yaml:"download_url"`
	DefaultDest string `yaml:"default_dest"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:     "nvup",
			DisplayName: "nvup",
			Description: "Keep a Neovim nightly install up to date",
			HomeDir:     ".nvup",
			EnvPrefix:   "NVUP",
			GoModule:    "github.com/nvup/nvup",
			Product:     "NVIM",
			Binary:      "nvim",
			VersionFlag: "--version",
			ReleaseURL:  "https://github.com/neovim/neovim/releases/tag/nightly",
			DownloadURL: "https://github.com/neovim/neovim/releases/download/nightly/nvim.appimage",
			DefaultDest: ".local/bin/nvim",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "nvup").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".nvup").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "NVUP").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// Product returns the name printed in front of the version by the tracked
// binary (e.g., "NVIM" in "NVIM v0.10.0-dev-...").
func Product() string { load(); return defaults.Product }

// Binary returns the executable that is queried for the installed version.
func Binary() string { load(); return defaults.Binary }

// VersionFlag returns the flag passed to Binary to print its version.
func VersionFlag() string { load(); return defaults.VersionFlag }

// ReleaseURL returns the nightly release page URL.
func ReleaseURL() string { load(); return defaults.ReleaseURL }

// DownloadURL returns the nightly asset URL.
func DownloadURL() string { load(); return defaults.DownloadURL }

// DefaultDest returns the install path relative to the user's home directory.
func DefaultDest() string { load(); return defaults.DefaultDest }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("dest") → "NVUP_DEST".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
