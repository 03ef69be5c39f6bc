// Package config manages user-level settings stored at ~/.nvup/config.yaml.
// Values can be overridden by NVUP_* environment variables and fall back to
// the defaults baked into the branding package. The file is validated
// against an embedded JSON schema before use.
package config
