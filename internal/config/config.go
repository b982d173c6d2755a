// SPDX-License-Identifier: EPL-2.0

// Package config loads the optional scdtool configuration file and the
// SCDTOOL_* environment variables.
package config

import (
	"log/slog"
	"os"
)

const (
	// EnvConfig names the config file when --config is not given.
	EnvConfig = "SCDTOOL_CONFIG"
	// EnvOggenc overrides the oggenc binary when the config file has none.
	EnvOggenc = "SCDTOOL_OGGENC"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Slog maps l onto a slog level. Empty and unknown levels map to info.
func (l LogLevel) Slog() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Config is the root of the YAML configuration file.
type Config struct {
	LogLevel LogLevel `yaml:"log_level"`

	Oggenc OggencConfig `yaml:"oggenc"`

	// Installations pins game roots instead of searching the default
	// install locations.
	Installations Installations `yaml:"installations"`

	Defaults Defaults `yaml:"defaults"`
}

// OggencConfig describes the external Vorbis encoder.
type OggencConfig struct {
	// Path to the oggenc binary. Empty means oggenc from PATH.
	Path string `yaml:"path"`

	// ExtraArgs are appended to every oggenc invocation.
	ExtraArgs []string `yaml:"extra_args"`
}

// Installations holds one game root per region.
type Installations struct {
	Global string `yaml:"global"`
	China  string `yaml:"china"`
	Korea  string `yaml:"korea"`
}

// Overrides returns the configured roots keyed by region name, leaving out
// empty entries.
func (i Installations) Overrides() map[string]string {
	out := make(map[string]string, 3)
	for region, root := range map[string]string{"global": i.Global, "china": i.China, "korea": i.Korea} {
		if root != "" {
			out[region] = root
		}
	}
	return out
}

// Defaults replace the built-in flag defaults.
type Defaults struct {
	Codec string `yaml:"codec"`

	// OggQuality is a pointer so an explicit 0 is told apart from unset.
	OggQuality *float64 `yaml:"ogg_quality"`
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
