// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ik5/scdtool"
)

// Load reads the YAML configuration file at path and returns a validated [Config].
// It is a convenience wrapper around [LoadFromReader] and [Validate].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// An empty document yields the zero Config.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve loads the config named by path, or by $SCDTOOL_CONFIG when path is
// empty, and fills unset fields from the environment. Without either a file
// the zero Config is used.
func Resolve(path string) (*Config, error) {
	if path == "" {
		path = envStr(EnvConfig, "")
	}
	if path == "" {
		return applyEnv(&Config{}), nil
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return applyEnv(cfg), nil
}

func applyEnv(cfg *Config) *Config {
	if cfg.Oggenc.Path == "" {
		cfg.Oggenc.Path = envStr(EnvOggenc, "")
	}
	return cfg
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}

	if cfg.Defaults.Codec != "" {
		if _, err := scdtool.ParseCodec(cfg.Defaults.Codec); err != nil {
			errs = append(errs, fmt.Errorf("defaults.codec: %w", err))
		}
	}

	for i, arg := range cfg.Oggenc.ExtraArgs {
		if arg == "" {
			errs = append(errs, fmt.Errorf("oggenc.extra_args[%d] is empty", i))
		}
	}

	return errors.Join(errs...)
}

// Warning is a config value that is accepted but adjusted before use.
type Warning struct {
	Field string
	Value any
	Msg   string
}

// Warnings lists the values in cfg that will be adjusted. They are returned
// rather than logged so the caller can report them through its own logger.
func Warnings(cfg *Config) []Warning {
	var ws []Warning

	if q := cfg.Defaults.OggQuality; q != nil && scdtool.ClampQuality(*q) != *q {
		ws = append(ws, Warning{
			Field: "defaults.ogg_quality",
			Value: *q,
			Msg:   "value is outside [0, 1] and will be clamped",
		})
	}

	return ws
}
