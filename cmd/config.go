package cmd

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ServeConfig holds the settings of the serve subcommand.
type ServeConfig struct {
	Addr           string        `koanf:"addr"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
	BLSAPIKey      string        `koanf:"bls_api_key"`
	NoInflation    bool          `koanf:"no_inflation"`
}

// defaultServeConfig returns the built-in defaults.
func defaultServeConfig() ServeConfig {
	return ServeConfig{
		Addr:           ":8080",
		RequestTimeout: 30 * time.Second,
	}
}

// LoadServeConfig builds the serve configuration by layering, in order of
// precedence (low to high):
//  1. defaults
//  2. YAML file if COMPCHART_CONFIG points at one
//  3. environment variables (prefix COMPCHART_)
func LoadServeConfig() (*ServeConfig, error) {
	k := koanf.New(".")

	if path := os.Getenv("COMPCHART_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// COMPCHART_ADDR, COMPCHART_REQUEST_TIMEOUT, ... map onto the flat
	// koanf keys; underscores are preserved to match the struct tags.
	envProvider := env.Provider("COMPCHART_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "compchart_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := defaultServeConfig()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	if cfg.RequestTimeout <= 0 {
		return nil, errors.New("request_timeout must be positive")
	}
	return &cfg, nil
}
