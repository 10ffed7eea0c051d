// Package config loads annotizer settings from .annotizer.yaml, ANNOTIZER_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/roach88/annotizer/internal/ident"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "ANNOTIZER"

// DemoConfig fixes the identifiers the demo command uses. Empty means
// generate fresh ones.
type DemoConfig struct {
	IDA string `mapstructure:"id_a"`
	IDB string `mapstructure:"id_b"`
}

// Config holds all runtime configuration.
type Config struct {
	Format    string     `mapstructure:"format"`
	Verbose   bool       `mapstructure:"verbose"`
	Strict    bool       `mapstructure:"strict"`
	IDVersion int        `mapstructure:"id_version"`
	Demo      DemoConfig `mapstructure:"demo"`
}

// NewViper returns a viper instance reading cfgFile, or .annotizer.yaml from
// the working directory and then the home directory when cfgFile is empty.
// A missing default config file is not an error; a missing explicit one is.
func NewViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".annotizer")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	return v, nil
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("format", "text")
	v.SetDefault("verbose", false)
	v.SetDefault("strict", false)
	v.SetDefault("id_version", 4)
	v.SetDefault("demo.id_a", "")
	v.SetDefault("demo.id_b", "")
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the commands cannot act on.
func (c Config) Validate() error {
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid format %q: must be text or json", c.Format)
	}

	switch c.IDVersion {
	case 4, 7:
	default:
		return fmt.Errorf("invalid id_version %d: must be 4 or 7", c.IDVersion)
	}

	for key, s := range map[string]string{"demo.id_a": c.Demo.IDA, "demo.id_b": c.Demo.IDB} {
		if s == "" {
			continue
		}
		if _, err := ident.Parse(s); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

// Generator returns the identifier generator selected by IDVersion.
func (c Config) Generator() ident.Generator {
	if c.IDVersion == 7 {
		return ident.TimeOrderedGenerator{}
	}
	return ident.RandomGenerator{}
}
