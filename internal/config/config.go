// Package config loads wetfmt settings from a config file, WETFMT_*
// environment variables and built-in defaults, in that order of precedence
// below command-line flags.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/deploymenttheory/go-wetfmt/pkg/app"
	"github.com/deploymenttheory/go-wetfmt/pkg/format"
)

// ConfigName is the config file base name searched for in ConfigPaths
const ConfigName = "wetfmt-config"

// EnvPrefix prefixes environment variable overrides
const EnvPrefix = "WETFMT"

// ConfigPaths are searched in order when no explicit file is given
var ConfigPaths = []string{
	".",
	"./config",
	"$HOME/.wetfmt",
	"/etc/wetfmt",
}

// Config holds defaults applied to commands when flags are not given
type Config struct {
	InputFormat  string `mapstructure:"input_format"`
	OutputFormat string `mapstructure:"output_format"`
	Pretty       bool   `mapstructure:"pretty"`
	Overwrite    bool   `mapstructure:"overwrite"`
	Output       string `mapstructure:"output"`
	Verbose      bool   `mapstructure:"verbose"`
	Quiet        bool   `mapstructure:"quiet"`
}

// Load reads configuration. With an empty path the standard locations are
// searched and a missing file is not an error; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		for _, p := range ConfigPaths {
			v.AddConfigPath(p)
		}
	}

	// Set defaults
	v.SetDefault("input_format", "")
	v.SetDefault("output_format", "")
	v.SetDefault("pretty", false)
	v.SetDefault("overwrite", false)
	v.SetDefault("output", app.OutputTable)
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)

	// Allow environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks format names, the output style and verbosity
func (c *Config) Validate() error {
	if c.Verbose && c.Quiet {
		return errors.New("verbose and quiet cannot both be set")
	}

	for key, name := range map[string]string{
		"input_format":  c.InputFormat,
		"output_format": c.OutputFormat,
	} {
		if name == "" {
			continue
		}
		if _, err := format.FromString(name); err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, name, err)
		}
	}

	if err := app.ValidateOutputFormat(c.Output); err != nil {
		return fmt.Errorf("invalid output: %w", err)
	}
	return nil
}
