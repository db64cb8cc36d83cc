// Package config loads CLI settings from axolotl.yaml, AXOLOTL_* environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// FileName is looked up in the working directory when no file is given.
	FileName  = "axolotl"
	EnvPrefix = "AXOLOTL"
)

type Config struct {
	Schema Schema `mapstructure:"schema"`
	Models Models `mapstructure:"models"`
	Log    Log    `mapstructure:"log"`
	Otel   Otel   `mapstructure:"otel"`
}

type Schema struct {
	// Sources are SDL files or directories composed in order.
	Sources []string `mapstructure:"sources"`
	Output  string   `mapstructure:"output"`
}

type Models struct {
	// Schema is the composed schema models are generated from.
	Schema  string   `mapstructure:"schema"`
	Output  string   `mapstructure:"output"`
	Scalars []Scalar `mapstructure:"scalars"`
}

// Scalar maps a GraphQL scalar to a TypeScript type. Scalars are a list
// rather than a map because viper lowercases map keys.
type Scalar struct {
	Name string `mapstructure:"name"`
	Type string `mapstructure:"type"`
}

// ScalarTypes returns the scalar mapping keyed by scalar name.
func (m Models) ScalarTypes() map[string]string {
	out := make(map[string]string, len(m.Scalars))
	for _, s := range m.Scalars {
		out[s.Name] = s.Type
	}
	return out
}

type Log struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type Otel struct {
	Endpoint string `mapstructure:"endpoint"`
	Service  string `mapstructure:"service"`
}

func defaults(v *viper.Viper) {
	v.SetDefault("schema.sources", []string{"schema"})
	v.SetDefault("schema.output", "schema.graphql")
	v.SetDefault("models.schema", "schema.graphql")
	v.SetDefault("models.output", "models.ts")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("otel.endpoint", "")
	v.SetDefault("otel.service", "axolotl")
}

// Load reads the configuration. file may be empty, in which case an optional
// axolotl.yaml in the working directory is used. flags, when non-nil, are
// bound by their dotted names (e.g. "schema.output").
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	defaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			if strings.Contains(f.Name, ".") {
				bindErr = errors.Join(bindErr, v.BindPFlag(f.Name, f))
			}
		})
		if bindErr != nil {
			return nil, fmt.Errorf("bind flags: %w", bindErr)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}
