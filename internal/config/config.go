package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Paths locates the inputs and outputs of a run.
type Paths struct {
	Sentences   string `mapstructure:"sentences"`
	Rules       string `mapstructure:"rules"`
	Expressions string `mapstructure:"expressions"`
	Output      string `mapstructure:"output"`
}

// Loading controls how repository clips are read.
type Loading struct {
	MaxConcurrent  int     `mapstructure:"max_concurrent"`
	ReadsPerSecond float64 `mapstructure:"reads_per_sec"`
	NoAsync        bool    `mapstructure:"no_async"`
}

// Config holds the full application configuration.
type Config struct {
	Paths   Paths   `mapstructure:"paths"`
	Loading Loading `mapstructure:"loading"`

	// Margin is the number of neutral frames appended after the last sign.
	Margin int    `mapstructure:"margin"`
	Format string `mapstructure:"format"`
}

// Default returns a Config with the directory layout of the reference data
// set: dados/dadosEntrada, dados/bancoRegras, dados/repositorioExpressoes.
func Default() *Config {
	return &Config{
		Paths: Paths{
			Sentences:   "dados/dadosEntrada/sentencas.txt",
			Rules:       "dados/bancoRegras/regras.txt",
			Expressions: "dados/repositorioExpressoes",
			Output:      "dados/animacoesProntas",
		},
		Loading: Loading{
			MaxConcurrent: 4,
		},
		Margin: 200,
		Format: "npy",
	}
}

// EnvPrefix prefixes environment overrides, e.g. FACESYNTH_MARGIN or
// FACESYNTH_PATHS_RULES.
const EnvPrefix = "FACESYNTH"

// Load layers defaults, the YAML file at path (skipped when empty) and
// environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("paths.sentences", d.Paths.Sentences)
	v.SetDefault("paths.rules", d.Paths.Rules)
	v.SetDefault("paths.expressions", d.Paths.Expressions)
	v.SetDefault("paths.output", d.Paths.Output)
	v.SetDefault("loading.max_concurrent", d.Loading.MaxConcurrent)
	v.SetDefault("loading.reads_per_sec", d.Loading.ReadsPerSecond)
	v.SetDefault("loading.no_async", d.Loading.NoAsync)
	v.SetDefault("margin", d.Margin)
	v.SetDefault("format", d.Format)
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Margin < 0 {
		return errors.New("margin must be >= 0")
	}
	if c.Loading.MaxConcurrent < 0 {
		return errors.New("loading.max_concurrent must be >= 0")
	}
	if c.Loading.ReadsPerSecond < 0 {
		return errors.New("loading.reads_per_sec must be >= 0")
	}
	switch c.Format {
	case "npy", "msgpack":
	default:
		return fmt.Errorf("format %q: want npy or msgpack", c.Format)
	}
	return nil
}
