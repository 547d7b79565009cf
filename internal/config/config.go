// Package config loads generator settings from an optional
// .union-generator.yaml, UNIONGEN_* environment variables and command-line
// flags, in increasing order of precedence.
package config

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

const (
	// FileName is the config file looked up in the working directory,
	// without extension.
	FileName = ".union-generator"
	// EnvPrefix prefixes every environment variable.
	EnvPrefix = "UNIONGEN"
)

// Config holds every generator setting.
type Config struct {
	Dir      string   `mapstructure:"dir"`
	Patterns []string `mapstructure:"patterns"`
	// BuildTag is set while loading and negated in generated files.
	BuildTag  string `mapstructure:"tags"`
	Tests     bool   `mapstructure:"tests"`
	Workers   int    `mapstructure:"workers"`
	CacheSize int    `mapstructure:"cache_size"`
	Manifest  string `mapstructure:"manifest"`
	// Debug writes unformatted sidecars for artifacts that fail to format.
	Debug bool `mapstructure:"debug"`

	OptionPackage string `mapstructure:"option_package"`
	ResultPackage string `mapstructure:"result_package"`

	Log   LogConfig   `mapstructure:"log"`
	Watch WatchConfig `mapstructure:"watch"`
}

// LogConfig selects the log encoding and level.
type LogConfig struct {
	Format string `mapstructure:"format"` // console or json
	Level  string `mapstructure:"level"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("dir", "")
	v.SetDefault("patterns", []string{"./..."})
	v.SetDefault("tags", "uniongen")
	v.SetDefault("tests", false)
	v.SetDefault("workers", 0)
	v.SetDefault("cache_size", 512)
	v.SetDefault("manifest", ".union-generator.lock.yaml")
	v.SetDefault("debug", false)
	v.SetDefault("option_package", "union-generator/option")
	v.SetDefault("result_package", "union-generator/result")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.level", "info")
	v.SetDefault("watch.debounce", 300*time.Millisecond)
}

// New returns a viper instance with defaults and environment binding. Flags
// are bound by the caller.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	return v
}

// Load reads the config file into v and decodes the result. An explicit path
// must exist; without one, a missing .union-generator.yaml in dir is fine.
func Load(v *viper.Viper, path, dir string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")

		if dir == "" {
			dir = "."
		}

		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "failed to read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return errors.WithHint(errors.Newf("workers must not be negative, got %d", c.Workers),
			"use 0 to run one worker per CPU")
	}

	if c.Log.Format != "console" && c.Log.Format != "json" {
		return errors.WithHint(errors.Newf("unknown log format %q", c.Log.Format),
			"use console or json")
	}

	if c.BuildTag == "" {
		return errors.New("build tag must not be empty")
	}

	if c.Watch.Debounce < 0 {
		return errors.Newf("watch debounce must not be negative, got %s", c.Watch.Debounce)
	}

	return nil
}
