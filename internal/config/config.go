// Package config resolves the editor's settings from flags, environment,
// an optional sohconfig.yaml and defaults, in that order of precedence.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "SOHCONFIG"
	FileName  = "sohconfig"

	DefaultINI        = "shipofharkinian.ini"
	DefaultAddr       = "127.0.0.1:8080"
	DefaultAxisMargin = 1200
)

type Config struct {
	INI        string `mapstructure:"ini"`
	Addr       string `mapstructure:"addr"`
	AxisMargin int    `mapstructure:"axis_margin"`
	Tray       bool   `mapstructure:"tray"`
	Verbose    bool   `mapstructure:"verbose"`
}

// AddFlags registers the flags every command reads. Flag names match config
// keys, with "-" in place of "_".
func AddFlags(flags *pflag.FlagSet) {
	flags.String("ini", DefaultINI, "path to the game's configuration file")
	flags.BoolP("verbose", "v", false, "enable debug logging")
}

// AddServeFlags registers the flags only the editor server reads.
func AddServeFlags(flags *pflag.FlagSet) {
	flags.String("addr", DefaultAddr, "HTTP listen address")
	flags.Int("axis-margin", DefaultAxisMargin, "how close to its extreme an axis must move to be captured")
	flags.Bool("tray", runtime.GOOS == "windows", "show a system tray icon")
}

// Load resolves the configuration. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("ini", DefaultINI)
	v.SetDefault("addr", DefaultAddr)
	v.SetDefault("axis_margin", DefaultAxisMargin)
	v.SetDefault("tray", runtime.GOOS == "windows")
	v.SetDefault("verbose", false)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", FileName))
	}
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "error reading config file")
		}
	}

	if flags != nil {
		for key, name := range map[string]string{
			"ini":         "ini",
			"addr":        "addr",
			"axis_margin": "axis-margin",
			"tray":        "tray",
			"verbose":     "verbose",
		} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "error binding flag '%s'", name)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "error decoding config")
	}
	if cfg.AxisMargin <= 0 {
		return nil, errors.Errorf("axis_margin must be positive, got %d", cfg.AxisMargin)
	}
	return cfg, nil
}
