package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

const (
	flagConfig   = "config"
	flagServer   = "server"
	flagUsername = "username"
	flagPassword = "password"
	flagOutput   = "output"
	flagTimeout  = "timeout"
)

// Flags binds the client settings to a pflag set, typically the persistent
// flags of the root command.
type Flags struct {
	fs *pflag.FlagSet

	configPath string
	values     Config
}

func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}

	var d Config
	d.LoadDefaults()

	fs.StringVarP(&f.configPath, flagConfig, "c", "", "path to a JSON config file")
	fs.StringVarP(&f.values.ServerURL, flagServer, "s", d.ServerURL, "base URL of the download server")
	fs.StringVarP(&f.values.Username, flagUsername, "u", d.Username, "login user name")
	fs.StringVarP(&f.values.Password, flagPassword, "p", d.Password, "login password, empty to prompt")
	fs.StringVarP(&f.values.OutputDir, flagOutput, "o", d.OutputDir, "directory receiving the CSV files")
	fs.DurationVarP(&f.values.RequestTimeout, flagTimeout, "t", d.RequestTimeout, "timeout of each request to the server")

	return f
}

// Load builds the Config from defaults, JSON, environment and the flags the
// user actually set.
func (f *Flags) Load() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, f.configPath); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	f.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (f *Flags) apply(cfg *Config) {
	set := func(name string, dst *string, v string) {
		if f.fs.Changed(name) {
			*dst = v
		}
	}
	set(flagServer, &cfg.ServerURL, f.values.ServerURL)
	set(flagUsername, &cfg.Username, f.values.Username)
	set(flagPassword, &cfg.Password, f.values.Password)
	set(flagOutput, &cfg.OutputDir, f.values.OutputDir)

	if f.fs.Changed(flagTimeout) {
		cfg.RequestTimeout = f.values.RequestTimeout
	}
}
