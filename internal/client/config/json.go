package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/vitibrasil/internal/timex"
)

// JsonConfig is the on-disk form of Config. Only keys present in the file
// override earlier values.
type JsonConfig struct {
	ServerURL      *string         `json:"server_url"`
	Username       *string         `json:"username"`
	Password       *string         `json:"password"`
	OutputDir      *string         `json:"output_dir"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
}

func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.ServerURL != nil {
		cfg.ServerURL = *jc.ServerURL
	}
	if jc.Username != nil {
		cfg.Username = *jc.Username
	}
	if jc.Password != nil {
		cfg.Password = *jc.Password
	}
	if jc.OutputDir != nil {
		cfg.OutputDir = *jc.OutputDir
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}

	return nil
}
