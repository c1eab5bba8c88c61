package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/vitibrasil/internal/flagx"
	"github.com/dmitrijs2005/vitibrasil/internal/timex"
)

// JsonConfig is the on-disk form of Config. Durations accept "30s" strings or
// integer nanoseconds. Only fields present in the file override Config.
type JsonConfig struct {
	EndpointAddr                *string           `json:"endpoint_addr"`
	SecretKey                   *string           `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration   `json:"access_token_validity_duration"`
	CacheDir                    *string           `json:"cache_dir"`
	SourceBaseURL               *string           `json:"source_base_url"`
	UpstreamTimeout             *timex.Duration   `json:"upstream_timeout"`
	CategoryMatch               *string           `json:"category_match"`
	Users                       map[string]string `json:"users"`
}

// parseJson overlays config with the file named by -c or -config, if any.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var c JsonConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if c.EndpointAddr != nil {
		config.EndpointAddr = *c.EndpointAddr
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.CacheDir != nil {
		config.CacheDir = *c.CacheDir
	}
	if c.SourceBaseURL != nil {
		config.SourceBaseURL = *c.SourceBaseURL
	}
	if c.UpstreamTimeout != nil {
		config.UpstreamTimeout = c.UpstreamTimeout.Duration
	}
	if c.CategoryMatch != nil {
		config.CategoryMatch = *c.CategoryMatch
	}
	if len(c.Users) > 0 {
		config.Users = c.Users
	}

	return nil
}
