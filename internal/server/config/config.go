// Package config handles configuration for the download server, including
// defaults, JSON overlay, environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/vitibrasil/internal/catalog"
)

// PlaceholderSecretKey is the development signing key. A warning is logged at
// startup while it is in use.
const PlaceholderSecretKey = "super-secret-key"

// ReferenceCredentials is the plaintext credential table used when no hashed
// table is configured. It is hashed at startup and never logged.
var ReferenceCredentials = map[string]string{
	"user1": "password1",
	"user2": "password2",
}

// Config holds runtime settings for the download server.
//
// Fields:
//   - EndpointAddr: HTTP bind address.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Must be overridden in production.
//   - AccessTokenValidityDuration: lifetime of issued tokens.
//   - CacheDir: directory receiving the local copy of each downloaded CSV.
//   - SourceBaseURL: page the category options are appended to.
//   - UpstreamTimeout: bound on each outbound request (page scrape, file fetch).
//   - CategoryMatch: "prefix" or "exact", see catalog.MatchMode.
//   - Users: user name → bcrypt hash. Empty means ReferenceCredentials.
type Config struct {
	EndpointAddr                string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	CacheDir                    string
	SourceBaseURL               string
	UpstreamTimeout             time.Duration
	CategoryMatch               string
	Users                       map[string]string
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey and the reference credentials are insecure for production.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":5000"
	c.SecretKey = PlaceholderSecretKey
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.CacheDir = "assets"
	c.SourceBaseURL = catalog.DefaultBaseURL
	c.UpstreamTimeout = 30 * time.Second
	c.CategoryMatch = string(catalog.MatchPrefix)
	c.Users = nil
}

// UsesPlaceholderSecret reports whether the development signing key is active.
func (c *Config) UsesPlaceholderSecret() bool {
	return c.SecretKey == PlaceholderSecretKey
}

// Validate checks values that would otherwise fail late at request time.
func (c *Config) Validate() error {
	var errs []error

	if c.EndpointAddr == "" {
		errs = append(errs, errors.New("endpoint address is empty"))
	}
	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key is empty"))
	}
	if c.AccessTokenValidityDuration <= 0 {
		errs = append(errs, fmt.Errorf("access token validity must be positive, got %s", c.AccessTokenValidityDuration))
	}
	if c.UpstreamTimeout <= 0 {
		errs = append(errs, fmt.Errorf("upstream timeout must be positive, got %s", c.UpstreamTimeout))
	}
	if c.CacheDir == "" {
		errs = append(errs, errors.New("cache dir is empty"))
	}
	if _, err := catalog.ParseMatchMode(c.CategoryMatch); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment (and a .env file) and finally
// from command-line flags.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
