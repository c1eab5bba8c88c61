// Package config loads runtime configuration for the download client.
//
// Sources, lowest precedence first:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file named by --config / -c.
//  3. Environment variables (VITIBRASIL_SERVER_URL, ...), after loading a
//     .env file from the working directory when present.
//  4. Command-line flags that were set explicitly.
//
// JSON example:
//
//	{
//	  "server_url": "http://localhost:5000",
//	  "username": "user1",
//	  "output_dir": "data",
//	  "request_timeout": "2m"
//	}
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Config holds runtime settings for the client.
//
// An empty Password makes the CLI prompt for one on a terminal.
type Config struct {
	ServerURL      string
	Username       string
	Password       string
	OutputDir      string
	RequestTimeout time.Duration
}

// LoadDefaults matches the reference server setup on localhost.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:5000"
	c.Username = "user1"
	c.Password = "password1"
	c.OutputDir = "."
	c.RequestTimeout = 2 * time.Minute
}

func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("server url %q must be absolute", c.ServerURL))
	}
	if c.Username == "" {
		errs = append(errs, errors.New("username is empty"))
	}
	if c.OutputDir == "" {
		errs = append(errs, errors.New("output dir is empty"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout))
	}

	return errors.Join(errs...)
}
