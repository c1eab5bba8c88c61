package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv. A .env file in the working
// directory is loaded first; variables already set in the process win.
//
// godotenv expands $NAME in unquoted and double-quoted .env values, so values
// containing "$" (bcrypt hashes, most secrets) must be single-quoted there:
//
//	VITIBRASIL_USERS='user1:$2a$10$...,user2:$2a$10$...'
const (
	EnvEndpointAddr    = "VITIBRASIL_ADDR"
	EnvSecretKey       = "VITIBRASIL_SECRET_KEY"
	EnvTokenValidity   = "VITIBRASIL_TOKEN_VALIDITY"
	EnvCacheDir        = "VITIBRASIL_CACHE_DIR"
	EnvSourceBaseURL   = "VITIBRASIL_SOURCE_BASE_URL"
	EnvUpstreamTimeout = "VITIBRASIL_UPSTREAM_TIMEOUT"
	EnvCategoryMatch   = "VITIBRASIL_CATEGORY_MATCH"

	// EnvUsers holds "name:hash" pairs separated by commas. Hashes are
	// bcrypt, e.g. "$2a$10$...".
	EnvUsers = "VITIBRASIL_USERS"
)

var dotenvFile = ".env"

func parseEnv(config *Config) error {
	if _, err := os.Stat(dotenvFile); err == nil {
		if err := godotenv.Load(dotenvFile); err != nil {
			return fmt.Errorf("load %s: %w", dotenvFile, err)
		}
	}

	strs := map[string]*string{
		EnvEndpointAddr:  &config.EndpointAddr,
		EnvSecretKey:     &config.SecretKey,
		EnvCacheDir:      &config.CacheDir,
		EnvSourceBaseURL: &config.SourceBaseURL,
		EnvCategoryMatch: &config.CategoryMatch,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		EnvTokenValidity:   &config.AccessTokenValidityDuration,
		EnvUpstreamTimeout: &config.UpstreamTimeout,
	}
	for key, dst := range durations {
		v, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
	}

	if v, ok := os.LookupEnv(EnvUsers); ok && v != "" {
		users, err := parseUsers(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvUsers, err)
		}
		config.Users = users
	}

	return nil
}

func parseUsers(s string) (map[string]string, error) {
	users := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, hash, ok := strings.Cut(pair, ":")
		if !ok || name == "" || hash == "" {
			return nil, fmt.Errorf("malformed entry %q, want name:hash", pair)
		}
		if !strings.HasPrefix(hash, "$") {
			return nil, fmt.Errorf("hash of user %q is not a bcrypt hash, single-quote the value in %s", name, dotenvFile)
		}
		users[name] = hash
	}
	return users, nil
}
