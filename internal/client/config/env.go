package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvServerURL      = "VITIBRASIL_SERVER_URL"
	EnvUsername       = "VITIBRASIL_USERNAME"
	EnvPassword       = "VITIBRASIL_PASSWORD"
	EnvOutputDir      = "VITIBRASIL_OUTPUT_DIR"
	EnvRequestTimeout = "VITIBRASIL_REQUEST_TIMEOUT"
)

var dotenvFile = ".env"

func parseEnv(cfg *Config) error {
	if _, err := os.Stat(dotenvFile); err == nil {
		if err := godotenv.Load(dotenvFile); err != nil {
			return fmt.Errorf("load %s: %w", dotenvFile, err)
		}
	}

	for key, dst := range map[string]*string{
		EnvServerURL: &cfg.ServerURL,
		EnvUsername:  &cfg.Username,
		EnvPassword:  &cfg.Password,
		EnvOutputDir: &cfg.OutputDir,
	} {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv(EnvRequestTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRequestTimeout, err)
		}
		cfg.RequestTimeout = d
	}

	return nil
}
