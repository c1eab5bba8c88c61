package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/vitibrasil/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-d string   local cache directory
//	-u string   upstream base URL of the category pages
//	-w int      upstream request timeout, seconds
//	-m string   category match mode: prefix | exact
//
// os.Args is filtered with flagx.FilterArgs first so -c/-config and flags of
// other components do not make parsing fail.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-t", "-d", "-u", "-w", "-m"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	fs.StringVar(&config.CacheDir, "d", config.CacheDir, "local cache directory")
	fs.StringVar(&config.SourceBaseURL, "u", config.SourceBaseURL, "upstream base url")
	upstreamTimeout := fs.Int("w", int(config.UpstreamTimeout.Seconds()), "upstream timeout (in seconds)")
	fs.StringVar(&config.CategoryMatch, "m", config.CategoryMatch, "category match mode (prefix|exact)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["t"] {
		config.AccessTokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
	}
	if set["w"] {
		config.UpstreamTimeout = time.Duration(*upstreamTimeout) * time.Second
	}
	return nil
}
