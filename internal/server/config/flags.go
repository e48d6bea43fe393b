package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/seedshop/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   bind address of the HTTP endpoint
//	-d string   PostgreSQL DSN
//	-k string   JWT signing secret
//	-t int      access token lifetime in minutes
//
// os.Args is filtered to the flags handled here so the config-file flags
// parsed elsewhere do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-k", "-t"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&cfg.EndpointAddr, "a", cfg.EndpointAddr, "bind address of the HTTP endpoint")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "PostgreSQL DSN")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "JWT signing secret")
	ttl := fs.Int("t", int(cfg.AccessTokenValidityDuration.Minutes()), "access token lifetime (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.AccessTokenValidityDuration = time.Duration(*ttl) * time.Minute
}
