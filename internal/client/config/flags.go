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
//	-a string   base URL of the shop API
//	-d string   path of the local state database
//	-t int      request timeout in seconds
//
// os.Args is filtered to the flags handled here so the config-file flags
// parsed elsewhere do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the shop API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local state database")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
