package config

import (
	"flag"
	"os"
	"time"

	"github.com/vaultkeep/vaultkeep/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-t int      token TTL, minutes
//	-w int      sweep interval, minutes
//
// The args are first filtered to only the flags handled here via
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")

	tokenTTL := fs.Int("t", int(config.TokenTTL.Minutes()), "token TTL (in minutes)")
	sweepInterval := fs.Int("w", int(config.SweepInterval.Minutes()), "token sweep interval (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenTTL = time.Duration(*tokenTTL) * time.Minute
	config.SweepInterval = time.Duration(*sweepInterval) * time.Minute
}
