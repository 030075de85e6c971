package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/banksim/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-e int      session validity, minutes
//	-t int      access token validity, minutes
//	-i int      password hash iterations policy
//	-w int      accepted trailing OTAC windows
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration
// flags are accepted as integers in minutes.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-e", "-t", "-i", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	sessionValidity := fs.Int("e", int(config.SessionValidityDuration.Minutes()), "session validity (in minutes)")
	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")

	fs.IntVar(&config.PasswordHashIterations, "i", config.PasswordHashIterations, "password hash iterations policy")
	fs.IntVar(&config.OtacStepWindow, "w", config.OtacStepWindow, "accepted trailing OTAC windows")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionValidityDuration = time.Duration(*sessionValidity) * time.Minute
	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
}
