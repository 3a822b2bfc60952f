package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/todoapp/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-d string   PostgreSQL DSN; empty keeps the in-memory store
//	-s string   JWT HMAC secret key
//	-t int      session token validity, minutes
//	-l string   log backend: slog or zap
//	-o string   allowed CORS origin
//
// Arguments are filtered through flagx.FilterArgs first so that -c/-config
// and unknown flags do not make the parse fail.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-t", "-l", "-o"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.EndpointAddrHTTP, "a", cfg.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	validity := fs.Int("t", int(cfg.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	fs.StringVar(&cfg.LogBackend, "l", cfg.LogBackend, "log backend (slog|zap)")
	fs.StringVar(&cfg.AllowedOrigin, "o", cfg.AllowedOrigin, "allowed CORS origin")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// -t is whole minutes; only an explicit -t replaces a file or env value.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.AccessTokenValidityDuration = time.Duration(*validity) * time.Minute
		}
	})
	return nil
}
