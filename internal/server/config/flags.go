package config

import (
	"flag"
	"os"

	"github.com/carnetapp/carnet/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g., ":8090")
//	-d string   PostgreSQL DSN
//	-s string   access-key signing secret
//	-mintkey    print a fresh anon access key and exit
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with the config-file flags.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-mintkey"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Addr, "a", config.Addr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "access-key signing secret")
	fs.BoolVar(&config.MintKey, "mintkey", false, "mint an anon access key and exit")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
