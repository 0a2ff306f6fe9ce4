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
//	-u string   row-store base URL (e.g., "http://localhost:8090")
//	-k string   access key
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.StoreURL, "u", config.StoreURL, "row-store base URL")
	fs.StringVar(&config.StoreKey, "k", config.StoreKey, "row-store access key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
