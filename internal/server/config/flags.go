package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/geomap/internal/flagx"
)

// parseFlags overlays selected fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g. ":3000")
//	-d string   PostgreSQL DSN
//	-m string   storage backend: postgres | memory
//	-s string   token signing secret
//	-e string   environment: development | production
//
// Only these flags are read from args (see flagx.FilterArgs), so the
// -c/-config flag consumed by parseJson does not trip the parser.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-m", "-s", "-e"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.Storage, "m", config.Storage, "storage backend (postgres|memory)")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")
	fs.StringVar(&config.Environment, "e", config.Environment, "environment (development|production)")

	return fs.Parse(args)
}
