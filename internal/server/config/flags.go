package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/todolist/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN
//	-m string   store backend: postgres or memory
//	-l string   log format: json or text
//	-v string   log level
//	-q float    requests per second per peer (0 disables)
//	-k int      rate limiter burst
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-i int      backup interval, minutes (0 disables)
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-m", "-l", "-v", "-q", "-k", "-u", "-p", "-b", "-g", "-e", "-i"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.StoreType, "m", config.StoreType, "store backend (postgres|memory)")
	fs.StringVar(&config.LogFormat, "l", config.LogFormat, "log format (json|text)")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")
	fs.Float64Var(&config.RateLimit, "q", config.RateLimit, "requests per second per peer")
	fs.IntVar(&config.RateBurst, "k", config.RateBurst, "rate limiter burst")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	backupInterval := fs.Int("i", int(config.BackupInterval.Minutes()), "backup interval (in minutes)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.BackupInterval = time.Duration(*backupInterval) * time.Minute
	return nil
}
