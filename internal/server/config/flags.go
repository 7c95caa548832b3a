package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/AllanOcung/Group-BSE25-1/internal/flagx"
)

var serverFlags = []string{
	"-a", "-g", "-d", "-s", "-t", "-r", "-m", "-u", "-p", "-b", "-region", "-e", "-redis", "-cors", "-l", "-level",
}

// parseFlags overlays Config with command-line flags:
//
//	-a string       HTTP bind address (":8001")
//	-g string       gRPC health bind address (":50051")
//	-d string       PostgreSQL DSN, empty for in-memory storage
//	-s string       JWT HMAC secret key
//	-t int          access token validity, minutes
//	-r int          refresh token validity, minutes
//	-m string       media backend (memory, s3)
//	-u, -p string   S3 access key and secret
//	-b string       S3 bucket
//	-region string  S3 region
//	-e string       S3 base endpoint
//	-redis string   Redis address, empty for in-memory revocation
//	-cors string    comma-separated allowed origins
//	-l string       log backend (slog, zap)
//	-level string   log level
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC health address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	refreshTokenValidityDuration := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh token validity (in minutes)")

	fs.StringVar(&config.MediaBackend, "m", config.MediaBackend, "media backend (memory, s3)")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "region", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.RedisAddr, "redis", config.RedisAddr, "redis address")

	cors := fs.String("cors", strings.Join(config.CORSAllowedOrigins, ","), "allowed CORS origins, comma-separated")

	fs.StringVar(&config.LogBackend, "l", config.LogBackend, "log backend (slog, zap)")
	fs.StringVar(&config.LogLevel, "level", config.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	config.RefreshTokenValidityDuration = time.Duration(*refreshTokenValidityDuration) * time.Minute
	config.CORSAllowedOrigins = splitOrigins(*cors)
}
