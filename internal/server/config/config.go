// Package config handles configuration for the API server: defaults, an
// optional JSON overlay and command-line flags, applied in that order.
package config

import (
	"strings"
	"time"
)

// Media backends.
const (
	MediaMemory = "memory"
	MediaS3     = "s3"
)

// Log backends.
const (
	LogSlog = "slog"
	LogZap  = "zap"
)

// Config holds runtime settings for the server.
//
// An empty DatabaseDSN selects in-memory repositories, an empty RedisAddr
// an in-memory revocation list.
type Config struct {
	EndpointAddrHTTP             string
	EndpointAddrGRPC             string
	DatabaseDSN                  string
	SecretKey                    string
	AccessTokenValidityDuration  time.Duration
	RefreshTokenValidityDuration time.Duration
	MediaBackend                 string
	S3RootUser                   string
	S3RootPassword               string
	S3Bucket                     string
	S3Region                     string
	S3BaseEndpoint               string
	RedisAddr                    string
	RedisPassword                string
	CORSAllowedOrigins           []string
	LogBackend                   string
	LogLevel                     string
	ShutdownTimeout              time.Duration
}

// LoadDefaults populates Config with development defaults. The secret must
// be overridden outside development.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8001"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 60 * time.Minute
	c.RefreshTokenValidityDuration = 7 * 24 * time.Hour
	c.MediaBackend = MediaMemory
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "media"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.RedisAddr = ""
	c.CORSAllowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	c.LogBackend = LogSlog
	c.LogLevel = "info"
	c.ShutdownTimeout = 10 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

func splitOrigins(s string) []string {
	out := []string{}
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
