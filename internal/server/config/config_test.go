package config

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Setenv("CONFIG", "")
	flag.CommandLine = flag.NewFlagSet(args[0], flag.PanicOnError)
	os.Args = args
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8001", c.EndpointAddrHTTP)
	assert.Empty(t, c.DatabaseDSN, "memory storage by default")
	assert.Equal(t, 60*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, 7*24*time.Hour, c.RefreshTokenValidityDuration)
	assert.Equal(t, MediaMemory, c.MediaBackend)
	assert.Equal(t, LogSlog, c.LogBackend)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd",
				"-a", ":9000", "-g", ":9001", "-d", "postgres://db", "-s", "secret", "-t", "5", "-r", "60",
				"-m", "s3", "-u", "user", "-p", "password", "-b", "bucket", "-region", "eu-west-1", "-e", "http://minio:9000",
				"-redis", "redis:6379", "-cors", "http://a.example, http://b.example", "-l", "zap", "-level", "debug",
			},
			expected: &Config{
				EndpointAddrHTTP:             ":9000",
				EndpointAddrGRPC:             ":9001",
				DatabaseDSN:                  "postgres://db",
				SecretKey:                    "secret",
				AccessTokenValidityDuration:  5 * time.Minute,
				RefreshTokenValidityDuration: time.Hour,
				MediaBackend:                 MediaS3,
				S3RootUser:                   "user",
				S3RootPassword:               "password",
				S3Bucket:                     "bucket",
				S3Region:                     "eu-west-1",
				S3BaseEndpoint:               "http://minio:9000",
				RedisAddr:                    "redis:6379",
				CORSAllowedOrigins:           []string{"http://a.example", "http://b.example"},
				LogBackend:                   LogZap,
				LogLevel:                     "debug",
			},
		},
		{name: "unknown flags are ignored", args: []string{"cmd", "-x", "1", "-c", "cfg.json"}, expected: &Config{}},
		{name: "bad minutes", args: []string{"cmd", "-t", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			cfg := &Config{}
			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg) })
				return
			}
			require.NotPanics(t, func() { parseFlags(cfg) })
			if diff := cmp.Diff(tt.expected, cfg, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseJson(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"endpoint_addr_http":             ":7000",
		"database_dsn":                   "",
		"secret_key":                     "from-json",
		"access_token_validity_duration": "15m",
		"media_backend":                  "s3",
		"redis_password":                 "pw",
		"cors_allowed_origins":           []string{"https://site.example"},
		"shutdown_timeout":               3000000000,
	})

	t.Run("overlays named keys only", func(t *testing.T) {
		setArgs(t, "cmd", "-c", path)

		cfg := &Config{}
		cfg.LoadDefaults()
		cfg.DatabaseDSN = "postgres://default"
		parseJson(cfg)

		assert.Equal(t, ":7000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "", cfg.DatabaseDSN, "explicit empty value is honoured")
		assert.Equal(t, "from-json", cfg.SecretKey)
		assert.Equal(t, 15*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenValidityDuration)
		assert.Equal(t, MediaS3, cfg.MediaBackend)
		assert.Equal(t, "pw", cfg.RedisPassword)
		assert.Equal(t, []string{"https://site.example"}, cfg.CORSAllowedOrigins)
		assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
		assert.Equal(t, ":50051", cfg.EndpointAddrGRPC)
	})

	t.Run("no file", func(t *testing.T) {
		setArgs(t, "cmd")
		cfg := &Config{SecretKey: "keep"}
		parseJson(cfg)
		assert.Equal(t, "keep", cfg.SecretKey)
	})

	t.Run("missing file panics", func(t *testing.T) {
		setArgs(t, "cmd", "-config", filepath.Join(t.TempDir(), "nope.json"))
		assert.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("bad json panics", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
		setArgs(t, "cmd", "-c", bad)
		assert.Panics(t, func() { parseJson(&Config{}) })
	})
}

func TestLoadConfig_FlagsWinOverJSON(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"secret_key": "json", "endpoint_addr_grpc": ":1"})
	setArgs(t, "cmd", "-c", path, "-s", "flag")

	cfg := LoadConfig()
	assert.Equal(t, "flag", cfg.SecretKey)
	assert.Equal(t, ":1", cfg.EndpointAddrGRPC)
}
