package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AllanOcung/Group-BSE25-1/internal/filex"
	"github.com/joho/godotenv"
)

// Known backends.
const (
	LocalAPIURL      = "http://127.0.0.1:8001/api"
	StagingAPIURL    = "https://backend-staging.onrender.com/api"
	ProductionAPIURL = "https://group-bse25-1-1-prod.onrender.com/api"
)

const appDirName = "portfolio-cli"

// Config holds runtime settings for the CLI.
type Config struct {
	APIURL              string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	// TokenDB is the SQLite file holding the session tokens. Empty keeps
	// tokens in memory only.
	TokenDB  string
	LogLevel string
}

// Seams for tests.
var (
	getenv     = os.Getenv
	hostname   = os.Hostname
	loadDotEnv = func() { _ = godotenv.Load() }
)

// LoadDefaults populates c with defaults; the API URL comes from the
// environment (see resolveAPIURL).
func (c *Config) LoadDefaults() {
	c.APIURL = resolveAPIURL()
	c.OnlineCheckInterval = 5 * time.Second
	c.RequestTimeout = 15 * time.Second
	c.TokenDB = defaultTokenDB()
	c.LogLevel = "warn"
}

// resolveAPIURL picks the backend: API_URL wins; in production the host
// name decides between staging and production; otherwise the local server.
func resolveAPIURL() string {
	if u := strings.TrimSpace(getenv("API_URL")); u != "" {
		return u
	}
	if getenv("APP_ENV") == "production" {
		host, _ := hostname()
		if strings.Contains(host, "deploy-preview") || strings.Contains(host, "staging") {
			return StagingAPIURL
		}
		return ProductionAPIURL
	}
	return LocalAPIURL
}

func defaultTokenDB() string {
	dir, err := filex.DataDir(appDirName)
	if err != nil {
		return "session.db"
	}
	return filepath.Join(dir, "session.db")
}

// LoadConfig builds a Config from .env, defaults, the optional JSON file
// and flags. Later sources take precedence.
func LoadConfig() *Config {
	loadDotEnv()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
