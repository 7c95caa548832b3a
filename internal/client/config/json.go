package config

import (
	"encoding/json"
	"os"

	"github.com/AllanOcung/Group-BSE25-1/internal/flagx"
	"github.com/AllanOcung/Group-BSE25-1/internal/timex"
)

// JsonConfig is the on-disk shape. Pointer fields distinguish "absent"
// from zero so a partial file only overrides what it names.
type JsonConfig struct {
	APIURL              *string         `json:"api_url"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	TokenDB             *string         `json:"token_db"`
	LogLevel            *string         `json:"log_level"`
}

// parseJson overlays Config with the file named by -c/-config (or CONFIG).
// It panics on read or decode errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIURL != nil {
		cfg.APIURL = *jc.APIURL
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.TokenDB != nil {
		cfg.TokenDB = *jc.TokenDB
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
