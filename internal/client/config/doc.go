// Package config loads runtime configuration for the portfolio CLI.
//
// Sources & precedence
//
//  1. A .env file in the working directory, loaded into the environment.
//  2. Built-in defaults (see (*Config).LoadDefaults). The API URL is taken
//     from API_URL; failing that, APP_ENV=production selects the staging
//     backend when the host name contains "staging" or "deploy-preview"
//     and the production backend otherwise; failing that, the local
//     development server.
//  3. Optional JSON file selected via -c/-config or the CONFIG variable.
//  4. Command-line flags, which override everything else.
//
// # JSON schema
//
// Durations use timex.Duration, so "5s" and 5000000000 are equivalent:
//
//	{
//	  "api_url": "http://127.0.0.1:8001/api",
//	  "online_check_interval": "5s",
//	  "request_timeout": "15s",
//	  "token_db": "/home/me/.config/portfolio-cli/session.db",
//	  "log_level": "warn"
//	}
package config
