package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures environment driven configuration values for the bot
// service.
type Config struct {
	HTTPPort        int
	SQLiteDSN       string
	SigningSecret   string
	BotToken        string
	DefaultTimezone string
	ShutdownTimeout time.Duration
}

// Load parses configuration values from the current process environment.
//
// The loader applies defaults for optional fields while validating required
// values, accumulating every missing or invalid entry into one error.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:        8080,
		SQLiteDSN:       "file:serier.db?_foreign_keys=on",
		DefaultTimezone: "UTC",
		ShutdownTimeout: 10 * time.Second,
	}

	missing := make([]string, 0, 2)
	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("SERIER_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "SERIER_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("SERIER_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if secret := strings.TrimSpace(os.Getenv("SERIER_SIGNING_SECRET")); secret == "" {
		missing = append(missing, "SERIER_SIGNING_SECRET")
	} else {
		cfg.SigningSecret = secret
	}

	if token := strings.TrimSpace(os.Getenv("SERIER_BOT_TOKEN")); token == "" {
		missing = append(missing, "SERIER_BOT_TOKEN")
	} else {
		cfg.BotToken = token
	}

	if tz := strings.TrimSpace(os.Getenv("SERIER_DEFAULT_TZ")); tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			invalid = append(invalid, "SERIER_DEFAULT_TZ")
		} else {
			cfg.DefaultTimezone = tz
		}
	}

	if timeoutValue := strings.TrimSpace(os.Getenv("SERIER_SHUTDOWN_TIMEOUT")); timeoutValue != "" {
		timeout, err := time.ParseDuration(timeoutValue)
		if err != nil || timeout <= 0 {
			invalid = append(invalid, "SERIER_SHUTDOWN_TIMEOUT")
		} else {
			cfg.ShutdownTimeout = timeout
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
