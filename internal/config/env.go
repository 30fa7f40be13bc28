package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnv overrides config values from TODO_* environment variables.
// Unset or unparsable values leave the current setting alone.
func (c *Config) ApplyEnv() {
	if val := getEnv("TODO_ADDR"); val != "" {
		c.Server.Addr = val
	}
	if val := getEnvDuration("TODO_SHUTDOWN_TIMEOUT"); val > 0 {
		c.Server.ShutdownTimeout = val
	}
	if val := getEnvDuration("TODO_SESSION_TTL"); val > 0 {
		c.Session.TTL = val
	}
	if val, err := strconv.Atoi(getEnv("TODO_SESSION_MAX")); err == nil && val > 0 {
		c.Session.Max = val
	}
	if val := getEnv("TODO_COOKIE_NAME"); val != "" {
		c.Session.CookieName = val
	}
	switch strings.ToLower(getEnv("TODO_COOKIE_SECURE")) {
	case "1", "true", "yes":
		v := true
		c.Session.Secure = &v
	case "0", "false", "no":
		v := false
		c.Session.Secure = &v
	}
	if val := getEnv("TODO_LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := getEnv("TODO_LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
	if val := getEnv("TODO_DEFAULT_SORT"); val != "" {
		c.Tasks.DefaultSort = val
	}
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func getEnvDuration(key string) time.Duration {
	val := getEnv(key)
	if val == "" {
		return 0
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0
	}
	return d
}
