package config

import (
	"fmt"
	"os"
)

// Config holds runtime configuration for the matching core driver.
type Config struct {
	LogLevel      string
	BootstrapFile string // optional JSONL file processed before stdin
}

// Load reads configuration from environment variables, applies defaults,
// and validates values.
func Load() (*Config, error) {
	logLevel := getStr("LOG_LEVEL", "info")
	if !isValidLogLevel(logLevel) {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %q, must be one of: debug, info, warn, error", logLevel)
	}

	return &Config{
		LogLevel:      logLevel,
		BootstrapFile: getStr("BOOTSTRAP_FILE", ""),
	}, nil
}

func getStr(key, defaultVal string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
