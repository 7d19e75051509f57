package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %q", cfg.LogLevel)
	}
}

func TestLoad_ValidLogLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		t.Setenv("LOG_LEVEL", level)
		cfg, err := Load()
		if err != nil {
			t.Fatalf("level %q: unexpected error: %v", level, err)
		}
		if cfg.LogLevel != level {
			t.Errorf("expected log level %q, got %q", level, cfg.LogLevel)
		}
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")
	if _, err := Load(); err == nil {
		t.Fatal("expected an error for an invalid log level")
	}
}
