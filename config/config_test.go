package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadDefaults tests that loading without a file yields the defaults
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Should load defaults, got error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Default port should be 8080, got %d", cfg.Server.Port)
	}
	if cfg.Analysis.MinCandles != 60 {
		t.Errorf("Default min candles should be 60, got %d", cfg.Analysis.MinCandles)
	}
	if cfg.Analysis.SLMult != 1.5 || cfg.Analysis.TPMult != 3.0 {
		t.Errorf("Default ATR multipliers should be 1.5/3.0, got %v/%v", cfg.Analysis.SLMult, cfg.Analysis.TPMult)
	}
	if cfg.Risk.MinLot != 0.001 || cfg.Risk.MaxLot != 100.0 {
		t.Errorf("Default lot bounds should be 0.001/100, got %v/%v", cfg.Risk.MinLot, cfg.Risk.MaxLot)
	}
	if cfg.Analysis.ConfidenceThreshold != 60 {
		t.Errorf("Default confidence threshold should be 60, got %v", cfg.Analysis.ConfidenceThreshold)
	}
}

// TestLoadFile tests that a config file overrides the defaults
func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"server": {"port": 9000}, "analysis": {"min_candles": 100}}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Should load the file, got error: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Port should be overridden to 9000, got %d", cfg.Server.Port)
	}
	if cfg.Analysis.MinCandles != 100 {
		t.Errorf("Min candles should be overridden to 100, got %d", cfg.Analysis.MinCandles)
	}
	// Untouched sections keep their defaults
	if cfg.Risk.DefaultRiskPercent != 1.0 {
		t.Errorf("Unset risk defaults should survive, got %v", cfg.Risk.DefaultRiskPercent)
	}
}

// TestLoadEnvOverrides tests environment variable precedence
func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "7777")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("TELEGRAM_BOT_TOKEN", "bot-token")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Should load, got error: %v", err)
	}

	if cfg.Server.Port != 7777 {
		t.Errorf("SERVER_PORT should override the port, got %d", cfg.Server.Port)
	}
	if cfg.Auth.JWTSecret != "from-env" {
		t.Errorf("JWT_SECRET should populate the secret, got %q", cfg.Auth.JWTSecret)
	}
	if !cfg.Notification.Telegram.Enabled || !cfg.Notification.Enabled {
		t.Error("Setting a Telegram token should enable Telegram notifications")
	}
}

// TestValidate tests rejection of unusable configurations
func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	cfg.Server.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Port 0 should fail validation")
	}

	cfg = defaultConfig()
	cfg.Risk.MinLot = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Zero min lot should fail validation")
	}

	cfg = defaultConfig()
	cfg.Risk.MaxLot = 0.0001
	if err := cfg.Validate(); err == nil {
		t.Error("Max lot below min lot should fail validation")
	}

	cfg = defaultConfig()
	cfg.Analysis.SLMult = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Negative SL multiplier should fail validation")
	}
}
