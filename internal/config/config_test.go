package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vthang/goldpulse/internal/core"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
providers:
  goldapi_key: "abc123"
analysis:
  drawdown_threshold_pct: 15
output:
  type: localfs
  path: /tmp/gold
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Providers.GoldAPIKey != "abc123" {
		t.Errorf("goldapi_key = %s", cfg.Providers.GoldAPIKey)
	}
	if cfg.Analysis.DrawdownThresholdPct != 15 {
		t.Errorf("threshold = %f, want 15", cfg.Analysis.DrawdownThresholdPct)
	}
	// Unset values keep defaults.
	if cfg.Rates.HistoricalUSDVND != DefaultUSDVND {
		t.Errorf("historical rate = %f, want default", cfg.Rates.HistoricalUSDVND)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_GOLDAPI_KEY", "from-env")
	path := writeConfig(t, `
providers:
  goldapi_key: "${TEST_GOLDAPI_KEY}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Providers.GoldAPIKey != "from-env" {
		t.Errorf("goldapi_key = %s, want from-env", cfg.Providers.GoldAPIKey)
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.Analysis.DrawdownThresholdPct != 10 {
		t.Errorf("default threshold = %f, want 10", cfg.Analysis.DrawdownThresholdPct)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero threshold", func(c *Config) { c.Analysis.DrawdownThresholdPct = 0 }},
		{"negative rate", func(c *Config) { c.Rates.HistoricalUSDVND = -1 }},
		{"short history", func(c *Config) { c.Analysis.HistoryDays = 1 }},
		{"unknown output", func(c *Config) { c.Output.Type = "ftp" }},
		{"s3 without bucket", func(c *Config) { c.Output.Type = "s3" }},
		{"localfs without path", func(c *Config) { c.Output.Path = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, core.ErrConfigInvalid) && !errors.Is(err, core.ErrConfigMissing) {
				t.Errorf("expected config error code, got %v", err)
			}
		})
	}
}
