package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/vthang/goldpulse/internal/core"
)

// DefaultUSDVND is the historical USD/VND rate used to backfill
// periods with no captured live rate.
const DefaultUSDVND = 25400.0

type Config struct {
	Providers ProvidersConfig `mapstructure:"providers"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
	Rates     RatesConfig     `mapstructure:"rates"`
	Output    OutputConfig    `mapstructure:"output"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// ProvidersConfig carries provider credentials. Absence of a key gates
// whether the corresponding adapter in a fallback chain is attempted.
type ProvidersConfig struct {
	GoldAPIKey string `mapstructure:"goldapi_key"`
	BTMCKey    string `mapstructure:"btmc_key"`
}

type AnalysisConfig struct {
	DrawdownThresholdPct float64 `mapstructure:"drawdown_threshold_pct"`
	HistoryDays          int     `mapstructure:"history_days"`
}

type RatesConfig struct {
	// HistoricalUSDVND overrides the backfill rate for periods with no
	// captured live rate.
	HistoricalUSDVND float64 `mapstructure:"historical_usd_vnd"`
}

type OutputConfig struct {
	Type string   `mapstructure:"type"` // "localfs" or "s3"
	Path string   `mapstructure:"path"` // for localfs
	S3   S3Config `mapstructure:"s3"`   // for s3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

type MetricsConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Textfile string `mapstructure:"textfile"`
}

// Load reads configuration from file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a config with sensible defaults.
func Defaults() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			DrawdownThresholdPct: 10,
			HistoryDays:          365,
		},
		Rates: RatesConfig{
			HistoricalUSDVND: DefaultUSDVND,
		},
		Output: OutputConfig{
			Type: "localfs",
			Path: "data",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Analysis.DrawdownThresholdPct <= 0 || c.Analysis.DrawdownThresholdPct > 100 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("drawdown_threshold_pct must be in (0, 100], got %f", c.Analysis.DrawdownThresholdPct))
	}
	if c.Analysis.HistoryDays < 2 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("history_days must be at least 2, got %d", c.Analysis.HistoryDays))
	}
	if c.Rates.HistoricalUSDVND <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("historical_usd_vnd must be positive, got %f", c.Rates.HistoricalUSDVND))
	}

	switch c.Output.Type {
	case "localfs":
		if c.Output.Path == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("output path required for localfs"))
		}
	case "s3":
		if c.Output.S3.Bucket == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("s3 bucket required when output type is s3"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown output type %q", c.Output.Type))
	}

	return nil
}
