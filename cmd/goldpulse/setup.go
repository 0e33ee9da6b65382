package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/vthang/goldpulse/internal/acquire"
	"github.com/vthang/goldpulse/internal/config"
	"github.com/vthang/goldpulse/internal/core"
	"github.com/vthang/goldpulse/internal/metrics"
	"github.com/vthang/goldpulse/internal/provider"
	"github.com/vthang/goldpulse/internal/provider/btmc"
	"github.com/vthang/goldpulse/internal/provider/fx"
	"github.com/vthang/goldpulse/internal/provider/goldapi"
	"github.com/vthang/goldpulse/internal/provider/goldprice"
	"github.com/vthang/goldpulse/internal/provider/gta"
	"github.com/vthang/goldpulse/internal/provider/ibja"
	"github.com/vthang/goldpulse/internal/provider/sge"
	"github.com/vthang/goldpulse/internal/provider/sjc"
	"github.com/vthang/goldpulse/internal/provider/yahoo"
	"github.com/vthang/goldpulse/internal/storage/archive"
)

func loadConfig(log *zap.Logger) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		log.Warn("no config file specified, using defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func newStorage(cfg *config.Config) (archive.Storage, error) {
	switch cfg.Output.Type {
	case "s3":
		return archive.NewS3(archive.S3Config{
			Bucket:    cfg.Output.S3.Bucket,
			Endpoint:  cfg.Output.S3.Endpoint,
			Region:    cfg.Output.S3.Region,
			AccessKey: cfg.Output.S3.AccessKey,
			SecretKey: cfg.Output.S3.SecretKey,
			Prefix:    cfg.Output.S3.Prefix,
		})
	default:
		return archive.NewLocalFS(cfg.Output.Path)
	}
}

// buildOrchestrator wires every market's fallback chain. Chain order is
// trust order: official or primary feeds first, aggregators after.
func buildOrchestrator(cfg *config.Config, log *zap.Logger, reg *metrics.Registry) *acquire.Orchestrator {
	fxChain := fx.NewChain(log,
		fx.NewOpenERAPI(),
		fx.NewCurrencyAPI(),
	)

	benchmark := provider.NewChain("benchmark", log,
		goldapi.New(cfg.Providers.GoldAPIKey),
		goldprice.New(),
		yahoo.New(),
	)

	markets := []*acquire.Market{
		{
			Name:     "vietnam",
			Country:  core.CountryVietnam,
			Currency: "VND",
			Chain: provider.NewChain("vietnam", log,
				sjc.New(),
				btmc.New(cfg.Providers.BTMCKey),
			),
		},
		{
			Name:           "china",
			Country:        core.CountryChina,
			Currency:       "CNY",
			Chain:          provider.NewChain("china", log, sge.New()),
			DeriveFallback: true,
		},
		{
			Name:           "india",
			Country:        core.CountryIndia,
			Currency:       "INR",
			Chain:          provider.NewChain("india", log, ibja.New()),
			DeriveFallback: true,
		},
		{
			Name:           "thailand",
			Country:        core.CountryThailand,
			Currency:       "THB",
			Chain:          provider.NewChain("thailand", log, gta.New()),
			DeriveFallback: true,
		},
	}

	return acquire.New(fxChain, benchmark, markets, log, reg)
}
