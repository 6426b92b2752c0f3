package cmd

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"StockPulse/internal/config"
	"StockPulse/internal/dashboard"
	"StockPulse/internal/logging"
	"StockPulse/internal/news"
	"StockPulse/internal/recorder"
	"StockPulse/internal/source"
)

// app holds the components shared by every subcommand.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	builder  *dashboard.Builder
	recorder recorder.Recorder
}

func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.Sources.TimeoutSec) * time.Second
	chain := source.NewChain(logger, candleSources(cfg, timeout, logger)...)
	logger.Info("candle sources", zap.Strings("live", cfg.Sources.Live), zap.Bool("deterministic", cfg.IsDeterministic()))

	var provider news.Provider = &news.MockNews{}
	if !cfg.News.Disabled {
		provider = &news.FallbackNews{
			Primary: news.NewScrapeNews(cfg.News.ScrapeURL, cfg.News.Selector, cfg.Proxy, timeout),
			Backup:  &news.MockNews{},
			Logger:  logger,
		}
	}

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, logger)
		if err != nil {
			logger.Warn("init sqlite recorder failed, using noop", zap.Error(err))
		} else {
			rec = sr
		}
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		builder:  dashboard.NewBuilder(chain, provider, logger),
		recorder: rec,
	}, nil
}

func candleSources(cfg *config.Config, timeout time.Duration, logger *zap.Logger) []source.CandleSource {
	var out []source.CandleSource
	for _, name := range cfg.Sources.Live {
		switch name {
		case config.SourceYahoo:
			out = append(out, source.NewYahooSource(cfg.Proxy, timeout, logger))
		case config.SourceAlpaca:
			out = append(out, source.NewAlpacaSource(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Alpaca.DataURL, cfg.Alpaca.Feed))
		}
	}
	return append(out, source.NewSyntheticSource(cfg.IsDeterministic()))
}

func (a *app) close() {
	if err := a.recorder.Close(); err != nil {
		a.logger.Warn("close recorder", zap.Error(err))
	}
	_ = a.logger.Sync()
}
