package main

import (
	"github.com/phuslu/log"

	"github.com/seenimoa/financemcp/internal/analysis/sector"
	"github.com/seenimoa/financemcp/internal/config"
	"github.com/seenimoa/financemcp/internal/providers/fmp"
	"github.com/seenimoa/financemcp/internal/providers/newsapi"
	"github.com/seenimoa/financemcp/internal/tools"
)

// newService wires both provider clients and the sector analyzer from cfg.
func newService(cfg *config.Config, logger *log.Logger) *tools.Service {
	companies := fmp.New(fmp.Options{
		BaseURL: cfg.FMP.BaseURL,
		APIKey:  cfg.FMP.APIKey,
		Timeout: cfg.Fetch.Timeout,
		Logger:  logger,
	})
	news := newsapi.New(newsapi.Options{
		BaseURL: cfg.NewsAPI.BaseURL,
		APIKey:  cfg.NewsAPI.APIKey,
		Timeout: cfg.Fetch.Timeout,
		Logger:  logger,
	})
	trends := sector.NewAnalyzer(companies,
		sector.WithConcurrency(cfg.Fetch.Concurrency),
		sector.WithLogger(logger),
	)
	return tools.NewService(companies, news, trends, logger)
}
