// Package app wires configuration, storage and services into one object the
// server and entrypoint share.
package app

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/Nandheswara/stock-analysis-sub000/internal/common"
	"github.com/Nandheswara/stock-analysis-sub000/internal/interfaces"
	"github.com/Nandheswara/stock-analysis-sub000/internal/services/cache"
	"github.com/Nandheswara/stock-analysis-sub000/internal/services/events"
	"github.com/Nandheswara/stock-analysis-sub000/internal/services/extractor"
	"github.com/Nandheswara/stock-analysis-sub000/internal/services/portfolio"
	"github.com/Nandheswara/stock-analysis-sub000/internal/services/relay"
	"github.com/Nandheswara/stock-analysis-sub000/internal/services/resolver"
	"github.com/Nandheswara/stock-analysis-sub000/internal/services/scheduler"
	"github.com/Nandheswara/stock-analysis-sub000/internal/services/search"
	"github.com/Nandheswara/stock-analysis-sub000/internal/storage/badger"
)

// App holds all initialized services.
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	DB               *badger.BadgerDB
	StockStorage     interfaces.StockStorage
	PortfolioStorage interfaces.PortfolioStorage
	Events           interfaces.EventService

	Search    *search.Service
	Resolver  *resolver.Service
	Fetcher   interfaces.PageFetcher
	Cache     *cache.Cache
	Extractor *extractor.Service
	Portfolio *portfolio.Service
	Scheduler *scheduler.Service
}

// New initializes the full service graph. The search index is optional: a
// missing ticker asset degrades symbol resolution, it does not block startup.
func New(cfg *common.Config) (*App, error) {
	logger := common.GetLogger()

	db, err := badger.NewBadgerDB(logger, &cfg.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	stockStorage := badger.NewStockStorage(db, logger)
	portfolioStorage := badger.NewPortfolioStorage(db, logger)
	eventService := events.NewService(logger)

	var searchService *search.Service
	if entries, err := resolver.LoadTickerAsset(cfg.Extractor.TickerMapPath); err != nil {
		logger.Warn().
			Err(err).
			Str("path", cfg.Extractor.TickerMapPath).
			Msg("Ticker asset unavailable, symbol search disabled")
	} else if searchService, err = search.NewService(entries, logger); err != nil {
		logger.Warn().Err(err).Msg("Failed to build symbol search index")
		searchService = nil
	}

	// resolver.Searcher is satisfied by *search.Service; a typed nil must not
	// become a non-nil interface.
	var searcher resolver.Searcher
	if searchService != nil {
		searcher = searchService
	}

	resolverService := resolver.NewService(cfg.Extractor, searcher, logger)
	fetcher := relay.NewFetcher(cfg.Extractor, logger)
	pageCache := cache.New(logger)

	extractorService := extractor.NewService(
		resolverService, fetcher, stockStorage, pageCache, eventService, cfg.Extractor, logger)

	portfolioService := portfolio.NewService(portfolioStorage, logger)
	schedulerService := scheduler.NewService(cfg.Refresh, stockStorage, extractorService, eventService, logger)

	return &App{
		Config:           cfg,
		Logger:           logger,
		DB:               db,
		StockStorage:     stockStorage,
		PortfolioStorage: portfolioStorage,
		Events:           eventService,
		Search:           searchService,
		Resolver:         resolverService,
		Fetcher:          fetcher,
		Cache:            pageCache,
		Extractor:        extractorService,
		Portfolio:        portfolioService,
		Scheduler:        schedulerService,
	}, nil
}

// Start arms background work (the refresh schedule).
func (a *App) Start() error {
	return a.Scheduler.Start()
}

// Close shuts down background work and storage.
func (a *App) Close() error {
	a.Scheduler.Stop()

	if a.Search != nil {
		if err := a.Search.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close search index")
		}
	}

	if err := a.DB.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	return nil
}
