// Package scheduler runs the periodic watchlist refresh: every scraped
// record re-extracted on a cron schedule, paced so the vendors and relays
// are not hammered.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/Nandheswara/stock-analysis-sub000/internal/common"
	"github.com/Nandheswara/stock-analysis-sub000/internal/interfaces"
	"github.com/Nandheswara/stock-analysis-sub000/internal/services/extractor"
)

// Service owns the cron entry and the batch refresh loop.
type Service struct {
	cfg       common.RefreshConfig
	storage   interfaces.StockStorage
	extractor *extractor.Service
	events    interfaces.EventService
	logger    arbor.ILogger

	cron    *cron.Cron
	running sync.Mutex // held for the duration of one sweep
}

// NewService creates the refresh scheduler. Call Start to arm the cron entry.
func NewService(
	cfg common.RefreshConfig,
	storage interfaces.StockStorage,
	ext *extractor.Service,
	events interfaces.EventService,
	logger arbor.ILogger,
) *Service {
	return &Service{
		cfg:       cfg,
		storage:   storage,
		extractor: ext,
		events:    events,
		logger:    logger,
	}
}

// Start arms the cron schedule. Disabled configuration is a no-op.
func (s *Service) Start() error {
	if !s.cfg.Enabled {
		s.logger.Info().Msg("Scheduled refresh disabled")
		return nil
	}

	s.cron = cron.New()
	_, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		if _, err := s.RefreshAll(context.Background()); err != nil {
			s.logger.Error().Err(err).Msg("Scheduled refresh failed")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info().
		Str("schedule", s.cfg.Schedule).
		Str("delay", s.cfg.Delay.String()).
		Msg("Scheduled refresh armed")
	return nil
}

// Stop cancels the cron entry and waits for a running sweep's cron context.
func (s *Service) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// RefreshAll re-extracts every scraped (non-manual) record, pacing requests
// by the configured delay. Overlapping sweeps are collapsed: a second call
// while one runs returns immediately with zero refreshed. Per-symbol
// failures are logged and skipped; the sweep continues.
func (s *Service) RefreshAll(ctx context.Context) (int, error) {
	if !s.running.TryLock() {
		s.logger.Warn().Msg("Refresh sweep already running, skipping")
		return 0, nil
	}
	defer s.running.Unlock()

	records, err := s.storage.ListRecords(ctx)
	if err != nil {
		return 0, err
	}

	targets := records[:0:0]
	for _, r := range records {
		if !r.IsManualEntry && r.Symbol != "" {
			targets = append(targets, r)
		}
	}
	if len(targets) == 0 {
		return 0, nil
	}

	delay := s.cfg.Delay
	if delay <= 0 {
		delay = 2 * time.Second
	}
	limiter := rate.NewLimiter(rate.Every(delay), 1)

	s.logger.Info().Int("records", len(targets)).Msg("Refresh sweep started")
	start := time.Now()

	refreshed := 0
	for i, record := range targets {
		if err := limiter.Wait(ctx); err != nil {
			return refreshed, err
		}

		s.events.Publish(ctx, interfaces.Event{
			Type: interfaces.EventRefreshProgress,
			Payload: map[string]interface{}{
				"current": i + 1,
				"total":   len(targets),
				"symbol":  record.Symbol,
			},
		})

		if _, err := s.extractor.FetchStockData(ctx, record.Symbol, record.ID); err != nil {
			s.logger.Warn().
				Err(err).
				Str("symbol", record.Symbol).
				Msg("Refresh failed for record, continuing sweep")
			continue
		}
		refreshed++
	}

	s.logger.Info().
		Int("refreshed", refreshed).
		Int("total", len(targets)).
		Str("elapsed", time.Since(start).Round(time.Millisecond).String()).
		Msg("Refresh sweep finished")
	return refreshed, nil
}
