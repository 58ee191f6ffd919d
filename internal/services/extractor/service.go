// Package extractor orchestrates one statistics extraction: resolve the
// vendor identifiers, fetch both vendor pages concurrently through the cache
// and relay chain, merge the parsed statistics, and write the result to the
// record.
package extractor

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/Nandheswara/stock-analysis-sub000/internal/common"
	"github.com/Nandheswara/stock-analysis-sub000/internal/interfaces"
	"github.com/Nandheswara/stock-analysis-sub000/internal/models"
	"github.com/Nandheswara/stock-analysis-sub000/internal/services/cache"
	"github.com/Nandheswara/stock-analysis-sub000/internal/services/metrics"
	"github.com/Nandheswara/stock-analysis-sub000/internal/services/resolver"
	"github.com/Nandheswara/stock-analysis-sub000/internal/services/scraper"
)

// Result summarizes one extraction for handlers and the scheduler.
type Result struct {
	Symbol        string   `json:"symbol"`
	UpdatedFields int      `json:"updated_fields"`
	Sources       []string `json:"sources,omitempty"`
	NoData        bool     `json:"no_data"`
}

// Service runs extractions. Vendor pipelines are independent: one vendor
// failing leaves the other vendor's fields intact, and only a total failure
// is reported as no data.
type Service struct {
	resolver *resolver.Service
	fetcher  interfaces.PageFetcher
	storage  interfaces.StockStorage
	cache    *cache.Cache
	events   interfaces.EventService
	logger   arbor.ILogger
	cacheTTL time.Duration
}

// NewService wires an extraction service.
func NewService(
	res *resolver.Service,
	fetcher interfaces.PageFetcher,
	storage interfaces.StockStorage,
	pageCache *cache.Cache,
	events interfaces.EventService,
	cfg common.ExtractorConfig,
	logger arbor.ILogger,
) *Service {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &Service{
		resolver: res,
		fetcher:  fetcher,
		storage:  storage,
		cache:    pageCache,
		events:   events,
		logger:   logger,
		cacheTTL: ttl,
	}
}

// FetchStockData extracts statistics for symbol and applies them to the
// record identified by recordID. The record is not touched when both vendors
// come back empty. A failed persistence write is logged, not rolled back;
// the in-memory result still reflects the extraction.
func (s *Service) FetchStockData(ctx context.Context, symbol, recordID string) (*Result, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}

	var (
		wg        sync.WaitGroup
		primary   models.VendorStats
		secondary models.VendorStats
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		primary = s.vendorStats(ctx, models.VendorScreener, s.resolver.ScreenerURL(symbol), scraper.ParseScreenerPage)
	}()
	go func() {
		defer wg.Done()
		secondary = s.vendorStats(ctx, models.VendorYahoo, s.resolver.YahooURL(symbol), scraper.ParseYahooPage)
	}()
	wg.Wait()

	if primary.Empty() && secondary.Empty() {
		s.logger.Warn().Str("symbol", symbol).Msg("No data from any vendor")
		s.events.Publish(ctx, interfaces.AlertEvent(interfaces.AlertWarning,
			fmt.Sprintf("No data found for %s", symbol)))
		return &Result{Symbol: symbol, NoData: true}, nil
	}

	merged := metrics.Merge(primary, secondary)
	promoterSource := decidePromoterSource(merged, primary)
	if promoterSource == models.PromoterSourceAssumedZero {
		merged[models.FieldPromoterHolding] = models.NumberValue(0)
	}

	result := &Result{
		Symbol:        symbol,
		Sources:       sourceNames(primary, secondary),
		UpdatedFields: merged.SetFields(),
	}

	if err := s.applyToRecord(ctx, recordID, merged, promoterSource, result); err != nil {
		s.logger.Error().
			Err(err).
			Str("symbol", symbol).
			Str("record_id", recordID).
			Msg("Failed to persist extracted metrics")
	}

	s.events.Publish(ctx, interfaces.Event{
		Type: interfaces.EventStockUpdated,
		Payload: map[string]interface{}{
			"record_id":      recordID,
			"symbol":         symbol,
			"updated_fields": result.UpdatedFields,
		},
	})
	s.events.Publish(ctx, interfaces.AlertEvent(interfaces.AlertSuccess,
		fmt.Sprintf("Updated %d fields for %s from %s",
			result.UpdatedFields, symbol, strings.Join(result.Sources, ", "))))

	return result, nil
}

// vendorStats runs one vendor's fetch+parse pipeline through the page cache.
// Any failure degrades to empty stats so the other vendor proceeds alone.
func (s *Service) vendorStats(ctx context.Context, vendor models.Vendor, pageURL string, parse func(string) models.VendorStats) models.VendorStats {
	v, err := s.cache.GetOrFetch(ctx, pageURL, s.cacheTTL, func(ctx context.Context) (interface{}, error) {
		html, err := s.fetcher.FetchHTML(ctx, pageURL)
		if err != nil {
			return nil, err
		}

		stats := parse(html)
		s.logger.Debug().
			Str("vendor", string(vendor)).
			Str("url", pageURL).
			Int("fields", len(stats.Fields)).
			Msg("Vendor page parsed")
		return stats, nil
	})
	if err != nil {
		s.logger.Warn().
			Str("vendor", string(vendor)).
			Str("url", pageURL).
			Err(err).
			Msg("Vendor pipeline failed")
		return models.NewVendorStats(vendor)
	}

	stats, ok := v.(models.VendorStats)
	if !ok {
		return models.NewVendorStats(vendor)
	}
	return stats
}

// decidePromoterSource tags how the promoter figure was obtained. The
// assumed-zero substitution applies only when the primary page was actually
// parsed: companies without a promoter entity omit the row entirely, but a
// failed primary fetch must not fabricate a zero.
func decidePromoterSource(merged models.MergedMetrics, primary models.VendorStats) models.PromoterSource {
	if merged[models.FieldPromoterHolding].IsSet() {
		return models.PromoterSourceExtracted
	}
	if !primary.Empty() {
		return models.PromoterSourceAssumedZero
	}
	return ""
}

// applyToRecord loads, mutates and writes back the record. UpdatedFields is
// recomputed from what was actually written.
func (s *Service) applyToRecord(ctx context.Context, recordID string, merged models.MergedMetrics, promoterSource models.PromoterSource, result *Result) error {
	if recordID == "" {
		return nil
	}

	record, err := s.storage.GetRecord(ctx, recordID)
	if err != nil {
		return err
	}

	result.UpdatedFields = record.ApplyMetrics(merged)
	if promoterSource != "" {
		record.PromoterSource = promoterSource
	}

	return s.storage.UpdateRecord(ctx, record)
}

// sourceNames lists the vendors that produced data, primary first.
func sourceNames(all ...models.VendorStats) []string {
	names := make([]string, 0, len(all))
	for _, stats := range all {
		if !stats.Empty() {
			names = append(names, stats.Vendor.DisplayName())
		}
	}
	return names
}
